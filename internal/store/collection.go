package store

import (
	"fmt"
	"strings"
)

// collection is the read-modify-write logic shared by the plural slots.
type collection[T any] struct {
	slot   Slot
	decode func(string) ([]T, error)
	encode func([]T) (string, error)
	id     func(T) string
}

func (c collection[T]) all(s *Store) ([]T, error) {
	text, err := s.Raw(c.slot)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.slot, err)
	}
	items, err := c.decode(text)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c collection[T]) save(s *Store, items []T) error {
	text, err := c.encode(items)
	if err != nil {
		return err
	}
	return s.write(c.slot, text)
}

// upsert replaces the item with the same id in place or appends it.
func (c collection[T]) upsert(s *Store, item T) error {
	if strings.TrimSpace(c.id(item)) == "" {
		return fmt.Errorf("upsert %s: %w", c.slot, ErrMissingID)
	}
	items, err := c.all(s)
	if err != nil {
		return err
	}
	items = replaceOrAppend(items, item, c.id)
	return c.save(s, items)
}

// remove drops every item with id. A missing id leaves the slot untouched.
func (c collection[T]) remove(s *Store, id string) error {
	items, err := c.all(s)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if c.id(it) != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return c.save(s, kept)
}

func (c collection[T]) find(s *Store, id string) (T, error) {
	var zero T
	items, err := c.all(s)
	if err != nil {
		return zero, err
	}
	for _, it := range items {
		if c.id(it) == id {
			return it, nil
		}
	}
	return zero, fmt.Errorf("%s %q: %w", c.slot, id, ErrNotFound)
}

func replaceOrAppend[T any](items []T, item T, id func(T) string) []T {
	key := id(item)
	for i := range items {
		if id(items[i]) == key {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}
