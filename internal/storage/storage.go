// Package storage holds the key-value backends the entity store persists
// its JSON slots into.
package storage

import "fmt"

// Backend is a string-to-string key-value medium. Get reports a missing
// key with ok=false and a nil error.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Lister is implemented by backends that can enumerate their keys.
type Lister interface {
	Keys(prefix string) ([]string, error)
}

// Error reports a failure of the storage medium itself (disk full, closed
// database), as opposed to bad data inside a value.
type Error struct {
	Op  string // "get", "set", "remove", "keys"
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
