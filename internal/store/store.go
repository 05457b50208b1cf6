// Package store is the offline entity store: six JSON slots in a
// key-value backend, each rewritten whole on every mutation.
package store

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/saadjs/fitlog/internal/storage"
)

const DefaultPrefix = "fitlog"

type Slot string

const (
	SlotUser          Slot = "user"
	SlotWorkouts      Slot = "workouts"
	SlotBodyMetrics   Slot = "bodyMetrics"
	SlotMeals         Slot = "meals"
	SlotNutritionGoal Slot = "nutritionGoal"
	SlotConversations Slot = "aiConversations"
)

// Slots lists every slot in the order ResetAll clears them.
func Slots() []Slot {
	return []Slot{SlotUser, SlotWorkouts, SlotBodyMetrics, SlotMeals, SlotNutritionGoal, SlotConversations}
}

type Store struct {
	backend storage.Backend
	prefix  string
	now     func() time.Time
	newID   func() string
	logger  *log.Logger
}

type Option func(*Store)

// WithPrefix namespaces every key as <prefix>:<slot>.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if p := strings.TrimSpace(prefix); p != "" {
			s.prefix = p
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		prefix:  DefaultPrefix,
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) NewID() string {
	return s.newID()
}

func (s *Store) Key(slot Slot) string {
	return s.prefix + ":" + string(slot)
}

// Raw returns the stored text of a slot, or "" when it was never written.
func (s *Store) Raw(slot Slot) (string, error) {
	text, ok, err := s.backend.Get(s.Key(slot))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return text, nil
}

// StrayKeys lists keys under the prefix that are neither a slot nor a
// preference. It returns nil when the backend cannot enumerate keys.
func (s *Store) StrayKeys() ([]string, error) {
	lister, ok := s.backend.(storage.Lister)
	if !ok {
		return nil, nil
	}
	keys, err := lister.Keys(s.prefix + ":")
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	known := make(map[string]bool, len(Slots()))
	for _, slot := range Slots() {
		known[s.Key(slot)] = true
	}
	prefs := s.prefix + ":pref:"
	stray := make([]string, 0)
	for _, k := range keys {
		if !known[k] && !strings.HasPrefix(k, prefs) {
			stray = append(stray, k)
		}
	}
	return stray, nil
}

func (s *Store) write(slot Slot, text string) error {
	if err := s.backend.Set(s.Key(slot), text); err != nil {
		s.logger.Error("write failed", "slot", slot, "err", err)
		return fmt.Errorf("write %s: %w", slot, err)
	}
	s.logger.Debug("slot written", "slot", slot, "bytes", len(text))
	return nil
}
