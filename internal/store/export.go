package store

import (
	"fmt"
	"io"

	"github.com/saadjs/fitlog/internal/codec"
)

// Snapshot reads every slot. Any read or decode failure aborts it.
func (s *Store) Snapshot() (codec.Snapshot, error) {
	snap := codec.Snapshot{ExportedAt: s.now()}
	var err error
	if snap.User, err = s.User(); err != nil {
		return codec.Snapshot{}, err
	}
	if snap.Workouts, err = s.Workouts(); err != nil {
		return codec.Snapshot{}, err
	}
	if snap.BodyMetrics, err = s.BodyMetrics(); err != nil {
		return codec.Snapshot{}, err
	}
	if snap.Meals, err = s.Meals(); err != nil {
		return codec.Snapshot{}, err
	}
	if snap.NutritionGoal, err = s.NutritionGoal(); err != nil {
		return codec.Snapshot{}, err
	}
	if snap.Conversations, err = s.Conversations(); err != nil {
		return codec.Snapshot{}, err
	}
	return snap, nil
}

// ExportAll renders every slot as one indented JSON document.
func (s *Store) ExportAll() (string, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return "", err
	}
	return codec.EncodeSnapshot(snap)
}

func (s *Store) ExportYAML(w io.Writer) error {
	snap, err := s.Snapshot()
	if err != nil {
		return err
	}
	return codec.WriteSnapshotYAML(w, snap)
}

// ResetAll removes the six slots in order and stops at the first failure.
// Preferences are left alone.
func (s *Store) ResetAll() error {
	for _, slot := range Slots() {
		if err := s.backend.Remove(s.Key(slot)); err != nil {
			s.logger.Error("reset failed", "slot", slot, "err", err)
			return fmt.Errorf("reset %s: %w", slot, err)
		}
	}
	s.logger.Info("all slots cleared", "prefix", s.prefix)
	return nil
}
