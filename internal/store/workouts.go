package store

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/saadjs/fitlog/internal/codec"
	"github.com/saadjs/fitlog/internal/model"
)

var workouts = collection[model.Workout]{
	slot:   SlotWorkouts,
	decode: codec.DecodeWorkouts,
	encode: codec.EncodeWorkouts,
	id:     func(w model.Workout) string { return w.ID },
}

func (s *Store) Workouts() ([]model.Workout, error) {
	return workouts.all(s)
}

func (s *Store) Workout(id string) (model.Workout, error) {
	return workouts.find(s, id)
}

// UpsertWorkout rejects sets numbered out of sequence, and refuses to add
// or reopen an incomplete workout while another one is in progress. Saves to
// a workout that is already stored as incomplete always pass, so older data
// holding several stays editable.
func (s *Store) UpsertWorkout(w model.Workout) error {
	if err := validateSetSequence(w); err != nil {
		return err
	}
	if !w.IsCompleted {
		items, err := workouts.all(s)
		if err != nil {
			return err
		}
		stored, found := lo.Find(items, func(o model.Workout) bool { return o.ID == w.ID })
		if !found || stored.IsCompleted {
			for _, other := range items {
				if other.ID != w.ID && !other.IsCompleted {
					return fmt.Errorf("workout %s: %w (%s)", w.ID, ErrActiveWorkoutExists, other.ID)
				}
			}
		}
	}
	if err := workouts.upsert(s, w); err != nil {
		return err
	}
	s.logger.Info("workout saved", "id", w.ID, "completed", w.IsCompleted)
	return nil
}

func (s *Store) DeleteWorkout(id string) error {
	return workouts.remove(s, id)
}

// ActiveWorkout returns the first incomplete workout, or nil.
func (s *Store) ActiveWorkout() (*model.Workout, error) {
	items, err := workouts.all(s)
	if err != nil {
		return nil, err
	}
	w, ok := lo.Find(items, func(w model.Workout) bool { return !w.IsCompleted })
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *Store) WorkoutsBetween(from, to time.Time) ([]model.Workout, error) {
	items, err := workouts.all(s)
	if err != nil {
		return nil, err
	}
	start, end := RangeBounds(from, to)
	return lo.Filter(items, func(w model.Workout, _ int) bool {
		return within(w.StartTime, start, end)
	}), nil
}

func validateSetSequence(w model.Workout) error {
	for _, ex := range w.Exercises {
		for i, set := range ex.Sets {
			if set.SetNumber != i+1 {
				return fmt.Errorf("workout %s exercise %s: set %d has number %d: %w", w.ID, ex.ExerciseID, i+1, set.SetNumber, ErrSetSequence)
			}
		}
	}
	return nil
}

// ReplaceWorkouts rewrites the whole collection. It checks set numbering
// but not the single-active rule, so it can store repairs of data that
// already breaks it.
func (s *Store) ReplaceWorkouts(items []model.Workout) error {
	for _, w := range items {
		if w.ID == "" {
			return fmt.Errorf("replace %s: %w", SlotWorkouts, ErrMissingID)
		}
		if err := validateSetSequence(w); err != nil {
			return err
		}
	}
	return workouts.save(s, items)
}
