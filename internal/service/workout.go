package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/saadjs/fitlog/internal/catalog"
	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type SetInput struct {
	Weight    *float64
	Unit      string
	Reps      *int
	RIR       *int
	SetType   string
	Completed bool
}

// SetPatch changes only the fields that are set.
type SetPatch struct {
	Weight    *float64
	Unit      string
	Reps      *int
	RIR       *int
	SetType   *string
	Completed *bool
}

type WorkoutFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Limit    int
}

// WorkoutTotals summarizes the sets of one or more workouts. Volume is
// weight x reps over completed sets that carry both.
type WorkoutTotals struct {
	Exercises     int     `json:"exercises"`
	Sets          int     `json:"sets"`
	CompletedSets int     `json:"completed_sets"`
	VolumeKg      float64 `json:"volume_kg"`
	AverageRIR    float64 `json:"avg_rir,omitempty"`
	RIRSamples    int     `json:"-"`
}

func StartWorkout(s *store.Store, name string, at time.Time) (model.Workout, error) {
	active, err := s.ActiveWorkout()
	if err != nil {
		return model.Workout{}, err
	}
	if active != nil {
		return model.Workout{}, fmt.Errorf("finish workout %s (%s) first: %w", active.ID, active.Name, store.ErrActiveWorkoutExists)
	}
	if at.IsZero() {
		at = s.Now()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultWorkoutName(at)
	}
	w := model.Workout{ID: s.NewID(), Name: name, StartTime: at, Exercises: []model.Exercise{}}
	if err := s.UpsertWorkout(w); err != nil {
		return model.Workout{}, fmt.Errorf("start workout: %w", err)
	}
	return w, nil
}

func defaultWorkoutName(at time.Time) string {
	l := at.Local()
	switch h := l.Hour(); {
	case h < 12:
		return "Morning workout"
	case h < 17:
		return "Afternoon workout"
	default:
		return "Evening workout"
	}
}

// resolveWorkout returns the named workout, or the active one when id is
// empty.
func resolveWorkout(s *store.Store, id string) (model.Workout, error) {
	id = strings.TrimSpace(id)
	if id != "" {
		return s.Workout(id)
	}
	active, err := s.ActiveWorkout()
	if err != nil {
		return model.Workout{}, err
	}
	if active == nil {
		return model.Workout{}, fmt.Errorf("no workout in progress: %w", store.ErrNotFound)
	}
	return *active, nil
}

func requireOpen(w model.Workout) error {
	if w.IsCompleted {
		return fmt.Errorf("workout %s is already finished", w.ID)
	}
	return nil
}

func AddExercise(s *store.Store, workoutID, exerciseID, notes string) (model.Exercise, error) {
	w, err := resolveWorkout(s, workoutID)
	if err != nil {
		return model.Exercise{}, err
	}
	if err := requireOpen(w); err != nil {
		return model.Exercise{}, err
	}
	entry, ok := catalog.Lookup(exerciseID)
	if !ok {
		return model.Exercise{}, fmt.Errorf("unknown exercise %q (see `fitlog exercises`)", exerciseID)
	}
	ex := model.Exercise{ID: s.NewID(), ExerciseID: entry.ID, Sets: []model.Set{}, Notes: strings.TrimSpace(notes)}
	w.Exercises = append(w.Exercises, ex)
	if err := s.UpsertWorkout(w); err != nil {
		return model.Exercise{}, fmt.Errorf("add exercise: %w", err)
	}
	return ex, nil
}

// findExercise matches the exercise entry id first, then the last entry
// with that catalog id.
func findExercise(w model.Workout, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i, ex := range w.Exercises {
		if ex.ID == ref {
			return i, nil
		}
	}
	for i := len(w.Exercises) - 1; i >= 0; i-- {
		if w.Exercises[i].ExerciseID == normalizeName(ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("exercise %q not in workout %s: %w", ref, w.ID, store.ErrNotFound)
}

func findSet(w model.Workout, setID string) (int, int, error) {
	for i, ex := range w.Exercises {
		for j, set := range ex.Sets {
			if set.ID == setID {
				return i, j, nil
			}
		}
	}
	return -1, -1, fmt.Errorf("set %q not in workout %s: %w", setID, w.ID, store.ErrNotFound)
}

func validateRIR(rir *int) error {
	if rir != nil && (*rir < model.MinRIR || *rir > model.MaxRIR) {
		return fmt.Errorf("rir must be between %d and %d", model.MinRIR, model.MaxRIR)
	}
	return nil
}

func validateReps(reps *int) error {
	if reps != nil && *reps < 0 {
		return fmt.Errorf("reps must be >= 0")
	}
	return nil
}

func parseSetType(value string) (model.SetType, error) {
	v := normalizeName(value)
	if v == "" {
		return model.SetTypeWork, nil
	}
	st := model.SetType(v)
	if !st.Valid() {
		return "", fmt.Errorf("invalid set type %q (use work, warm, drop or failure)", value)
	}
	return st, nil
}

func setWeightKg(weight *float64, unit string) (*float64, error) {
	if weight == nil {
		return nil, nil
	}
	if *weight == 0 {
		zero := 0.0
		return &zero, nil
	}
	kg, err := convertWeightToKg(*weight, unit)
	if err != nil {
		return nil, err
	}
	return &kg, nil
}

// AddSet appends a set numbered after the exercise's last one.
func AddSet(s *store.Store, workoutID, exerciseRef string, in SetInput) (model.Set, error) {
	w, err := resolveWorkout(s, workoutID)
	if err != nil {
		return model.Set{}, err
	}
	if err := requireOpen(w); err != nil {
		return model.Set{}, err
	}
	idx, err := findExercise(w, exerciseRef)
	if err != nil {
		return model.Set{}, err
	}
	if err := validateRIR(in.RIR); err != nil {
		return model.Set{}, err
	}
	if err := validateReps(in.Reps); err != nil {
		return model.Set{}, err
	}
	st, err := parseSetType(in.SetType)
	if err != nil {
		return model.Set{}, err
	}
	weight, err := setWeightKg(in.Weight, in.Unit)
	if err != nil {
		return model.Set{}, err
	}
	set := model.Set{
		ID:          s.NewID(),
		SetNumber:   len(w.Exercises[idx].Sets) + 1,
		Weight:      weight,
		Reps:        in.Reps,
		RIR:         in.RIR,
		SetType:     st,
		IsCompleted: in.Completed,
	}
	w.Exercises[idx].Sets = append(w.Exercises[idx].Sets, set)
	if err := s.UpsertWorkout(w); err != nil {
		return model.Set{}, fmt.Errorf("add set: %w", err)
	}
	return set, nil
}

func UpdateSet(s *store.Store, workoutID, setID string, p SetPatch) (model.Set, error) {
	w, err := resolveWorkout(s, workoutID)
	if err != nil {
		return model.Set{}, err
	}
	i, j, err := findSet(w, setID)
	if err != nil {
		return model.Set{}, err
	}
	set := w.Exercises[i].Sets[j]
	if err := validateRIR(p.RIR); err != nil {
		return model.Set{}, err
	}
	if err := validateReps(p.Reps); err != nil {
		return model.Set{}, err
	}
	if p.Weight != nil {
		if set.Weight, err = setWeightKg(p.Weight, p.Unit); err != nil {
			return model.Set{}, err
		}
	}
	if p.Reps != nil {
		set.Reps = p.Reps
	}
	if p.RIR != nil {
		set.RIR = p.RIR
	}
	if p.SetType != nil {
		if set.SetType, err = parseSetType(*p.SetType); err != nil {
			return model.Set{}, err
		}
	}
	if p.Completed != nil {
		set.IsCompleted = *p.Completed
	}
	w.Exercises[i].Sets[j] = set
	if err := s.UpsertWorkout(w); err != nil {
		return model.Set{}, fmt.Errorf("update set: %w", err)
	}
	return set, nil
}

// RemoveSet drops a set and renumbers the rest of its exercise from 1.
func RemoveSet(s *store.Store, workoutID, setID string) error {
	w, err := resolveWorkout(s, workoutID)
	if err != nil {
		return err
	}
	i, j, err := findSet(w, setID)
	if err != nil {
		return err
	}
	sets := append(w.Exercises[i].Sets[:j:j], w.Exercises[i].Sets[j+1:]...)
	for k := range sets {
		sets[k].SetNumber = k + 1
	}
	w.Exercises[i].Sets = sets
	if err := s.UpsertWorkout(w); err != nil {
		return fmt.Errorf("remove set: %w", err)
	}
	return nil
}

func FinishWorkout(s *store.Store, workoutID string, at time.Time, notes string) (model.Workout, error) {
	w, err := resolveWorkout(s, workoutID)
	if err != nil {
		return model.Workout{}, err
	}
	if err := requireOpen(w); err != nil {
		return model.Workout{}, err
	}
	if at.IsZero() {
		at = s.Now()
	}
	if at.Before(w.StartTime) {
		return model.Workout{}, fmt.Errorf("end time %s is before start time %s", at.Format(time.RFC3339), w.StartTime.Format(time.RFC3339))
	}
	w.EndTime = &at
	w.IsCompleted = true
	if n := strings.TrimSpace(notes); n != "" {
		w.Notes = n
	}
	if err := s.UpsertWorkout(w); err != nil {
		return model.Workout{}, fmt.Errorf("finish workout: %w", err)
	}
	return w, nil
}

func DeleteWorkout(s *store.Store, id string) error {
	if _, err := s.Workout(id); err != nil {
		return err
	}
	return s.DeleteWorkout(id)
}

// ListWorkouts returns workouts newest first.
func ListWorkouts(s *store.Store, f WorkoutFilter) ([]model.Workout, error) {
	from, to, bounded, err := dateRange(f.Date, f.FromDate, f.ToDate)
	if err != nil {
		return nil, err
	}
	var items []model.Workout
	if bounded {
		items, err = s.WorkoutsBetween(from, to)
	} else {
		items, err = s.Workouts()
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartTime.After(items[j].StartTime)
	})
	if f.Limit > 0 && len(items) > f.Limit {
		items = items[:f.Limit]
	}
	return items, nil
}

func SummarizeWorkouts(workouts ...model.Workout) WorkoutTotals {
	var t WorkoutTotals
	rirSum := 0
	for _, w := range workouts {
		t.Exercises += len(w.Exercises)
		for _, ex := range w.Exercises {
			t.Sets += len(ex.Sets)
			done := lo.Filter(ex.Sets, func(set model.Set, _ int) bool { return set.IsCompleted })
			t.CompletedSets += len(done)
			t.VolumeKg += lo.SumBy(done, func(set model.Set) float64 {
				if set.Weight == nil || set.Reps == nil {
					return 0
				}
				return *set.Weight * float64(*set.Reps)
			})
			for _, set := range done {
				if set.RIR != nil {
					rirSum += *set.RIR
					t.RIRSamples++
				}
			}
		}
	}
	t.VolumeKg = round1(t.VolumeKg)
	if t.RIRSamples > 0 {
		t.AverageRIR = round1(float64(rirSum) / float64(t.RIRSamples))
	}
	return t
}

// IsNotFound reports whether err came from a missing workout, set or entry.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
