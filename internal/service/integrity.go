package service

import (
	"fmt"
	"strings"

	"github.com/saadjs/fitlog/internal/catalog"
	"github.com/saadjs/fitlog/internal/codec"
	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type SlotCheck struct {
	Slot    string `json:"slot"`
	Present bool   `json:"present"`
	Items   int    `json:"items"`
	Error   string `json:"error,omitempty"`
}

type DoctorReport struct {
	Slots             []SlotCheck `json:"slots"`
	CorruptSlots      int         `json:"corrupt_slots"`
	ActiveWorkouts    int         `json:"active_workouts"`
	SetSequenceIssues int         `json:"set_sequence_issues"`
	UnknownExercises  int         `json:"unknown_exercises"`
	RenumberedSets    int         `json:"renumbered_sets,omitempty"`
	ClosedWorkouts    int         `json:"closed_workouts,omitempty"`
	StrayKeys         []string    `json:"stray_keys,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return r.CorruptSlots == 0 && r.ActiveWorkouts <= 1 && r.SetSequenceIssues == 0 && r.UnknownExercises == 0
}

// RunDoctor decodes every slot independently and checks the workout
// invariants. With fix, exercises whose set numbers drifted are renumbered
// 1..n and every incomplete workout after the first is marked completed,
// ending at its start time. Stray keys are reported but never removed.
func RunDoctor(s *store.Store, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	var workouts []model.Workout
	for _, slot := range store.Slots() {
		check := SlotCheck{Slot: string(slot)}
		text, err := s.Raw(slot)
		if err != nil {
			return report, fmt.Errorf("doctor read %s: %w", slot, err)
		}
		check.Present = strings.TrimSpace(text) != ""
		n, decoded, err := decodeSlot(slot, text)
		if err != nil {
			check.Error = err.Error()
			report.CorruptSlots++
		}
		check.Items = n
		if slot == store.SlotWorkouts && decoded != nil {
			workouts = decoded
		}
		report.Slots = append(report.Slots, check)
	}

	dirty := false
	for i, w := range workouts {
		if !w.IsCompleted {
			report.ActiveWorkouts++
			if fix && report.ActiveWorkouts > 1 {
				end := w.StartTime
				workouts[i].IsCompleted = true
				workouts[i].EndTime = &end
				report.ClosedWorkouts++
				dirty = true
			}
		}
		for j, ex := range w.Exercises {
			if _, ok := catalog.Lookup(ex.ExerciseID); !ok {
				report.UnknownExercises++
			}
			for k, set := range ex.Sets {
				if set.SetNumber != k+1 {
					report.SetSequenceIssues++
					if fix {
						workouts[i].Exercises[j].Sets[k].SetNumber = k + 1
						report.RenumberedSets++
						dirty = true
					}
				}
			}
		}
	}
	if dirty {
		if err := s.ReplaceWorkouts(workouts); err != nil {
			return report, fmt.Errorf("doctor fix workouts: %w", err)
		}
	}

	stray, err := s.StrayKeys()
	if err != nil {
		return report, fmt.Errorf("doctor: %w", err)
	}
	report.StrayKeys = stray
	return report, nil
}

func decodeSlot(slot store.Slot, text string) (int, []model.Workout, error) {
	switch slot {
	case store.SlotUser:
		u, err := codec.DecodeUser(text)
		return countOne(u != nil), nil, err
	case store.SlotNutritionGoal:
		g, err := codec.DecodeNutritionGoal(text)
		return countOne(g != nil), nil, err
	case store.SlotWorkouts:
		items, err := codec.DecodeWorkouts(text)
		return len(items), items, err
	case store.SlotBodyMetrics:
		items, err := codec.DecodeBodyMetrics(text)
		return len(items), nil, err
	case store.SlotMeals:
		items, err := codec.DecodeMeals(text)
		return len(items), nil, err
	case store.SlotConversations:
		items, err := codec.DecodeConversations(text)
		return len(items), nil, err
	}
	return 0, nil, fmt.Errorf("unknown slot %q", slot)
}

func countOne(present bool) int {
	if present {
		return 1
	}
	return 0
}
