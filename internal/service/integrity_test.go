package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/storage"
	"github.com/saadjs/fitlog/internal/store"
)

func TestRunDoctorReportsAndFixes(t *testing.T) {
	t.Parallel()
	mem := storage.NewMemory()
	s := store.New(mem)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)

	if err := mem.Set(s.Key(store.SlotMeals), `[{"id":"m1"`); err != nil {
		t.Fatalf("seed meals: %v", err)
	}
	if err := mem.Set(s.Key(store.SlotWorkouts), `[
 {"id":"a","startTime":"2026-03-01T09:00:00Z","isCompleted":false,"exercises":[{"id":"e1","exerciseId":"bench-press","sets":[{"id":"s1","setNumber":2},{"id":"s2","setNumber":5}]}]},
 {"id":"b","startTime":"2026-03-02T09:00:00Z","isCompleted":false,"exercises":[{"id":"e2","exerciseId":"mystery-move","sets":[]}]}
]`); err != nil {
		t.Fatalf("seed workouts: %v", err)
	}
	if err := s.UpsertBodyMetric(model.BodyMetric{ID: "b1", Date: at, Weight: floatPtr(80)}); err != nil {
		t.Fatalf("seed body metric: %v", err)
	}

	report, err := service.RunDoctor(s, false)
	if err != nil {
		t.Fatalf("run doctor: %v", err)
	}
	if report.Healthy() {
		t.Fatalf("expected unhealthy report")
	}
	if report.CorruptSlots != 1 || report.ActiveWorkouts != 2 || report.SetSequenceIssues != 2 || report.UnknownExercises != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	var bodyItems int
	for _, c := range report.Slots {
		if c.Slot == string(store.SlotBodyMetrics) {
			bodyItems = c.Items
		}
		if c.Slot == string(store.SlotMeals) && c.Error == "" {
			t.Fatalf("expected meals slot error")
		}
	}
	if bodyItems != 1 {
		t.Fatalf("expected 1 body metric counted, got %d", bodyItems)
	}

	fixed, err := service.RunDoctor(s, true)
	if err != nil {
		t.Fatalf("run doctor fix: %v", err)
	}
	if fixed.RenumberedSets != 2 {
		t.Fatalf("expected 2 renumbered sets, got %+v", fixed)
	}
	again, err := service.RunDoctor(s, false)
	if err != nil {
		t.Fatalf("rerun doctor: %v", err)
	}
	if again.SetSequenceIssues != 0 {
		t.Fatalf("expected set numbers repaired, got %+v", again)
	}
}

func TestDoctorClosesExtraActiveWorkouts(t *testing.T) {
	t.Parallel()
	mem := storage.NewMemory()
	s := store.New(mem)
	if err := mem.Set(s.Key(store.SlotWorkouts), `[
 {"id":"a","name":"Push","startTime":"2026-03-01T09:00:00Z","isCompleted":false,"exercises":[]},
 {"id":"b","name":"Pull","startTime":"2026-03-02T09:00:00Z","isCompleted":false,"exercises":[]}
]`); err != nil {
		t.Fatalf("seed workouts: %v", err)
	}
	if err := mem.Set("fitlog:routines", "[]"); err != nil {
		t.Fatalf("seed stray key: %v", err)
	}

	if _, err := service.AddExercise(s, "", "bench-press", ""); err != nil {
		t.Fatalf("add exercise to first active workout: %v", err)
	}

	report, err := service.RunDoctor(s, true)
	if err != nil {
		t.Fatalf("run doctor fix: %v", err)
	}
	if report.ActiveWorkouts != 2 || report.ClosedWorkouts != 1 {
		t.Fatalf("unexpected fix report %+v", report)
	}
	if len(report.StrayKeys) != 1 || report.StrayKeys[0] != "fitlog:routines" {
		t.Fatalf("expected stray key reported, got %v", report.StrayKeys)
	}

	again, err := service.RunDoctor(s, false)
	if err != nil {
		t.Fatalf("rerun doctor: %v", err)
	}
	if !again.Healthy() || again.ActiveWorkouts != 1 {
		t.Fatalf("expected healthy report with one active workout, got %+v", again)
	}
	b, err := s.Workout("b")
	if err != nil {
		t.Fatalf("load b: %v", err)
	}
	if !b.IsCompleted || b.EndTime == nil || !b.EndTime.Equal(b.StartTime) {
		t.Fatalf("expected b closed at its start time, got %+v", b)
	}
	a, err := s.Workout("a")
	if err != nil || a.IsCompleted || len(a.Exercises) != 1 {
		t.Fatalf("expected a still active with one exercise, got %+v, %v", a, err)
	}
}
