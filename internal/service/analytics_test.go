package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/fitlog/internal/service"
)

func seedWeek(t *testing.T) (time.Time, func() *service.AnalyticsReport) {
	t.Helper()
	end := time.Date(2026, 6, 7, 21, 0, 0, 0, time.Local)
	s, _ := newTestStore(t, end)
	from, to := service.WeekRange(end)

	meals := []service.MealInput{
		{Name: "Oats", MealType: "breakfast", Date: from.Add(8 * time.Hour), Calories: floatPtr(400), ProteinG: floatPtr(20), CarbsG: floatPtr(60), FatG: floatPtr(8)},
		{Name: "Steak", MealType: "dinner", Date: from.Add(19 * time.Hour), Calories: floatPtr(900), ProteinG: floatPtr(70), CarbsG: floatPtr(10), FatG: floatPtr(50)},
		{Name: "Salad", MealType: "lunch", Date: to.Add(12 * time.Hour), Calories: floatPtr(500), ProteinG: floatPtr(30), CarbsG: floatPtr(40), FatG: floatPtr(20)},
		{Name: "Outside", MealType: "snack", Date: from.Add(-time.Hour), Calories: floatPtr(9999)},
	}
	for _, in := range meals {
		if _, err := service.LogMeal(s, in); err != nil {
			t.Fatalf("log meal %s: %v", in.Name, err)
		}
	}
	if err := service.SetGoal(s, service.SetGoalInput{Calories: 1400, ProteinG: 90, CarbsG: 70, FatG: 58}); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	for i, kg := range []float64{82, 81.2} {
		if _, err := service.AddBodyMetric(s, service.BodyMetricInput{Weight: floatPtr(kg), MeasuredAt: from.AddDate(0, 0, i*6).Add(7 * time.Hour)}); err != nil {
			t.Fatalf("add body metric: %v", err)
		}
	}
	w, err := service.StartWorkout(s, "Pull", from.AddDate(0, 0, 2).Add(18*time.Hour))
	if err != nil {
		t.Fatalf("start workout: %v", err)
	}
	if _, err := service.AddExercise(s, w.ID, "deadlift", ""); err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if _, err := service.AddSet(s, w.ID, "deadlift", service.SetInput{Weight: floatPtr(140), Reps: intPtr(5), RIR: intPtr(3), Completed: true}); err != nil {
		t.Fatalf("add set: %v", err)
	}
	if _, err := service.AddSet(s, w.ID, "deadlift", service.SetInput{Weight: floatPtr(150), Reps: intPtr(3)}); err != nil {
		t.Fatalf("add set: %v", err)
	}
	if _, err := service.FinishWorkout(s, w.ID, w.StartTime.Add(time.Hour), ""); err != nil {
		t.Fatalf("finish workout: %v", err)
	}

	return end, func() *service.AnalyticsReport {
		report, err := service.AnalyticsRange(s, from, to, 0.10)
		if err != nil {
			t.Fatalf("analytics range: %v", err)
		}
		return report
	}
}

func TestAnalyticsRangeWeek(t *testing.T) {
	t.Parallel()
	_, run := seedWeek(t)
	report := run()

	if report.FromDate != "2026-06-01" || report.ToDate != "2026-06-07" {
		t.Fatalf("unexpected range %s..%s", report.FromDate, report.ToDate)
	}
	if report.TotalCalories != 1800 || report.DaysWithMeals != 2 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.AverageCaloriesPerDay != 900 {
		t.Fatalf("expected 900 avg calories, got %.1f", report.AverageCaloriesPerDay)
	}
	if report.HighestDay == nil || report.HighestDay.Date != "2026-06-01" || report.LowestDay.Date != "2026-06-07" {
		t.Fatalf("unexpected extremes %+v %+v", report.HighestDay, report.LowestDay)
	}
	if report.Adherence == nil || report.Adherence.EvaluatedDays != 2 || report.Adherence.WithinGoalDays != 1 {
		t.Fatalf("unexpected adherence %+v", report.Adherence)
	}
	if len(report.ByMealType) != 3 || report.ByMealType[0].MealType != "dinner" {
		t.Fatalf("unexpected meal type breakdown %+v", report.ByMealType)
	}
	if report.Workouts != 1 || report.CompletedWorkouts != 1 {
		t.Fatalf("unexpected workout counts %+v", report)
	}
	if report.Training.Sets != 2 || report.Training.CompletedSets != 1 || report.Training.VolumeKg != 700 || report.Training.AverageRIR != 3 {
		t.Fatalf("unexpected training totals %+v", report.Training)
	}
	if report.Body.ChangeKg == nil || *report.Body.ChangeKg != -0.8 {
		t.Fatalf("unexpected body trend %+v", report.Body)
	}
}

func TestAnalyticsRangeRejectsReversedDates(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, time.Now())
	now := time.Now()
	if _, err := service.AnalyticsRange(s, now, now.AddDate(0, 0, -1), 0.1); err == nil {
		t.Fatalf("expected reversed range to fail")
	}
}

func TestTodaySummary(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 6, 7, 13, 0, 0, 0, time.Local)
	s, _ := newTestStore(t, now)

	status, err := service.TodaySummary(s, now)
	if err != nil {
		t.Fatalf("today summary on empty store: %v", err)
	}
	if status.HasGoal || status.Meals != 0 || status.LatestWeightKg != nil {
		t.Fatalf("unexpected empty status %+v", status)
	}

	if err := service.SetGoal(s, service.SetGoalInput{Calories: 2000, ProteinG: 150, CarbsG: 200, FatG: 60}); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if _, err := service.LogMeal(s, service.MealInput{Name: "Wrap", Calories: floatPtr(650), ProteinG: floatPtr(45), CarbsG: floatPtr(60), FatG: floatPtr(20)}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if _, err := service.LogMeal(s, service.MealInput{Name: "Shake", Calories: floatPtr(250), ProteinG: floatPtr(40)}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if _, err := service.AddBodyMetric(s, service.BodyMetricInput{Weight: floatPtr(79.4), MeasuredAt: now.AddDate(0, 0, -2)}); err != nil {
		t.Fatalf("add body metric: %v", err)
	}
	if _, err := service.AddBodyMetric(s, service.BodyMetricInput{Weight: floatPtr(70), MeasuredAt: now.AddDate(0, 0, 3)}); err != nil {
		t.Fatalf("add future body metric: %v", err)
	}
	if _, err := service.StartWorkout(s, "Lunch lift", now); err != nil {
		t.Fatalf("start workout: %v", err)
	}

	status, err = service.TodaySummary(s, now)
	if err != nil {
		t.Fatalf("today summary: %v", err)
	}
	if status.Meals != 2 || status.Calories != 900 || status.ProteinG != 85 {
		t.Fatalf("unexpected intake %+v", status)
	}
	if !status.HasGoal || status.RemainingCalories != 1100 || status.RemainingProteinG != 65 || status.RemainingFatG != 40 {
		t.Fatalf("unexpected remaining %+v", status)
	}
	if status.Workouts != 1 || status.ActiveWorkout == nil {
		t.Fatalf("expected an active workout today, got %+v", status)
	}
	if status.LatestWeightKg == nil || *status.LatestWeightKg != 79.4 {
		t.Fatalf("expected latest weight 79.4 as of today, got %v", status.LatestWeightKg)
	}
}
