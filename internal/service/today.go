package service

import (
	"time"

	"github.com/samber/lo"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type TodayStatus struct {
	Date              string         `json:"date"`
	Meals             int            `json:"meals"`
	Calories          float64        `json:"calories"`
	ProteinG          float64        `json:"protein_g"`
	CarbsG            float64        `json:"carbs_g"`
	FatG              float64        `json:"fat_g"`
	GoalCalories      float64        `json:"goal_calories,omitempty"`
	GoalProteinG      float64        `json:"goal_protein_g,omitempty"`
	GoalCarbsG        float64        `json:"goal_carbs_g,omitempty"`
	GoalFatG          float64        `json:"goal_fat_g,omitempty"`
	RemainingCalories float64        `json:"remaining_calories,omitempty"`
	RemainingProteinG float64        `json:"remaining_protein_g,omitempty"`
	RemainingCarbsG   float64        `json:"remaining_carbs_g,omitempty"`
	RemainingFatG     float64        `json:"remaining_fat_g,omitempty"`
	HasGoal           bool           `json:"has_goal"`
	Workouts          int            `json:"workouts"`
	Training          WorkoutTotals  `json:"training"`
	ActiveWorkout     *model.Workout `json:"-"`
	LatestWeightKg    *float64       `json:"latest_weight_kg,omitempty"`
}

type macroTotals struct {
	Calories, Protein, Carbs, Fat float64
}

func sumMeals(meals []model.Meal) macroTotals {
	return macroTotals{
		Calories: lo.SumBy(meals, func(m model.Meal) float64 { return valueOrZero(m.Calories) }),
		Protein:  lo.SumBy(meals, func(m model.Meal) float64 { return valueOrZero(m.Protein) }),
		Carbs:    lo.SumBy(meals, func(m model.Meal) float64 { return valueOrZero(m.Carbs) }),
		Fat:      lo.SumBy(meals, func(m model.Meal) float64 { return valueOrZero(m.Fat) }),
	}
}

func TodaySummary(s *store.Store, date time.Time) (*TodayStatus, error) {
	start := beginningOfDay(date)
	status := &TodayStatus{Date: start.Format(dateLayout)}

	meals, err := s.MealsOn(start)
	if err != nil {
		return nil, err
	}
	totals := sumMeals(meals)
	status.Meals = len(meals)
	status.Calories = round1(totals.Calories)
	status.ProteinG = round1(totals.Protein)
	status.CarbsG = round1(totals.Carbs)
	status.FatG = round1(totals.Fat)

	goal, err := s.NutritionGoal()
	if err != nil {
		return nil, err
	}
	if goal != nil {
		status.HasGoal = true
		status.GoalCalories = goal.DailyCalories
		status.GoalProteinG = goal.DailyProtein
		status.GoalCarbsG = goal.DailyCarbs
		status.GoalFatG = goal.DailyFat
		status.RemainingCalories = round1(goal.DailyCalories - status.Calories)
		status.RemainingProteinG = round1(goal.DailyProtein - status.ProteinG)
		status.RemainingCarbsG = round1(goal.DailyCarbs - status.CarbsG)
		status.RemainingFatG = round1(goal.DailyFat - status.FatG)
	}

	workouts, err := s.WorkoutsBetween(start, start)
	if err != nil {
		return nil, err
	}
	status.Workouts = len(workouts)
	status.Training = SummarizeWorkouts(workouts...)
	if status.ActiveWorkout, err = s.ActiveWorkout(); err != nil {
		return nil, err
	}

	metrics, err := s.BodyMetrics()
	if err != nil {
		return nil, err
	}
	_, end := store.DayBounds(start)
	weighed := lo.Filter(metrics, func(m model.BodyMetric, _ int) bool {
		return m.Weight != nil && !m.Date.After(end)
	})
	if len(weighed) > 0 {
		latest := lo.MaxBy(weighed, func(a, b model.BodyMetric) bool { return a.Date.After(b.Date) })
		status.LatestWeightKg = latest.Weight
	}
	return status, nil
}
