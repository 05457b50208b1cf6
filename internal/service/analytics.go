package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type DaySummary struct {
	Date     string  `json:"date"`
	Meals    int     `json:"meals"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

type MealTypeBreakdown struct {
	MealType string  `json:"meal_type"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

type AdherenceSummary struct {
	EvaluatedDays  int     `json:"evaluated_days"`
	WithinGoalDays int     `json:"within_goal_days"`
	PercentWithin  float64 `json:"percent_within_goal"`
}

type BodyTrend struct {
	Entries       int      `json:"entries"`
	StartWeightKg *float64 `json:"start_weight_kg,omitempty"`
	EndWeightKg   *float64 `json:"end_weight_kg,omitempty"`
	ChangeKg      *float64 `json:"change_kg,omitempty"`
}

type AnalyticsReport struct {
	FromDate              string              `json:"from_date"`
	ToDate                string              `json:"to_date"`
	TotalCalories         float64             `json:"total_calories"`
	TotalProtein          float64             `json:"total_protein_g"`
	TotalCarbs            float64             `json:"total_carbs_g"`
	TotalFat              float64             `json:"total_fat_g"`
	DaysWithMeals         int                 `json:"days_with_meals"`
	AverageCaloriesPerDay float64             `json:"avg_calories_per_day"`
	AverageProteinPerDay  float64             `json:"avg_protein_per_day"`
	AverageCarbsPerDay    float64             `json:"avg_carbs_per_day"`
	AverageFatPerDay      float64             `json:"avg_fat_per_day"`
	HighestDay            *DaySummary         `json:"highest_day,omitempty"`
	LowestDay             *DaySummary         `json:"lowest_day,omitempty"`
	Adherence             *AdherenceSummary   `json:"adherence,omitempty"`
	ByMealType            []MealTypeBreakdown `json:"by_meal_type"`
	Days                  []DaySummary        `json:"days"`
	Workouts              int                 `json:"workouts"`
	CompletedWorkouts     int                 `json:"completed_workouts"`
	Training              WorkoutTotals       `json:"training"`
	Body                  BodyTrend           `json:"body"`
}

// WeekRange is the seven local days ending on the day of t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	end := beginningOfDay(t)
	return end.AddDate(0, 0, -6), end
}

func AnalyticsRange(s *store.Store, from, to time.Time, tolerance float64) (*AnalyticsReport, error) {
	from = beginningOfDay(from)
	to = beginningOfDay(to)
	if from.After(to) {
		return nil, fmt.Errorf("from date must be <= to date")
	}

	report := &AnalyticsReport{
		FromDate: from.Format(dateLayout),
		ToDate:   to.Format(dateLayout),
	}

	meals, err := s.MealsBetween(from, to)
	if err != nil {
		return nil, err
	}
	days := daySummaries(meals)
	report.Days = days
	report.DaysWithMeals = len(days)
	report.ByMealType = mealTypeBreakdown(meals)

	totals := sumMeals(meals)
	report.TotalCalories = round1(totals.Calories)
	report.TotalProtein = round1(totals.Protein)
	report.TotalCarbs = round1(totals.Carbs)
	report.TotalFat = round1(totals.Fat)
	if report.DaysWithMeals > 0 {
		div := float64(report.DaysWithMeals)
		report.AverageCaloriesPerDay = round1(totals.Calories / div)
		report.AverageProteinPerDay = round1(totals.Protein / div)
		report.AverageCarbsPerDay = round1(totals.Carbs / div)
		report.AverageFatPerDay = round1(totals.Fat / div)
		report.HighestDay, report.LowestDay = extremeDays(days)
	}

	goal, err := s.NutritionGoal()
	if err != nil {
		return nil, err
	}
	if goal != nil {
		a := calculateAdherence(days, *goal, tolerance)
		report.Adherence = &a
	}

	workouts, err := s.WorkoutsBetween(from, to)
	if err != nil {
		return nil, err
	}
	report.Workouts = len(workouts)
	report.CompletedWorkouts = lo.CountBy(workouts, func(w model.Workout) bool { return w.IsCompleted })
	report.Training = SummarizeWorkouts(workouts...)

	metrics, err := s.BodyMetricsBetween(from, to)
	if err != nil {
		return nil, err
	}
	report.Body = bodyTrend(metrics)
	return report, nil
}

func daySummaries(meals []model.Meal) []DaySummary {
	grouped := lo.GroupBy(meals, func(m model.Meal) string { return m.Date.Local().Format(dateLayout) })
	out := make([]DaySummary, 0, len(grouped))
	for day, items := range grouped {
		t := sumMeals(items)
		out = append(out, DaySummary{
			Date:     day,
			Meals:    len(items),
			Calories: round1(t.Calories),
			Protein:  round1(t.Protein),
			Carbs:    round1(t.Carbs),
			Fat:      round1(t.Fat),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func mealTypeBreakdown(meals []model.Meal) []MealTypeBreakdown {
	grouped := lo.GroupBy(meals, func(m model.Meal) model.MealType { return m.MealType })
	out := make([]MealTypeBreakdown, 0, len(grouped))
	for mt, items := range grouped {
		t := sumMeals(items)
		out = append(out, MealTypeBreakdown{
			MealType: string(mt),
			Calories: round1(t.Calories),
			Protein:  round1(t.Protein),
			Carbs:    round1(t.Carbs),
			Fat:      round1(t.Fat),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Calories != out[j].Calories {
			return out[i].Calories > out[j].Calories
		}
		return out[i].MealType < out[j].MealType
	})
	return out
}

func calculateAdherence(days []DaySummary, goal model.NutritionGoal, tolerance float64) AdherenceSummary {
	out := AdherenceSummary{EvaluatedDays: len(days)}
	for _, d := range days {
		if d.Calories <= goal.DailyCalories &&
			AdherenceWithin(d.Protein, goal.DailyProtein, tolerance) &&
			AdherenceWithin(d.Carbs, goal.DailyCarbs, tolerance) &&
			AdherenceWithin(d.Fat, goal.DailyFat, tolerance) {
			out.WithinGoalDays++
		}
	}
	if out.EvaluatedDays > 0 {
		out.PercentWithin = round1(float64(out.WithinGoalDays) / float64(out.EvaluatedDays) * 100)
	}
	return out
}

func extremeDays(days []DaySummary) (*DaySummary, *DaySummary) {
	if len(days) == 0 {
		return nil, nil
	}
	copied := make([]DaySummary, len(days))
	copy(copied, days)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].Calories < copied[j].Calories
	})
	low := copied[0]
	high := copied[len(copied)-1]
	return &high, &low
}

func bodyTrend(metrics []model.BodyMetric) BodyTrend {
	out := BodyTrend{Entries: len(metrics)}
	weighed := lo.Filter(metrics, func(m model.BodyMetric, _ int) bool { return m.Weight != nil })
	if len(weighed) == 0 {
		return out
	}
	sort.SliceStable(weighed, func(i, j int) bool { return weighed[i].Date.Before(weighed[j].Date) })
	first := *weighed[0].Weight
	last := *weighed[len(weighed)-1].Weight
	change := round1(last - first)
	out.StartWeightKg = &first
	out.EndWeightKg = &last
	out.ChangeKg = &change
	return out
}
