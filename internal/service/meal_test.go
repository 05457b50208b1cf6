package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/service"
)

func TestLogMealInfersTypeAndValidates(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, time.Date(2026, 5, 10, 8, 15, 0, 0, time.Local))

	m, err := service.LogMeal(s, service.MealInput{Name: "  Oatmeal ", Calories: floatPtr(320), ProteinG: floatPtr(12)})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if m.Name != "Oatmeal" || m.MealType != model.MealTypeBreakfast {
		t.Fatalf("unexpected meal %+v", m)
	}

	if _, err := service.LogMeal(s, service.MealInput{Name: ""}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if _, err := service.LogMeal(s, service.MealInput{Name: "x", Calories: floatPtr(-5)}); err == nil {
		t.Fatalf("expected negative calories to fail")
	}
	if _, err := service.LogMeal(s, service.MealInput{Name: "x", MealType: "brunch"}); err == nil {
		t.Fatalf("expected invalid meal type to fail")
	}
}

func TestMealTypeForTime(t *testing.T) {
	t.Parallel()
	cases := map[int]model.MealType{
		6:  model.MealTypeBreakfast,
		12: model.MealTypeLunch,
		19: model.MealTypeDinner,
		23: model.MealTypeSnack,
		2:  model.MealTypeSnack,
	}
	for hour, want := range cases {
		got := service.MealTypeForTime(time.Date(2026, 1, 1, hour, 0, 0, 0, time.Local))
		if got != want {
			t.Fatalf("hour %d: expected %s, got %s", hour, want, got)
		}
	}
}

func TestUpdateMealPatchesOnlyGivenFields(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, time.Date(2026, 5, 10, 13, 0, 0, 0, time.Local))
	m, err := service.LogMeal(s, service.MealInput{Name: "Burrito", Calories: floatPtr(700), FatG: floatPtr(25)})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	updated, err := service.UpdateMeal(s, m.ID, service.MealPatch{Calories: floatPtr(650), MealType: strPtr("dinner")})
	if err != nil {
		t.Fatalf("update meal: %v", err)
	}
	if *updated.Calories != 650 || *updated.Fat != 25 || updated.MealType != model.MealTypeDinner || updated.Name != "Burrito" {
		t.Fatalf("unexpected updated meal %+v", updated)
	}
	items, err := s.Meals()
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected update in place, got %d meals", len(items))
	}
	if _, err := service.UpdateMeal(s, "nope", service.MealPatch{}); !service.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListMealsDefaultsToTodayAndFiltersType(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local)
	s, _ := newTestStore(t, today)
	for _, in := range []service.MealInput{
		{Name: "Eggs", MealType: "breakfast", Date: today.Add(-4 * time.Hour)},
		{Name: "Salad", MealType: "lunch", Date: today},
		{Name: "Pizza", MealType: "dinner", Date: today.AddDate(0, 0, -1)},
	} {
		if _, err := service.LogMeal(s, in); err != nil {
			t.Fatalf("log meal %s: %v", in.Name, err)
		}
	}
	items, err := service.ListMeals(s, service.MealFilter{})
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 meals today, got %d", len(items))
	}
	lunch, err := service.ListMeals(s, service.MealFilter{MealType: "LUNCH"})
	if err != nil {
		t.Fatalf("list lunch: %v", err)
	}
	if len(lunch) != 1 || lunch[0].Name != "Salad" {
		t.Fatalf("expected salad only, got %+v", lunch)
	}
	yesterday, err := service.ListMeals(s, service.MealFilter{Date: "2026-05-09"})
	if err != nil {
		t.Fatalf("list yesterday: %v", err)
	}
	if len(yesterday) != 1 || yesterday[0].Name != "Pizza" {
		t.Fatalf("expected pizza yesterday, got %+v", yesterday)
	}
}
