package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type MealInput struct {
	Name     string
	MealType string
	Date     time.Time
	Calories *float64
	ProteinG *float64
	CarbsG   *float64
	FatG     *float64
}

// MealPatch changes only the fields that are set.
type MealPatch struct {
	Name     *string
	MealType *string
	Date     *time.Time
	Calories *float64
	ProteinG *float64
	CarbsG   *float64
	FatG     *float64
}

type MealFilter struct {
	Date     string
	FromDate string
	ToDate   string
	MealType string
}

// MealTypeForTime guesses the meal slot from the local hour.
func MealTypeForTime(t time.Time) model.MealType {
	switch h := t.Local().Hour(); {
	case h >= 5 && h < 11:
		return model.MealTypeBreakfast
	case h >= 11 && h < 16:
		return model.MealTypeLunch
	case h >= 16 && h < 22:
		return model.MealTypeDinner
	default:
		return model.MealTypeSnack
	}
}

func parseMealType(value string, at time.Time) (model.MealType, error) {
	v := normalizeName(value)
	if v == "" {
		return MealTypeForTime(at), nil
	}
	mt := model.MealType(v)
	if !mt.Valid() {
		return "", fmt.Errorf("invalid meal type %q (use breakfast, lunch, dinner or snack)", value)
	}
	return mt, nil
}

func validateMacros(calories, protein, carbs, fat *float64) error {
	for _, f := range []struct {
		name  string
		value *float64
	}{{"calories", calories}, {"protein", protein}, {"carbs", carbs}, {"fat", fat}} {
		if err := validateOptionalNonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func LogMeal(s *store.Store, in MealInput) (model.Meal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Meal{}, fmt.Errorf("meal name is required")
	}
	if err := validateMacros(in.Calories, in.ProteinG, in.CarbsG, in.FatG); err != nil {
		return model.Meal{}, err
	}
	at := in.Date
	if at.IsZero() {
		at = s.Now()
	}
	mt, err := parseMealType(in.MealType, at)
	if err != nil {
		return model.Meal{}, err
	}
	m := model.Meal{
		ID:       s.NewID(),
		Name:     name,
		Date:     at,
		MealType: mt,
		Calories: in.Calories,
		Protein:  in.ProteinG,
		Carbs:    in.CarbsG,
		Fat:      in.FatG,
	}
	if err := s.UpsertMeal(m); err != nil {
		return model.Meal{}, fmt.Errorf("log meal: %w", err)
	}
	return m, nil
}

func UpdateMeal(s *store.Store, id string, p MealPatch) (model.Meal, error) {
	m, err := s.Meal(id)
	if err != nil {
		return model.Meal{}, err
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return model.Meal{}, fmt.Errorf("meal name is required")
		}
		m.Name = name
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.MealType != nil {
		mt, err := parseMealType(*p.MealType, m.Date)
		if err != nil {
			return model.Meal{}, err
		}
		m.MealType = mt
	}
	if err := validateMacros(p.Calories, p.ProteinG, p.CarbsG, p.FatG); err != nil {
		return model.Meal{}, err
	}
	if p.Calories != nil {
		m.Calories = p.Calories
	}
	if p.ProteinG != nil {
		m.Protein = p.ProteinG
	}
	if p.CarbsG != nil {
		m.Carbs = p.CarbsG
	}
	if p.FatG != nil {
		m.Fat = p.FatG
	}
	if err := s.UpsertMeal(m); err != nil {
		return model.Meal{}, fmt.Errorf("update meal %s: %w", id, err)
	}
	return m, nil
}

func DeleteMeal(s *store.Store, id string) error {
	if _, err := s.Meal(id); err != nil {
		return err
	}
	return s.DeleteMeal(id)
}

// ListMeals defaults to today when no date bound is given.
func ListMeals(s *store.Store, f MealFilter) ([]model.Meal, error) {
	from, to, bounded, err := dateRange(f.Date, f.FromDate, f.ToDate)
	if err != nil {
		return nil, err
	}
	if !bounded {
		from, to = s.Now(), s.Now()
	}
	items, err := s.MealsBetween(from, to)
	if err != nil {
		return nil, err
	}
	mt := normalizeName(f.MealType)
	if mt == "" {
		return items, nil
	}
	if !model.MealType(mt).Valid() {
		return nil, fmt.Errorf("invalid meal type %q (use breakfast, lunch, dinner or snack)", f.MealType)
	}
	out := make([]model.Meal, 0, len(items))
	for _, m := range items {
		if string(m.MealType) == mt {
			out = append(out, m)
		}
	}
	return out, nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
