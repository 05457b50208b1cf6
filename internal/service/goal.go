package service

import (
	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type SetGoalInput struct {
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

func SetGoal(s *store.Store, in SetGoalInput) error {
	if err := validateNonNegativeFloat("calories", in.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", in.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", in.CarbsG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat", in.FatG); err != nil {
		return err
	}
	return s.SetNutritionGoal(model.NutritionGoal{
		DailyCalories: in.Calories,
		DailyProtein:  in.ProteinG,
		DailyCarbs:    in.CarbsG,
		DailyFat:      in.FatG,
	})
}

func AdherenceWithin(actual float64, target float64, tolerance float64) bool {
	if target == 0 {
		return actual == 0
	}
	lower := target * (1 - tolerance)
	upper := target * (1 + tolerance)
	return actual >= lower && actual <= upper
}
