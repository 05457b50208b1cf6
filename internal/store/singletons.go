package store

import (
	"fmt"

	"github.com/saadjs/fitlog/internal/codec"
	"github.com/saadjs/fitlog/internal/model"
)

// User returns nil when no profile has been saved.
func (s *Store) User() (*model.UserProfile, error) {
	text, err := s.Raw(SlotUser)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SlotUser, err)
	}
	return codec.DecodeUser(text)
}

func (s *Store) SetUser(u model.UserProfile) error {
	text, err := codec.EncodeUser(u)
	if err != nil {
		return err
	}
	return s.write(SlotUser, text)
}

// NutritionGoal returns nil when no goal has been saved.
func (s *Store) NutritionGoal() (*model.NutritionGoal, error) {
	text, err := s.Raw(SlotNutritionGoal)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SlotNutritionGoal, err)
	}
	return codec.DecodeNutritionGoal(text)
}

func (s *Store) SetNutritionGoal(g model.NutritionGoal) error {
	text, err := codec.EncodeNutritionGoal(g)
	if err != nil {
		return err
	}
	return s.write(SlotNutritionGoal, text)
}
