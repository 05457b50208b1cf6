package store

import (
	"time"

	"github.com/samber/lo"

	"github.com/saadjs/fitlog/internal/codec"
	"github.com/saadjs/fitlog/internal/model"
)

var meals = collection[model.Meal]{
	slot:   SlotMeals,
	decode: codec.DecodeMeals,
	encode: codec.EncodeMeals,
	id:     func(m model.Meal) string { return m.ID },
}

func (s *Store) Meals() ([]model.Meal, error) {
	return meals.all(s)
}

func (s *Store) Meal(id string) (model.Meal, error) {
	return meals.find(s, id)
}

func (s *Store) UpsertMeal(m model.Meal) error {
	return meals.upsert(s, m)
}

func (s *Store) DeleteMeal(id string) error {
	return meals.remove(s, id)
}

// MealsOn returns the meals on the local calendar day of date, in storage
// order.
func (s *Store) MealsOn(date time.Time) ([]model.Meal, error) {
	return s.MealsBetween(date, date)
}

func (s *Store) MealsBetween(from, to time.Time) ([]model.Meal, error) {
	items, err := meals.all(s)
	if err != nil {
		return nil, err
	}
	start, end := RangeBounds(from, to)
	return lo.Filter(items, func(m model.Meal, _ int) bool {
		return within(m.Date, start, end)
	}), nil
}
