package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/store"
)

type BodyMetricInput struct {
	Weight     *float64
	MuscleMass *float64
	Unit       string
	BodyFatPct *float64
	MeasuredAt time.Time
	Notes      string
}

type BodyMetricFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Limit    int
}

func buildBodyMetric(in BodyMetricInput) (model.BodyMetric, error) {
	if in.Weight == nil && in.BodyFatPct == nil && in.MuscleMass == nil {
		return model.BodyMetric{}, fmt.Errorf("at least one of weight, body-fat or muscle-mass is required")
	}
	m := model.BodyMetric{Date: in.MeasuredAt, Notes: strings.TrimSpace(in.Notes)}
	if in.Weight != nil {
		kg, err := convertWeightToKg(*in.Weight, in.Unit)
		if err != nil {
			return model.BodyMetric{}, err
		}
		m.Weight = &kg
	}
	if in.MuscleMass != nil {
		kg, err := convertWeightToKg(*in.MuscleMass, in.Unit)
		if err != nil {
			return model.BodyMetric{}, fmt.Errorf("muscle-mass: %w", err)
		}
		m.MuscleMass = &kg
	}
	if in.BodyFatPct != nil {
		if *in.BodyFatPct < 0 || *in.BodyFatPct > 100 {
			return model.BodyMetric{}, fmt.Errorf("body-fat must be between 0 and 100")
		}
		pct := *in.BodyFatPct
		m.BodyFatPercentage = &pct
	}
	return m, nil
}

func AddBodyMetric(s *store.Store, in BodyMetricInput) (model.BodyMetric, error) {
	m, err := buildBodyMetric(in)
	if err != nil {
		return model.BodyMetric{}, err
	}
	if m.Date.IsZero() {
		m.Date = s.Now()
	}
	m.ID = s.NewID()
	if err := s.UpsertBodyMetric(m); err != nil {
		return model.BodyMetric{}, fmt.Errorf("add body metric: %w", err)
	}
	return m, nil
}

// UpdateBodyMetric replaces the measurements of an existing entry. A zero
// MeasuredAt keeps the stored date.
func UpdateBodyMetric(s *store.Store, id string, in BodyMetricInput) (model.BodyMetric, error) {
	existing, err := findBodyMetric(s, id)
	if err != nil {
		return model.BodyMetric{}, err
	}
	m, err := buildBodyMetric(in)
	if err != nil {
		return model.BodyMetric{}, err
	}
	m.ID = existing.ID
	if m.Date.IsZero() {
		m.Date = existing.Date
	}
	if err := s.UpsertBodyMetric(m); err != nil {
		return model.BodyMetric{}, fmt.Errorf("update body metric %s: %w", id, err)
	}
	return m, nil
}

func DeleteBodyMetric(s *store.Store, id string) error {
	if _, err := findBodyMetric(s, id); err != nil {
		return err
	}
	return s.DeleteBodyMetric(id)
}

// ListBodyMetrics returns entries newest first.
func ListBodyMetrics(s *store.Store, f BodyMetricFilter) ([]model.BodyMetric, error) {
	from, to, bounded, err := dateRange(f.Date, f.FromDate, f.ToDate)
	if err != nil {
		return nil, err
	}
	var items []model.BodyMetric
	if bounded {
		items, err = s.BodyMetricsBetween(from, to)
	} else {
		items, err = s.BodyMetrics()
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	if f.Limit > 0 && len(items) > f.Limit {
		items = items[:f.Limit]
	}
	return items, nil
}

func findBodyMetric(s *store.Store, id string) (model.BodyMetric, error) {
	items, err := s.BodyMetrics()
	if err != nil {
		return model.BodyMetric{}, err
	}
	for _, m := range items {
		if m.ID == id {
			return m, nil
		}
	}
	return model.BodyMetric{}, fmt.Errorf("body metric %q: %w", id, store.ErrNotFound)
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

// WeightFromKg converts a stored kilogram value for display.
func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}
