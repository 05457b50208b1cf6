package store

import (
	"time"

	"github.com/samber/lo"

	"github.com/saadjs/fitlog/internal/codec"
	"github.com/saadjs/fitlog/internal/model"
)

var bodyMetrics = collection[model.BodyMetric]{
	slot:   SlotBodyMetrics,
	decode: codec.DecodeBodyMetrics,
	encode: codec.EncodeBodyMetrics,
	id:     func(m model.BodyMetric) string { return m.ID },
}

func (s *Store) BodyMetrics() ([]model.BodyMetric, error) {
	return bodyMetrics.all(s)
}

func (s *Store) UpsertBodyMetric(m model.BodyMetric) error {
	return bodyMetrics.upsert(s, m)
}

func (s *Store) DeleteBodyMetric(id string) error {
	return bodyMetrics.remove(s, id)
}

// LatestBodyMetric returns the entry with the greatest date. The first one
// stored wins a tie. It returns nil when there are none.
func (s *Store) LatestBodyMetric() (*model.BodyMetric, error) {
	items, err := bodyMetrics.all(s)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	latest := lo.MaxBy(items, func(a, b model.BodyMetric) bool {
		return a.Date.After(b.Date)
	})
	return &latest, nil
}

func (s *Store) BodyMetricsBetween(from, to time.Time) ([]model.BodyMetric, error) {
	items, err := bodyMetrics.all(s)
	if err != nil {
		return nil, err
	}
	start, end := RangeBounds(from, to)
	return lo.Filter(items, func(m model.BodyMetric, _ int) bool {
		return within(m.Date, start, end)
	}), nil
}
