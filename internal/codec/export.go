package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/saadjs/fitlog/internal/model"
)

// Snapshot is the full contents of a store at one instant.
type Snapshot struct {
	ExportedAt    time.Time
	User          *model.UserProfile
	Workouts      []model.Workout
	BodyMetrics   []model.BodyMetric
	Meals         []model.Meal
	NutritionGoal *model.NutritionGoal
	Conversations []model.AIConversation
}

type exportV1 struct {
	Version         int              `json:"version" yaml:"version"`
	ExportDate      stamp            `json:"exportDate" yaml:"exportDate"`
	User            *userV1          `json:"user" yaml:"user"`
	Workouts        []workoutV1      `json:"workouts" yaml:"workouts"`
	BodyMetrics     []bodyMetricV1   `json:"bodyMetrics" yaml:"bodyMetrics"`
	Meals           []mealV1         `json:"meals" yaml:"meals"`
	NutritionGoal   *nutritionGoalV1 `json:"nutritionGoal" yaml:"nutritionGoal"`
	AIConversations []conversationV1 `json:"aiConversations" yaml:"aiConversations"`
}

func snapshotToV1(s Snapshot) exportV1 {
	out := exportV1{
		Version:         SchemaVersion,
		ExportDate:      newStamp(s.ExportedAt),
		Workouts:        make([]workoutV1, 0, len(s.Workouts)),
		BodyMetrics:     make([]bodyMetricV1, 0, len(s.BodyMetrics)),
		Meals:           make([]mealV1, 0, len(s.Meals)),
		AIConversations: make([]conversationV1, 0, len(s.Conversations)),
	}
	if s.User != nil {
		u := userToV1(*s.User)
		out.User = &u
	}
	if s.NutritionGoal != nil {
		g := nutritionGoalToV1(*s.NutritionGoal)
		out.NutritionGoal = &g
	}
	for _, w := range s.Workouts {
		out.Workouts = append(out.Workouts, workoutToV1(w))
	}
	for _, m := range s.BodyMetrics {
		out.BodyMetrics = append(out.BodyMetrics, bodyMetricToV1(m))
	}
	for _, m := range s.Meals {
		out.Meals = append(out.Meals, mealToV1(m))
	}
	for _, c := range s.Conversations {
		out.AIConversations = append(out.AIConversations, conversationToV1(c))
	}
	return out
}

// EncodeSnapshot renders s as indented JSON.
func EncodeSnapshot(s Snapshot) (string, error) {
	b, err := json.MarshalIndent(snapshotToV1(s), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return string(b), nil
}

// WriteSnapshotYAML renders s as YAML with the same field names as the
// JSON export.
func WriteSnapshotYAML(w io.Writer, s Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshotToV1(s)); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode export yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush export yaml: %w", err)
	}
	return nil
}
