// Package codec converts entities to and from the JSON text stored in each
// slot. Every entity kind has its own wire struct and decoder so date
// fields are restored explicitly instead of guessed.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saadjs/fitlog/internal/model"
)

const (
	KindUser          = "user"
	KindWorkouts      = "workouts"
	KindBodyMetrics   = "bodyMetrics"
	KindMeals         = "meals"
	KindNutritionGoal = "nutritionGoal"
	KindConversations = "aiConversations"
)

func EncodeUser(u model.UserProfile) (string, error) {
	return encode(KindUser, userToV1(u))
}

// DecodeUser returns nil for an absent payload.
func DecodeUser(text string) (*model.UserProfile, error) {
	return decodeOne(KindUser, text, userFromV1)
}

func EncodeWorkouts(items []model.Workout) (string, error) {
	return encodeList(KindWorkouts, items, workoutToV1)
}

func DecodeWorkouts(text string) ([]model.Workout, error) {
	return decodeList(KindWorkouts, text, workoutFromV1)
}

func EncodeBodyMetrics(items []model.BodyMetric) (string, error) {
	return encodeList(KindBodyMetrics, items, bodyMetricToV1)
}

func DecodeBodyMetrics(text string) ([]model.BodyMetric, error) {
	return decodeList(KindBodyMetrics, text, bodyMetricFromV1)
}

func EncodeMeals(items []model.Meal) (string, error) {
	return encodeList(KindMeals, items, mealToV1)
}

func DecodeMeals(text string) ([]model.Meal, error) {
	return decodeList(KindMeals, text, mealFromV1)
}

func EncodeNutritionGoal(g model.NutritionGoal) (string, error) {
	return encode(KindNutritionGoal, nutritionGoalToV1(g))
}

// DecodeNutritionGoal returns nil for an absent payload.
func DecodeNutritionGoal(text string) (*model.NutritionGoal, error) {
	return decodeOne(KindNutritionGoal, text, nutritionGoalFromV1)
}

func EncodeConversations(items []model.AIConversation) (string, error) {
	return encodeList(KindConversations, items, conversationToV1)
}

func DecodeConversations(text string) ([]model.AIConversation, error) {
	return decodeList(KindConversations, text, conversationFromV1)
}

func encode(kind string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", kind, err)
	}
	return string(b), nil
}

func encodeList[T, W any](kind string, items []T, conv func(T) W) (string, error) {
	wire := make([]W, 0, len(items))
	for _, item := range items {
		wire = append(wire, conv(item))
	}
	return encode(kind, wire)
}

func isAbsent(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || t == "null"
}

func decodeOne[W, T any](kind, text string, conv func(W) (T, error)) (*T, error) {
	if isAbsent(text) {
		return nil, nil
	}
	var wire W
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}
	v, err := conv(wire)
	if err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}
	return &v, nil
}

func decodeList[W, T any](kind, text string, conv func(W) (T, error)) ([]T, error) {
	if isAbsent(text) {
		return []T{}, nil
	}
	var wire []W
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}
	out := make([]T, 0, len(wire))
	for i, w := range wire {
		v, err := conv(w)
		if err != nil {
			return nil, &DecodeError{Kind: kind, Err: fmt.Errorf("item %d: %w", i, err)}
		}
		out = append(out, v)
	}
	return out, nil
}
