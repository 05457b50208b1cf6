package codec_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/fitlog/internal/codec"
	"github.com/saadjs/fitlog/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestDecodeAbsentPayloadsAreEmpty(t *testing.T) {
	for _, text := range []string{"", "  ", "null"} {
		workouts, err := codec.DecodeWorkouts(text)
		require.NoError(t, err)
		assert.NotNil(t, workouts)
		assert.Empty(t, workouts)

		meals, err := codec.DecodeMeals(text)
		require.NoError(t, err)
		assert.Empty(t, meals)

		user, err := codec.DecodeUser(text)
		require.NoError(t, err)
		assert.Nil(t, user)

		goal, err := codec.DecodeNutritionGoal(text)
		require.NoError(t, err)
		assert.Nil(t, goal)
	}
}

func TestDecodeMalformedPayloadReturnsDecodeError(t *testing.T) {
	_, err := codec.DecodeMeals(`[{"id":"m1",`)
	require.Error(t, err)

	var de *codec.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, codec.KindMeals, de.Kind)

	_, err = codec.DecodeUser(`[1,2,3]`)
	require.True(t, errors.As(err, &de))
	assert.Equal(t, codec.KindUser, de.Kind)
}

func TestDateRoundTripToMillisecond(t *testing.T) {
	at := time.Date(2026, 3, 14, 7, 30, 15, 123456789, time.Local)
	end := at.Add(75 * time.Minute)

	text, err := codec.EncodeWorkouts([]model.Workout{{
		ID:          "w1",
		Name:        "Push",
		StartTime:   at,
		EndTime:     &end,
		IsCompleted: true,
	}})
	require.NoError(t, err)

	got, err := codec.DecodeWorkouts(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].StartTime.Equal(at.Truncate(time.Millisecond)), "start %s", got[0].StartTime)
	require.NotNil(t, got[0].EndTime)
	assert.True(t, got[0].EndTime.Equal(end.Truncate(time.Millisecond)))

	meals, err := codec.EncodeMeals([]model.Meal{{ID: "m1", Name: "Oats", Date: at, MealType: model.MealTypeBreakfast}})
	require.NoError(t, err)
	assert.Contains(t, meals, `"date":"`+at.UTC().Format("2006-01-02T15:04:05.000Z")+`"`)
	decodedMeals, err := codec.DecodeMeals(meals)
	require.NoError(t, err)
	assert.True(t, decodedMeals[0].Date.Equal(at.Truncate(time.Millisecond)))
}

func TestDecodeAcceptsEpochMillisAndOffsets(t *testing.T) {
	got, err := codec.DecodeBodyMetrics(`[
  {"id":"b1","date":1767225600000,"weight":81.5},
  {"id":"b2","date":"2026-01-01T09:00:00+09:00","bodyFatPercentage":18}
]`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Date.Equal(time.UnixMilli(1767225600000)))
	assert.Equal(t, 81.5, *got[0].Weight)
	assert.True(t, got[1].Date.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, got[1].Weight)
}

func TestDecodeRejectsMissingRequiredDate(t *testing.T) {
	_, err := codec.DecodeMeals(`[{"id":"m1","name":"x","mealType":"lunch"}]`)
	var de *codec.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Error(), "missing date")
}

func TestDecodeRejectsUnknownEnums(t *testing.T) {
	_, err := codec.DecodeMeals(`[{"id":"m1","name":"x","date":"2026-01-01T00:00:00Z","mealType":"brunch"}]`)
	require.Error(t, err)

	_, err = codec.DecodeWorkouts(`[{"id":"w1","startTime":"2026-01-01T00:00:00Z","exercises":[{"id":"e1","exerciseId":"squat","sets":[{"id":"s1","setNumber":1,"setType":"giant"}]}]}]`)
	require.Error(t, err)
}

func TestDecodeDefaultsEmptySetTypeToWork(t *testing.T) {
	got, err := codec.DecodeWorkouts(`[{"id":"w1","startTime":"2026-01-01T00:00:00Z","exercises":[{"id":"e1","exerciseId":"squat","sets":[{"id":"s1","setNumber":1,"reps":5,"rir":2}]}]}]`)
	require.NoError(t, err)
	set := got[0].Exercises[0].Sets[0]
	assert.Equal(t, model.SetTypeWork, set.SetType)
	assert.Equal(t, 5, *set.Reps)
	assert.Equal(t, 2, *set.RIR)
	assert.Nil(t, set.Weight)
}

func TestConversationRoundTrip(t *testing.T) {
	at := time.Date(2026, 5, 2, 18, 0, 0, 0, time.Local)
	in := []model.AIConversation{{
		ID:      "c1",
		Context: "workout",
		Messages: []model.Message{
			{Role: "user", Content: "How was my squat session?", Timestamp: at},
			{Role: "assistant", Content: "Solid volume.", Timestamp: at.Add(time.Second)},
		},
		CreatedAt: at,
		UpdatedAt: at.Add(time.Second),
	}}
	text, err := codec.EncodeConversations(in)
	require.NoError(t, err)
	out, err := codec.DecodeConversations(text)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "workout", out[0].Context)
	require.Len(t, out[0].Messages, 2)
	assert.True(t, out[0].Messages[1].Timestamp.Equal(at.Add(time.Second)))
	assert.True(t, out[0].CreatedAt.Equal(at))
}

func TestUserAndGoalSingletons(t *testing.T) {
	text, err := codec.EncodeUser(model.UserProfile{Username: "sam", Goal: "strength", ActivityLevel: "moderate"})
	require.NoError(t, err)
	assert.NotContains(t, text, "createdAt")
	u, err := codec.DecodeUser(text)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "sam", u.Username)
	assert.True(t, u.CreatedAt.IsZero())

	text, err = codec.EncodeNutritionGoal(model.NutritionGoal{DailyCalories: 2400, DailyProtein: 180})
	require.NoError(t, err)
	g, err := codec.DecodeNutritionGoal(text)
	require.NoError(t, err)
	assert.Equal(t, 2400.0, g.DailyCalories)
	assert.Equal(t, 180.0, g.DailyProtein)
}

func TestEncodeSnapshotIncludesEverySlot(t *testing.T) {
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := codec.Snapshot{
		ExportedAt:    at,
		User:          &model.UserProfile{Username: "sam"},
		Meals:         []model.Meal{{ID: "m1", Name: "Rice", Date: at, MealType: model.MealTypeLunch, Calories: ptr(500.0)}},
		NutritionGoal: &model.NutritionGoal{DailyCalories: 2000},
	}
	text, err := codec.EncodeSnapshot(snap)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(text), &raw))
	for _, key := range []string{"version", "exportDate", "user", "workouts", "bodyMetrics", "meals", "nutritionGoal", "aiConversations"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, `"2026-06-01T12:00:00.000Z"`, string(raw["exportDate"]))
	assert.Equal(t, "[]", string(raw["workouts"]))

	buf := &bytes.Buffer{}
	require.NoError(t, codec.WriteSnapshotYAML(buf, snap))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "version: 1\n"), out)
	assert.Contains(t, out, "2026-06-01T12:00:00.000Z")
	assert.Contains(t, out, "mealType: lunch")
}
