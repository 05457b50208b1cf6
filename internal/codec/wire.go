package codec

import (
	"fmt"
	"time"

	"github.com/saadjs/fitlog/internal/model"
)

// SchemaVersion is the version of the v1 wire structs below. Exports carry
// it so a reader can tell which decoders apply.
const SchemaVersion = 1

type userV1 struct {
	Username      string `json:"username" yaml:"username"`
	FirstName     string `json:"firstName" yaml:"firstName"`
	LastName      string `json:"lastName" yaml:"lastName"`
	Goal          string `json:"goal" yaml:"goal"`
	ActivityLevel string `json:"activityLevel" yaml:"activityLevel"`
	CreatedAt     *stamp `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt     *stamp `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

type setV1 struct {
	ID          string   `json:"id" yaml:"id"`
	SetNumber   int      `json:"setNumber" yaml:"setNumber"`
	Weight      *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Reps        *int     `json:"reps,omitempty" yaml:"reps,omitempty"`
	RIR         *int     `json:"rir,omitempty" yaml:"rir,omitempty"`
	SetType     string   `json:"setType" yaml:"setType"`
	IsCompleted bool     `json:"isCompleted" yaml:"isCompleted"`
}

type exerciseV1 struct {
	ID         string  `json:"id" yaml:"id"`
	ExerciseID string  `json:"exerciseId" yaml:"exerciseId"`
	Sets       []setV1 `json:"sets" yaml:"sets"`
	Notes      string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type workoutV1 struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	StartTime   stamp        `json:"startTime" yaml:"startTime"`
	EndTime     *stamp       `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	IsCompleted bool         `json:"isCompleted" yaml:"isCompleted"`
	Exercises   []exerciseV1 `json:"exercises" yaml:"exercises"`
	Notes       string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type bodyMetricV1 struct {
	ID                string   `json:"id" yaml:"id"`
	Date              stamp    `json:"date" yaml:"date"`
	Weight            *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty" yaml:"bodyFatPercentage,omitempty"`
	MuscleMass        *float64 `json:"muscleMass,omitempty" yaml:"muscleMass,omitempty"`
	Notes             string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type mealV1 struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Date     stamp    `json:"date" yaml:"date"`
	MealType string   `json:"mealType" yaml:"mealType"`
	Calories *float64 `json:"calories,omitempty" yaml:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty" yaml:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty" yaml:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty" yaml:"fat,omitempty"`
}

type nutritionGoalV1 struct {
	DailyCalories float64 `json:"dailyCalories" yaml:"dailyCalories"`
	DailyProtein  float64 `json:"dailyProtein" yaml:"dailyProtein"`
	DailyCarbs    float64 `json:"dailyCarbs" yaml:"dailyCarbs"`
	DailyFat      float64 `json:"dailyFat" yaml:"dailyFat"`
}

type messageV1 struct {
	Role      string `json:"role" yaml:"role"`
	Content   string `json:"content" yaml:"content"`
	Timestamp stamp  `json:"timestamp" yaml:"timestamp"`
}

type conversationV1 struct {
	ID        string      `json:"id" yaml:"id"`
	Messages  []messageV1 `json:"messages" yaml:"messages"`
	Context   string      `json:"context" yaml:"context"`
	CreatedAt *stamp      `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt *stamp      `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func userToV1(u model.UserProfile) userV1 {
	return userV1{
		Username:      u.Username,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Goal:          u.Goal,
		ActivityLevel: u.ActivityLevel,
		CreatedAt:     newStampPtr(nonZero(u.CreatedAt)),
		UpdatedAt:     newStampPtr(nonZero(u.UpdatedAt)),
	}
}

func userFromV1(w userV1) (model.UserProfile, error) {
	u := model.UserProfile{
		Username:      w.Username,
		FirstName:     w.FirstName,
		LastName:      w.LastName,
		Goal:          w.Goal,
		ActivityLevel: w.ActivityLevel,
	}
	if t := w.CreatedAt.valuePtr(); t != nil {
		u.CreatedAt = *t
	}
	if t := w.UpdatedAt.valuePtr(); t != nil {
		u.UpdatedAt = *t
	}
	return u, nil
}

func workoutToV1(w model.Workout) workoutV1 {
	out := workoutV1{
		ID:          w.ID,
		Name:        w.Name,
		StartTime:   newStamp(w.StartTime),
		EndTime:     newStampPtr(w.EndTime),
		IsCompleted: w.IsCompleted,
		Exercises:   make([]exerciseV1, 0, len(w.Exercises)),
		Notes:       w.Notes,
	}
	for _, e := range w.Exercises {
		ev := exerciseV1{ID: e.ID, ExerciseID: e.ExerciseID, Notes: e.Notes, Sets: make([]setV1, 0, len(e.Sets))}
		for _, s := range e.Sets {
			ev.Sets = append(ev.Sets, setV1{
				ID:          s.ID,
				SetNumber:   s.SetNumber,
				Weight:      s.Weight,
				Reps:        s.Reps,
				RIR:         s.RIR,
				SetType:     string(s.SetType),
				IsCompleted: s.IsCompleted,
			})
		}
		out.Exercises = append(out.Exercises, ev)
	}
	return out
}

func workoutFromV1(w workoutV1) (model.Workout, error) {
	if w.ID == "" {
		return model.Workout{}, fmt.Errorf("workout without id")
	}
	if w.StartTime.t.IsZero() {
		return model.Workout{}, fmt.Errorf("workout %s: missing startTime", w.ID)
	}
	out := model.Workout{
		ID:          w.ID,
		Name:        w.Name,
		StartTime:   w.StartTime.value(),
		EndTime:     w.EndTime.valuePtr(),
		IsCompleted: w.IsCompleted,
		Exercises:   make([]model.Exercise, 0, len(w.Exercises)),
		Notes:       w.Notes,
	}
	for _, e := range w.Exercises {
		ex := model.Exercise{ID: e.ID, ExerciseID: e.ExerciseID, Notes: e.Notes, Sets: make([]model.Set, 0, len(e.Sets))}
		for _, s := range e.Sets {
			setType := model.SetType(s.SetType)
			if setType == "" {
				setType = model.SetTypeWork
			}
			if !setType.Valid() {
				return model.Workout{}, fmt.Errorf("workout %s: set %s has unknown setType %q", w.ID, s.ID, s.SetType)
			}
			ex.Sets = append(ex.Sets, model.Set{
				ID:          s.ID,
				SetNumber:   s.SetNumber,
				Weight:      s.Weight,
				Reps:        s.Reps,
				RIR:         s.RIR,
				SetType:     setType,
				IsCompleted: s.IsCompleted,
			})
		}
		out.Exercises = append(out.Exercises, ex)
	}
	return out, nil
}

func bodyMetricToV1(m model.BodyMetric) bodyMetricV1 {
	return bodyMetricV1{
		ID:                m.ID,
		Date:              newStamp(m.Date),
		Weight:            m.Weight,
		BodyFatPercentage: m.BodyFatPercentage,
		MuscleMass:        m.MuscleMass,
		Notes:             m.Notes,
	}
}

func bodyMetricFromV1(w bodyMetricV1) (model.BodyMetric, error) {
	if w.ID == "" {
		return model.BodyMetric{}, fmt.Errorf("body metric without id")
	}
	if w.Date.t.IsZero() {
		return model.BodyMetric{}, fmt.Errorf("body metric %s: missing date", w.ID)
	}
	return model.BodyMetric{
		ID:                w.ID,
		Date:              w.Date.value(),
		Weight:            w.Weight,
		BodyFatPercentage: w.BodyFatPercentage,
		MuscleMass:        w.MuscleMass,
		Notes:             w.Notes,
	}, nil
}

func mealToV1(m model.Meal) mealV1 {
	return mealV1{
		ID:       m.ID,
		Name:     m.Name,
		Date:     newStamp(m.Date),
		MealType: string(m.MealType),
		Calories: m.Calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fat:      m.Fat,
	}
}

func mealFromV1(w mealV1) (model.Meal, error) {
	if w.ID == "" {
		return model.Meal{}, fmt.Errorf("meal without id")
	}
	if w.Date.t.IsZero() {
		return model.Meal{}, fmt.Errorf("meal %s: missing date", w.ID)
	}
	mealType := model.MealType(w.MealType)
	if !mealType.Valid() {
		return model.Meal{}, fmt.Errorf("meal %s: unknown mealType %q", w.ID, w.MealType)
	}
	return model.Meal{
		ID:       w.ID,
		Name:     w.Name,
		Date:     w.Date.value(),
		MealType: mealType,
		Calories: w.Calories,
		Protein:  w.Protein,
		Carbs:    w.Carbs,
		Fat:      w.Fat,
	}, nil
}

func nutritionGoalToV1(g model.NutritionGoal) nutritionGoalV1 {
	return nutritionGoalV1(g)
}

func nutritionGoalFromV1(w nutritionGoalV1) (model.NutritionGoal, error) {
	return model.NutritionGoal(w), nil
}

func conversationToV1(c model.AIConversation) conversationV1 {
	out := conversationV1{
		ID:        c.ID,
		Context:   c.Context,
		Messages:  make([]messageV1, 0, len(c.Messages)),
		CreatedAt: newStampPtr(nonZero(c.CreatedAt)),
		UpdatedAt: newStampPtr(nonZero(c.UpdatedAt)),
	}
	for _, m := range c.Messages {
		out.Messages = append(out.Messages, messageV1{Role: m.Role, Content: m.Content, Timestamp: newStamp(m.Timestamp)})
	}
	return out
}

func conversationFromV1(w conversationV1) (model.AIConversation, error) {
	if w.ID == "" {
		return model.AIConversation{}, fmt.Errorf("conversation without id")
	}
	out := model.AIConversation{
		ID:       w.ID,
		Context:  w.Context,
		Messages: make([]model.Message, 0, len(w.Messages)),
	}
	if t := w.CreatedAt.valuePtr(); t != nil {
		out.CreatedAt = *t
	}
	if t := w.UpdatedAt.valuePtr(); t != nil {
		out.UpdatedAt = *t
	}
	for i, m := range w.Messages {
		if m.Timestamp.t.IsZero() {
			return model.AIConversation{}, fmt.Errorf("conversation %s: message %d missing timestamp", w.ID, i)
		}
		out.Messages = append(out.Messages, model.Message{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp.value()})
	}
	return out, nil
}

func nonZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
