package model

import "time"

type SetType string

const (
	SetTypeWork    SetType = "work"
	SetTypeWarm    SetType = "warm"
	SetTypeDrop    SetType = "drop"
	SetTypeFailure SetType = "failure"
)

func (t SetType) Valid() bool {
	switch t {
	case SetTypeWork, SetTypeWarm, SetTypeDrop, SetTypeFailure:
		return true
	}
	return false
}

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

func (t MealType) Valid() bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

const (
	MinRIR = 0
	MaxRIR = 4
)

type UserProfile struct {
	Username      string
	FirstName     string
	LastName      string
	Goal          string
	ActivityLevel string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Workout struct {
	ID          string
	Name        string
	StartTime   time.Time
	EndTime     *time.Time
	IsCompleted bool
	Exercises   []Exercise
	Notes       string
}

type Exercise struct {
	ID         string
	ExerciseID string
	Sets       []Set
	Notes      string
}

type Set struct {
	ID          string
	SetNumber   int
	Weight      *float64
	Reps        *int
	RIR         *int
	SetType     SetType
	IsCompleted bool
}

type BodyMetric struct {
	ID                string
	Date              time.Time
	Weight            *float64
	BodyFatPercentage *float64
	MuscleMass        *float64
	Notes             string
}

type Meal struct {
	ID       string
	Name     string
	Date     time.Time
	MealType MealType
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
}

type NutritionGoal struct {
	DailyCalories float64
	DailyProtein  float64
	DailyCarbs    float64
	DailyFat      float64
}

type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

type AIConversation struct {
	ID        string
	Messages  []Message
	Context   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
