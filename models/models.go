// models/models.go - Core Models (Achievement defined in achievement.go)
package models

import (
	"encoding/json"
	"time"
)

// Food represents a catalog food item (seeded defaults plus user-created
// custom foods). Nutrition values are per serving.
type Food struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:100;index"`
	Calories    float64   `json:"calories" gorm:"not null"`
	Protein     float64   `json:"protein" gorm:"default:0"`
	Carbs       float64   `json:"carbs" gorm:"default:0"`
	Fats        float64   `json:"fats" gorm:"default:0"`
	ServingSize string    `json:"serving_size" gorm:"default:'100g';size:50"`
	Category    string    `json:"category" gorm:"default:'other';size:20"` // breakfast, lunch, dinner, snack, beverage, other
	IsCustom    bool      `json:"is_custom" gorm:"default:false"`
	CreatedBy   *uint     `json:"created_by" gorm:"index"`
	Creator     *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	CreatedAt   time.Time `json:"created_at"`
}

// FoodLog represents one logged meal entry with portion-scaled macros.
type FoodLog struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	UserID   uint    `json:"user_id" gorm:"not null;index"`
	User     *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	FoodID   uint    `json:"food_id" gorm:"index"`
	Food     *Food   `json:"food,omitempty" gorm:"foreignKey:FoodID"`
	FoodName string  `json:"food_name" gorm:"not null;size:100"`
	MealType string  `json:"meal_type" gorm:"not null;size:20"` // breakfast, lunch, dinner, snack
	Portion  float64 `json:"portion" gorm:"default:1"`
	Calories int     `json:"calories" gorm:"default:0"`
	Protein  int     `json:"protein" gorm:"default:0"`
	Carbs    int     `json:"carbs" gorm:"default:0"`
	Fats     int     `json:"fats" gorm:"default:0"`

	Date      time.Time `json:"date" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// ExerciseLog represents one logged workout.
type ExerciseLog struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	UserID         uint   `json:"user_id" gorm:"not null;index"`
	User           *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ExerciseName   string `json:"exercise_name" gorm:"not null;size:100"`
	Duration       int    `json:"duration" gorm:"not null"` // minutes
	Intensity      string `json:"intensity" gorm:"default:'moderate';size:20"` // low, moderate, high
	CaloriesBurned int    `json:"calories_burned" gorm:"not null"`

	Date      time.Time `json:"date" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// WaterIntake holds one user's water consumption for one calendar day.
// Glasses and Target are counted in half-glass units (8 full glasses = 16).
// Target is captured from the user's daily target when the row is created, so
// goal-met checks stay correct even if the user later changes their target.
type WaterIntake struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	UserID  uint      `json:"user_id" gorm:"not null;index:idx_water_user_date,unique"`
	Date    time.Time `json:"date" gorm:"not null;index:idx_water_user_date,unique"` // midnight UTC
	Glasses int       `json:"glasses" gorm:"default:0"`
	Target  int       `json:"target" gorm:"default:16"`

	// Per-sip history (stored as JSON)
	LogsJSON string `json:"-" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WaterLogEntry is a single sip in the per-day history.
type WaterLogEntry struct {
	Amount    float64   `json:"amount"` // 0.5 half glass, 1 full glass
	Timestamp time.Time `json:"timestamp"`
}

func (wi *WaterIntake) GetLogs() ([]WaterLogEntry, error) {
	var logs []WaterLogEntry
	if wi.LogsJSON == "" {
		return logs, nil
	}
	err := json.Unmarshal([]byte(wi.LogsJSON), &logs)
	return logs, err
}

func (wi *WaterIntake) SetLogs(logs []WaterLogEntry) error {
	data, err := json.Marshal(logs)
	if err != nil {
		return err
	}
	wi.LogsJSON = string(data)
	return nil
}

// TableName methods for custom table names
func (Food) TableName() string {
	return "foods"
}

func (FoodLog) TableName() string {
	return "food_logs"
}

func (ExerciseLog) TableName() string {
	return "exercise_logs"
}

func (WaterIntake) TableName() string {
	return "water_intakes"
}
