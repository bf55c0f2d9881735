// models/user.go
package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"not null" json:"full_name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	Age             int     `gorm:"not null" json:"age"`
	Gender          string  `gorm:"not null;size:20" json:"gender"`         // male, female, other
	Height          float64 `gorm:"not null" json:"height"`                 // cm
	Weight          float64 `gorm:"not null" json:"weight"`                 // kg
	ActivityLevel   string  `gorm:"not null;size:30" json:"activity_level"` // sedentary .. extremely_active
	HealthCondition string  `gorm:"default:''" json:"health_condition"`
	CalorieGoal     int     `gorm:"default:2000" json:"calorie_goal"`

	// Streak
	CurrentStreak  int        `gorm:"default:0" json:"current_streak"`
	LongestStreak  int        `gorm:"default:0" json:"longest_streak"`
	LastActiveDate *time.Time `json:"last_active_date"`

	// Gamification
	TotalPoints int `gorm:"default:0" json:"total_points"`
	Level       int `gorm:"default:1" json:"level"`

	// Daily targets
	TargetCaloriesBurn int `gorm:"default:300" json:"target_calories_burn"`
	TargetWaterGlasses int `gorm:"default:8" json:"target_water_glasses"` // full glasses
	TargetSteps        int `gorm:"default:10000" json:"target_steps"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	// Relationships
	Badges       []Badge       `gorm:"foreignKey:UserID" json:"badges,omitempty"`
	Achievements []Achievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
}

// Badge is an append-only reward record. Ordering by ID preserves the order
// badges were earned in.
type Badge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	Name     string    `gorm:"not null;size:100" json:"name"`
	Icon     string    `gorm:"size:10" json:"icon"`
	EarnedAt time.Time `json:"earned_at"`
}

func (User) TableName() string {
	return "users"
}

func (Badge) TableName() string {
	return "badges"
}
