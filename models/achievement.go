// models/achievement.go
package models

import "time"

// Achievement is a per-user progress record against one catalog template.
// Exactly one row exists per user per (type, milestone); the unique index
// makes bulk initialization safe under concurrent first access.
type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index;uniqueIndex:idx_user_type_milestone" json:"user_id"`
	Type        string `gorm:"not null;index;uniqueIndex:idx_user_type_milestone;size:30" json:"type"` // streak, calories_burned, water_intake, food_logged
	Milestone   int    `gorm:"not null;uniqueIndex:idx_user_type_milestone" json:"milestone"`
	Title       string `gorm:"not null;size:100" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Icon        string `gorm:"size:10" json:"icon"`

	Progress    int        `gorm:"default:0" json:"progress"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Reward (copied from the template so completed rows stay self-describing
	// even if the catalog changes)
	RewardPoints int    `gorm:"default:0" json:"reward_points"`
	RewardBadge  string `gorm:"size:100" json:"reward_badge,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
