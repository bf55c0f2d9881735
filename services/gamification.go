// services/gamification.go - Achievement & reward engine
package services

import (
	"errors"
	"fmt"
	"time"

	"bitecount/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrUserNotFound is returned when a reward target does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAggregateRead wraps failures reading activity-log aggregates. A
	// check call that hits this has mutated nothing and can be retried.
	ErrAggregateRead = errors.New("aggregate read failed")
)

// BadgeIcon is the glyph attached to every earned badge.
const BadgeIcon = "🏆"

// PointsPerLevel controls level derivation from total points.
const PointsPerLevel = 1000

// LevelForPoints derives the level for a point total. Level is never stored
// independently; the SQL in awardReward mirrors this formula.
func LevelForPoints(totalPoints int) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	return totalPoints/PointsPerLevel + 1
}

type aggregateFunc func(db *gorm.DB, userID uint) (int, error)

// GamificationService owns per-user achievement instances and reward
// issuance. It is the only writer of achievement rows and of the user's
// points, level and badges.
type GamificationService struct {
	db         *gorm.DB
	catalog    *Catalog
	aggregates map[string]aggregateFunc
}

// NewGamificationService wires the engine to a catalog. Every catalog type
// must have an aggregate function; a gap is a boot-time configuration error.
func NewGamificationService(db *gorm.DB, catalog *Catalog) (*GamificationService, error) {
	s := &GamificationService{
		db:      db,
		catalog: catalog,
		aggregates: map[string]aggregateFunc{
			TypeCaloriesBurned: totalCaloriesBurned,
			TypeWaterIntake:    daysWaterGoalMet,
			TypeFoodLogged:     totalFoodLogs,
			// TypeStreak has no stored aggregate: the current streak is
			// pushed in by the streak tracker.
			TypeStreak: nil,
		},
	}

	for _, t := range catalog.Templates() {
		if _, ok := s.aggregates[t.Type]; !ok {
			return nil, fmt.Errorf("no aggregate function for achievement type %q", t.Type)
		}
	}

	return s, nil
}

// Catalog returns the catalog the engine was constructed with.
func (s *GamificationService) Catalog() *Catalog {
	return s.catalog
}

// InitializeAchievements creates one instance per catalog template for the
// user. Idempotent and safe under concurrent first access: creation is a
// conditional insert keyed on the (user_id, type, milestone) unique index,
// never a read-then-write.
func (s *GamificationService) InitializeAchievements(userID uint) error {
	var count int64
	if err := s.db.Model(&models.Achievement{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	templates := s.catalog.Templates()
	if len(templates) == 0 {
		return nil
	}
	instances := make([]models.Achievement, 0, len(templates))
	for _, t := range templates {
		instances = append(instances, models.Achievement{
			UserID:       userID,
			Type:         t.Type,
			Milestone:    t.Milestone,
			Title:        t.Title,
			Description:  t.Description,
			Icon:         t.Icon,
			RewardPoints: t.Reward.Points,
			RewardBadge:  t.Reward.Badge,
		})
	}

	// Two requests may race past the count check; DO NOTHING on conflict
	// guarantees exactly one row per template either way.
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&instances).Error
}

// CheckStreakAchievements applies the user's current streak to all pending
// streak achievements and returns those that just completed. The streak has
// no stored aggregate; the tracker pushes the value in.
func (s *GamificationService) CheckStreakAchievements(userID uint, currentStreak int) ([]models.Achievement, error) {
	return s.applyProgress(userID, TypeStreak, currentStreak)
}

// CheckCaloriesBurnedAchievements recomputes the all-time burned-calories
// total and applies it to pending calories_burned achievements.
func (s *GamificationService) CheckCaloriesBurnedAchievements(userID uint) ([]models.Achievement, error) {
	return s.checkAggregate(userID, TypeCaloriesBurned)
}

// CheckWaterIntakeAchievements counts the days the user met their own
// stored water target and applies it to pending water_intake achievements.
func (s *GamificationService) CheckWaterIntakeAchievements(userID uint) ([]models.Achievement, error) {
	return s.checkAggregate(userID, TypeWaterIntake)
}

// CheckFoodLoggingAchievements counts all food-log entries and applies the
// total to pending food_logged achievements.
func (s *GamificationService) CheckFoodLoggingAchievements(userID uint) ([]models.Achievement, error) {
	return s.checkAggregate(userID, TypeFoodLogged)
}

// checkAggregate reads the type's aggregate and moves progress. A failed
// read aborts before anything is mutated.
func (s *GamificationService) checkAggregate(userID uint, achType string) ([]models.Achievement, error) {
	agg := s.aggregates[achType]
	if agg == nil {
		return nil, fmt.Errorf("no aggregate function for achievement type %q", achType)
	}
	value, err := agg(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAggregateRead, achType, err)
	}
	return s.applyProgress(userID, achType, value)
}

// applyProgress is the single code path that moves achievement instances
// forward. Progress only ever grows (GREATEST), and the completed flag flips
// through one conditional update per instance, so two racing requests cannot
// both observe the completing transition. The reward is issued inside the
// same transaction as the flip: at most one caller wins the row, and that
// caller awards exactly once.
func (s *GamificationService) applyProgress(userID uint, achType string, value int) ([]models.Achievement, error) {
	var pending []models.Achievement
	if err := s.db.
		Where("user_id = ? AND type = ? AND completed = ?", userID, achType, false).
		Order("milestone ASC").
		Find(&pending).Error; err != nil {
		return nil, err
	}

	var newlyCompleted []models.Achievement

	for i := range pending {
		ach := pending[i]

		if value < ach.Milestone {
			if err := s.db.Model(&models.Achievement{}).
				Where("id = ? AND completed = ?", ach.ID, false).
				Update("progress", gorm.Expr("GREATEST(progress, ?)", value)).Error; err != nil {
				return newlyCompleted, err
			}
			continue
		}

		now := time.Now().UTC()
		completed := false

		err := s.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Achievement{}).
				Where("id = ? AND completed = ?", ach.ID, false).
				Updates(map[string]interface{}{
					"progress":     gorm.Expr("GREATEST(progress, ?)", value),
					"completed":    true,
					"completed_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Lost the race to a concurrent request; it owns the reward.
				return nil
			}
			completed = true
			return awardReward(tx, userID, ach.RewardPoints, ach.RewardBadge, now)
		})
		if err != nil {
			return newlyCompleted, err
		}

		if completed {
			if value > ach.Progress {
				ach.Progress = value
			}
			ach.Completed = true
			ach.CompletedAt = &now
			newlyCompleted = append(newlyCompleted, ach)
		}
	}

	return newlyCompleted, nil
}

// awardReward adds points, re-derives the level from the new total in the
// same statement, and appends the badge. The point update is a single atomic
// increment; there is no read-modify-write window.
func awardReward(tx *gorm.DB, userID uint, points int, badge string, now time.Time) error {
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_points": gorm.Expr("total_points + ?", points),
			"level":        gorm.Expr("(total_points + ?) / ? + 1", points, PointsPerLevel),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	if badge != "" {
		return tx.Create(&models.Badge{
			UserID:   userID,
			Name:     badge,
			Icon:     BadgeIcon,
			EarnedAt: now,
		}).Error
	}
	return nil
}

// ProgressSummary is the caller-facing gamification overview.
type ProgressSummary struct {
	Level                 int            `json:"level"`
	TotalPoints           int            `json:"total_points"`
	Badges                []models.Badge `json:"badges"`
	AchievementsCompleted int            `json:"achievements_completed"`
	AchievementsTotal     int            `json:"achievements_total"`
	CompletionPercentage  int            `json:"completion_percentage"`
	CurrentStreak         int            `json:"current_streak"`
	LongestStreak         int            `json:"longest_streak"`
}

// GetProgressSummary builds the overview for one user.
func (s *GamificationService) GetProgressSummary(userID uint) (*ProgressSummary, error) {
	var user models.User
	if err := s.db.Preload("Badges", func(db *gorm.DB) *gorm.DB {
		return db.Order("badges.id ASC")
	}).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Badges == nil {
		// Badges is an ordered sequence to callers, never null
		user.Badges = []models.Badge{}
	}

	var total, completed int64
	if err := s.db.Model(&models.Achievement{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Achievement{}).Where("user_id = ? AND completed = ?", userID, true).Count(&completed).Error; err != nil {
		return nil, err
	}

	return &ProgressSummary{
		Level:                 user.Level,
		TotalPoints:           user.TotalPoints,
		Badges:                user.Badges,
		AchievementsCompleted: int(completed),
		AchievementsTotal:     int(total),
		CompletionPercentage:  CompletionPercentage(int(completed), int(total)),
		CurrentStreak:         user.CurrentStreak,
		LongestStreak:         user.LongestStreak,
	}, nil
}

// CompletionPercentage rounds completed/total to a whole percentage,
// returning 0 for an empty catalog instead of dividing by zero.
func CompletionPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(completed)/float64(total)*100 + 0.5)
}

// Aggregate functions. Each reads one derived metric from the activity log
// stores; they never mutate anything.

func totalCaloriesBurned(db *gorm.DB, userID uint) (int, error) {
	var total int64
	err := db.Model(&models.ExerciseLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(calories_burned), 0)").
		Scan(&total).Error
	return int(total), err
}

func daysWaterGoalMet(db *gorm.DB, userID uint) (int, error) {
	// Each row carries the target in force on its own day.
	var count int64
	err := db.Model(&models.WaterIntake{}).
		Where("user_id = ? AND glasses >= target", userID).
		Count(&count).Error
	return int(count), err
}

func totalFoodLogs(db *gorm.DB, userID uint) (int, error) {
	var count int64
	err := db.Model(&models.FoodLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return int(count), err
}
