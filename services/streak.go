// services/streak.go - Daily activity streak tracking
package services

import (
	"errors"
	"time"

	"bitecount/models"

	"gorm.io/gorm"
)

// StreakResult describes the outcome of recording one day of activity.
type StreakResult struct {
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	Changed       bool `json:"changed"`
}

// advanceStreak computes the streak transition for an activity seen at
// "today". It compares calendar days in UTC:
//
//	no previous activity  -> streak starts at 1
//	same day              -> no change (idempotent per day)
//	next day              -> streak + 1
//	gap of 2+ days        -> reset to 1
//	previous day in the future -> no change (clock skew is never punished)
func advanceStreak(currentStreak, longestStreak int, lastActive *time.Time, today time.Time) StreakResult {
	res := StreakResult{CurrentStreak: currentStreak, LongestStreak: longestStreak}

	if lastActive == nil {
		res.CurrentStreak = 1
		res.Changed = true
	} else {
		switch diff := daysBetween(*lastActive, today); {
		case diff == 0:
			return res
		case diff == 1:
			res.CurrentStreak = currentStreak + 1
			res.Changed = true
		case diff > 1:
			res.CurrentStreak = 1
			res.Changed = true
		default:
			// diff < 0: stored date is ahead of the clock
			return res
		}
	}

	if res.CurrentStreak > res.LongestStreak {
		res.LongestStreak = res.CurrentStreak
	}
	return res
}

// daysBetween returns whole calendar days from a to b in UTC.
func daysBetween(a, b time.Time) int {
	a = startOfDayUTC(a)
	b = startOfDayUTC(b)
	return int(b.Sub(a).Hours() / 24)
}

// startOfDayUTC truncates t to midnight UTC.
func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StreakService persists streak transitions and feeds them to the
// achievement engine.
type StreakService struct {
	db           *gorm.DB
	gamification *GamificationService
}

func NewStreakService(db *gorm.DB, gamification *GamificationService) *StreakService {
	return &StreakService{db: db, gamification: gamification}
}

// RecordActivity marks the user active today and returns the streak outcome
// plus any streak achievements that just completed. Calling it again on the
// same day is a no-op.
func (s *StreakService) RecordActivity(userID uint) (StreakResult, []models.Achievement, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StreakResult{}, nil, ErrUserNotFound
		}
		return StreakResult{}, nil, err
	}

	now := time.Now().UTC()
	res := advanceStreak(user.CurrentStreak, user.LongestStreak, user.LastActiveDate, now)
	if !res.Changed {
		return res, nil, nil
	}

	today := startOfDayUTC(now)
	if err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"current_streak":   res.CurrentStreak,
			"longest_streak":   res.LongestStreak,
			"last_active_date": today,
		}).Error; err != nil {
		return res, nil, err
	}

	completed, err := s.gamification.CheckStreakAchievements(userID, res.CurrentStreak)
	if err != nil {
		return res, nil, err
	}
	return res, completed, nil
}
