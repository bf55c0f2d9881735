// handlers/services.go - Shared service wiring for HTTP handlers
package handlers

import (
	"bitecount/services"
)

var (
	gamificationSvc *services.GamificationService
	streakSvc       *services.StreakService
)

// InitServices injects the service layer. Must be called once at boot before
// any route is registered.
func InitServices(gamification *services.GamificationService, streak *services.StreakService) {
	gamificationSvc = gamification
	streakSvc = streak
}

// recordActivityAndNotify advances the user's daily streak and pushes
// celebration events for any achievements that completed as a result.
func recordActivityAndNotify(userID uint) {
	_, completed, err := streakSvc.RecordActivity(userID)
	if err != nil {
		return
	}
	NotifyAchievements(userID, completed)
}
