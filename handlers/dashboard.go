// handlers/dashboard.go - Daily overview
package handlers

import (
	"time"

	"bitecount/database"
	"bitecount/middleware"
	"bitecount/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard assembles today's overview: calories in and out, macros,
// water progress, streak and gamification state. Opening the dashboard
// counts as daily activity, so it also advances the streak.
func GetDashboard(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if err := gamificationSvc.InitializeAchievements(userID); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to initialize achievements"})
	}

	streak, completed, err := streakSvc.RecordActivity(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to record activity"})
	}
	NotifyAchievements(userID, completed)

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	// Today's intake
	var foodLogs []models.FoodLog
	if err := db.Where("user_id = ? AND date >= ? AND date < ?", userID, today, tomorrow).
		Find(&foodLogs).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch food logs"})
	}

	var consumed, protein, carbs, fats int
	for _, l := range foodLogs {
		consumed += l.Calories
		protein += l.Protein
		carbs += l.Carbs
		fats += l.Fats
	}

	// Today's burn
	var burned int64
	if err := db.Model(&models.ExerciseLog{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, today, tomorrow).
		Select("COALESCE(SUM(calories_burned), 0)").
		Scan(&burned).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch exercise logs"})
	}

	// Today's water
	intake, err := waterIntakeForToday(db, userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch water intake"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"dashboard": fiber.Map{
			"date": today.Format("2006-01-02"),
			"calories": fiber.Map{
				"consumed": consumed,
				"burned":   int(burned),
				"net":      consumed - int(burned),
				"goal":     user.CalorieGoal,
			},
			"macros": fiber.Map{
				"protein": protein,
				"carbs":   carbs,
				"fats":    fats,
			},
			"water": waterResponse(intake),
			"streak": fiber.Map{
				"current": streak.CurrentStreak,
				"longest": streak.LongestStreak,
			},
			"level":            user.Level,
			"total_points":     user.TotalPoints,
			"new_achievements": completed,
		},
	})
}
