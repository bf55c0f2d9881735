// handlers/achievements.go - Achievement listing and progress summary
package handlers

import (
	"errors"

	"bitecount/database"
	"bitecount/middleware"
	"bitecount/models"
	"bitecount/services"

	"github.com/gofiber/fiber/v2"
)

// GetAchievements lists the user's achievement instances, completed first
// (most recent completion at the top), then pending by milestone.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if err := gamificationSvc.InitializeAchievements(userID); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to initialize achievements"})
	}

	db := database.GetDB()

	var achievements []models.Achievement
	if err := db.Where("user_id = ?", userID).
		Order("completed DESC, completed_at DESC, milestone ASC").
		Find(&achievements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch achievements"})
	}

	completedCount := 0
	for _, a := range achievements {
		if a.Completed {
			completedCount++
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"completed":    completedCount,
		"total":        len(achievements),
	})
}

// GetProgressSummary returns the gamification overview: level, points,
// badges, streaks and completion percentage.
func GetProgressSummary(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	summary, err := gamificationSvc.GetProgressSummary(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch progress"})
	}

	return c.JSON(fiber.Map{"success": true, "progress": summary})
}
