// handlers/water.go - Daily water intake tracking
package handlers

import (
	"errors"
	"time"

	"bitecount/database"
	"bitecount/middleware"
	"bitecount/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddWaterRequest struct {
	Amount float64 `json:"amount"` // glasses: 0.5 or 1
}

// waterIntakeForToday loads today's row, creating it with the user's current
// target when missing. The unique (user_id, date) index plus DO NOTHING keeps
// concurrent first requests from creating duplicates.
func waterIntakeForToday(db *gorm.DB, userID uint) (*models.WaterIntake, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var intake models.WaterIntake
	err := db.Where("user_id = ? AND date = ?", userID, today).First(&intake).Error
	if err == nil {
		return &intake, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	intake = models.WaterIntake{
		UserID:  userID,
		Date:    today,
		Glasses: 0,
		Target:  user.TargetWaterGlasses * 2, // half-glass units
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&intake).Error; err != nil {
		return nil, err
	}

	// Re-read in case a concurrent request won the insert
	if err := db.Where("user_id = ? AND date = ?", userID, today).First(&intake).Error; err != nil {
		return nil, err
	}
	return &intake, nil
}

func waterResponse(intake *models.WaterIntake) fiber.Map {
	logs, err := intake.GetLogs()
	if err != nil {
		logs = nil
	}
	return fiber.Map{
		"date":    intake.Date.Format("2006-01-02"),
		"glasses": float64(intake.Glasses) / 2,
		"target":  float64(intake.Target) / 2,
		"met":     intake.Glasses >= intake.Target,
		"logs":    logs,
	}
}

// GetWaterIntake returns today's water progress.
func GetWaterIntake(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	intake, err := waterIntakeForToday(db, userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch water intake"})
	}

	return c.JSON(fiber.Map{"success": true, "water": waterResponse(intake)})
}

// AddWater records a half or full glass, then feeds the water achievement
// check. The row is locked for the glasses increment and log append so
// concurrent sips cannot lose history.
func AddWater(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req AddWaterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Amount != 0.5 && req.Amount != 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Amount must be 0.5 or 1"})
	}

	db := database.GetDB()

	if _, err := waterIntakeForToday(db, userID); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch water intake"})
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var intake models.WaterIntake
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND date = ?", userID, today).
			First(&intake).Error; err != nil {
			return err
		}

		logs, err := intake.GetLogs()
		if err != nil {
			return err
		}
		logs = append(logs, models.WaterLogEntry{Amount: req.Amount, Timestamp: now})
		if err := intake.SetLogs(logs); err != nil {
			return err
		}

		intake.Glasses += int(req.Amount * 2)

		return tx.Model(&models.WaterIntake{}).
			Where("id = ?", intake.ID).
			Updates(map[string]interface{}{
				"glasses":   intake.Glasses,
				"logs_json": intake.LogsJSON,
			}).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to add water"})
	}

	completed, err := gamificationSvc.CheckWaterIntakeAchievements(userID)
	if err != nil {
		completed = nil
	}
	NotifyAchievements(userID, completed)

	recordActivityAndNotify(userID)

	return c.JSON(fiber.Map{
		"success":          true,
		"water":            waterResponse(&intake),
		"new_achievements": completed,
	})
}

// ResetWater clears today's glasses and sip history.
func ResetWater(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	intake, err := waterIntakeForToday(db, userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch water intake"})
	}

	if err := db.Model(&models.WaterIntake{}).
		Where("id = ?", intake.ID).
		Updates(map[string]interface{}{
			"glasses":   0,
			"logs_json": "[]",
		}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to reset water intake"})
	}

	intake.Glasses = 0
	intake.LogsJSON = "[]"

	return c.JSON(fiber.Map{"success": true, "water": waterResponse(intake)})
}
