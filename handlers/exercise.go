// handlers/exercise.go - Workout logging
package handlers

import (
	"math"
	"time"

	"bitecount/database"
	"bitecount/middleware"
	"bitecount/models"

	"github.com/gofiber/fiber/v2"
)

type AddExerciseLogRequest struct {
	ExerciseName string `json:"exercise_name"`
	Duration     int    `json:"duration"` // minutes
	Intensity    string `json:"intensity"`
}

// Calories burned per minute at 70kg body weight, by intensity.
var intensityMultipliers = map[string]float64{
	"low":      3,
	"moderate": 5,
	"high":     8,
}

// estimateCaloriesBurned scales the per-minute burn rate by the user's
// weight relative to a 70kg reference.
func estimateCaloriesBurned(duration int, intensity string, weightKg float64) int {
	multiplier, ok := intensityMultipliers[intensity]
	if !ok {
		multiplier = intensityMultipliers["moderate"]
	}
	if weightKg <= 0 {
		weightKg = 70
	}
	return int(math.Round(float64(duration) * multiplier * weightKg / 70))
}

// AddExerciseLog records a workout, estimates calories burned, and feeds the
// calories-burned achievement check.
func AddExerciseLog(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req AddExerciseLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.ExerciseName == "" || req.Duration <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Exercise name and positive duration required"})
	}
	if req.Intensity == "" {
		req.Intensity = "moderate"
	}
	if _, ok := intensityMultipliers[req.Intensity]; !ok {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Intensity must be low, moderate or high"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	entry := models.ExerciseLog{
		UserID:         userID,
		ExerciseName:   req.ExerciseName,
		Duration:       req.Duration,
		Intensity:      req.Intensity,
		CaloriesBurned: estimateCaloriesBurned(req.Duration, req.Intensity, user.Weight),
		Date:           time.Now().UTC(),
	}

	if err := db.Create(&entry).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to log exercise"})
	}

	completed, err := gamificationSvc.CheckCaloriesBurnedAchievements(userID)
	if err != nil {
		completed = nil
	}
	NotifyAchievements(userID, completed)

	recordActivityAndNotify(userID)

	return c.Status(201).JSON(fiber.Map{
		"success":          true,
		"exercise_log":     entry,
		"new_achievements": completed,
	})
}

// GetExerciseLogs lists the user's workouts for one day (default today).
func GetExerciseLogs(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	day, err := parseDayQuery(c.Query("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid date, expected YYYY-MM-DD"})
	}

	db := database.GetDB()

	var logs []models.ExerciseLog
	if err := db.Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1)).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch exercise logs"})
	}

	totalBurned := 0
	totalMinutes := 0
	for _, l := range logs {
		totalBurned += l.CaloriesBurned
		totalMinutes += l.Duration
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"exercise_logs": logs,
		"total_burned":  totalBurned,
		"total_minutes": totalMinutes,
	})
}
