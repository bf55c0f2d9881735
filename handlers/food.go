// handlers/food.go - Food catalog and meal logging
package handlers

import (
	"math"
	"time"

	"bitecount/database"
	"bitecount/middleware"
	"bitecount/models"

	"github.com/gofiber/fiber/v2"
)

type AddFoodLogRequest struct {
	FoodID   uint    `json:"food_id"`
	MealType string  `json:"meal_type"`
	Portion  float64 `json:"portion"`
}

type AddCustomFoodRequest struct {
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	ServingSize string  `json:"serving_size"`
	Category    string  `json:"category"`
}

var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// GetFoods lists catalog foods plus the user's own custom foods. Supports
// optional ?category= and ?search= filters.
func GetFoods(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	query := db.Where("is_custom = ? OR created_by = ?", false, userID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var foods []models.Food
	if err := query.Order("name ASC").Find(&foods).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch foods"})
	}

	return c.JSON(fiber.Map{"success": true, "foods": foods})
}

// AddCustomFood creates a user-owned food catalog entry.
func AddCustomFood(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req AddCustomFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Name == "" || req.Calories < 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Name and non-negative calories required"})
	}

	db := database.GetDB()

	food := models.Food{
		Name:        req.Name,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fats:        req.Fats,
		ServingSize: req.ServingSize,
		Category:    req.Category,
		IsCustom:    true,
		CreatedBy:   &userID,
	}
	if food.ServingSize == "" {
		food.ServingSize = "100g"
	}
	if food.Category == "" {
		food.Category = "other"
	}

	if err := db.Create(&food).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create food"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "food": food})
}

// AddFoodLog records one meal, scaling catalog macros by portion size, then
// feeds the food-logging achievement check.
func AddFoodLog(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req AddFoodLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if !validMealTypes[req.MealType] {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid meal type"})
	}
	if req.Portion <= 0 {
		req.Portion = 1
	}

	db := database.GetDB()

	var food models.Food
	if err := db.First(&food, req.FoodID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Food not found"})
	}

	// Custom foods are only visible to their creator
	if food.IsCustom && (food.CreatedBy == nil || *food.CreatedBy != userID) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Food not found"})
	}

	entry := models.FoodLog{
		UserID:   userID,
		FoodID:   food.ID,
		FoodName: food.Name,
		MealType: req.MealType,
		Portion:  req.Portion,
		Calories: int(math.Round(food.Calories * req.Portion)),
		Protein:  int(math.Round(food.Protein * req.Portion)),
		Carbs:    int(math.Round(food.Carbs * req.Portion)),
		Fats:     int(math.Round(food.Fats * req.Portion)),
		Date:     time.Now().UTC(),
	}

	if err := db.Create(&entry).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to log food"})
	}

	completed, err := gamificationSvc.CheckFoodLoggingAchievements(userID)
	if err != nil {
		// The log row is in; achievements will catch up on the next check
		completed = nil
	}
	NotifyAchievements(userID, completed)

	recordActivityAndNotify(userID)

	return c.Status(201).JSON(fiber.Map{
		"success":          true,
		"food_log":         entry,
		"new_achievements": completed,
	})
}

// GetFoodLogs lists the user's meals for one day (default today, override
// with ?date=YYYY-MM-DD).
func GetFoodLogs(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	day, err := parseDayQuery(c.Query("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid date, expected YYYY-MM-DD"})
	}

	db := database.GetDB()

	var logs []models.FoodLog
	if err := db.Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1)).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch food logs"})
	}

	totals := fiber.Map{"calories": 0, "protein": 0, "carbs": 0, "fats": 0}
	var cal, protein, carbs, fats int
	for _, l := range logs {
		cal += l.Calories
		protein += l.Protein
		carbs += l.Carbs
		fats += l.Fats
	}
	totals["calories"] = cal
	totals["protein"] = protein
	totals["carbs"] = carbs
	totals["fats"] = fats

	return c.JSON(fiber.Map{"success": true, "food_logs": logs, "totals": totals})
}

// parseDayQuery resolves an optional YYYY-MM-DD query value to midnight UTC,
// defaulting to today.
func parseDayQuery(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}
