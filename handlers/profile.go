// handlers/profile.go
package handlers

import (
	"bitecount/database"
	"bitecount/middleware"
	"bitecount/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	FullName        *string  `json:"full_name"`
	Age             *int     `json:"age"`
	Gender          *string  `json:"gender"`
	Height          *float64 `json:"height"`
	Weight          *float64 `json:"weight"`
	ActivityLevel   *string  `json:"activity_level"`
	HealthCondition *string  `json:"health_condition"`
	CalorieGoal     *int     `json:"calorie_goal"`
}

type UpdateTargetsRequest struct {
	TargetCaloriesBurn *int `json:"target_calories_burn"`
	TargetWaterGlasses *int `json:"target_water_glasses"`
	TargetSteps        *int `json:"target_steps"`
}

// GetProfile returns the authenticated user's profile with badges.
func GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.Preload("Badges").First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// UpdateProfile applies partial profile updates. Only provided fields change.
func UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Height != nil {
		updates["height"] = *req.Height
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.ActivityLevel != nil {
		updates["activity_level"] = *req.ActivityLevel
	}
	if req.HealthCondition != nil {
		updates["health_condition"] = *req.HealthCondition
	}
	if req.CalorieGoal != nil {
		if *req.CalorieGoal <= 0 {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Calorie goal must be positive"})
		}
		updates["calorie_goal"] = *req.CalorieGoal
	}

	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No fields to update"})
	}

	db := database.GetDB()

	res := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	var user models.User
	db.First(&user, userID)

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// UpdateTargets changes daily targets. A new water target only applies from
// the next water-intake day; existing days keep the target they were created
// with.
func UpdateTargets(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req UpdateTargetsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.TargetCaloriesBurn != nil {
		if *req.TargetCaloriesBurn <= 0 {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Target calories burn must be positive"})
		}
		updates["target_calories_burn"] = *req.TargetCaloriesBurn
	}
	if req.TargetWaterGlasses != nil {
		if *req.TargetWaterGlasses <= 0 {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Target water glasses must be positive"})
		}
		updates["target_water_glasses"] = *req.TargetWaterGlasses
	}
	if req.TargetSteps != nil {
		if *req.TargetSteps <= 0 {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Target steps must be positive"})
		}
		updates["target_steps"] = *req.TargetSteps
	}

	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No targets to update"})
	}

	db := database.GetDB()

	res := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update targets"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	var user models.User
	db.First(&user, userID)

	return c.JSON(fiber.Map{
		"success": true,
		"targets": fiber.Map{
			"target_calories_burn": user.TargetCaloriesBurn,
			"target_water_glasses": user.TargetWaterGlasses,
			"target_steps":         user.TargetSteps,
		},
	})
}
