// handlers/admin/foods.go - Food catalog management
package admin

import (
	"bitecount/database"
	"bitecount/models"

	"github.com/gofiber/fiber/v2"
)

// GetFoods returns the full food catalog, custom foods included.
func GetFoods(c *fiber.Ctx) error {
	db := database.GetDB()

	var foods []models.Food
	if err := db.Order("id ASC").Find(&foods).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch foods"})
	}

	return c.JSON(foods)
}

// CreateFood adds a catalog food entry.
func CreateFood(c *fiber.Ctx) error {
	db := database.GetDB()

	var food models.Food
	if err := c.BodyParser(&food); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if food.Name == "" || food.Calories < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Name and non-negative calories required"})
	}

	// Catalog entries are never user-owned
	food.IsCustom = false
	food.CreatedBy = nil

	if err := db.Create(&food).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create food"})
	}

	return c.Status(201).JSON(food)
}

// UpdateFood updates an existing catalog food.
func UpdateFood(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var food models.Food
	if err := db.First(&food, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Food not found"})
	}

	var updates models.Food
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if updates.Name != "" {
		food.Name = updates.Name
	}
	if updates.Calories >= 0 {
		food.Calories = updates.Calories
	}
	food.Protein = updates.Protein
	food.Carbs = updates.Carbs
	food.Fats = updates.Fats
	if updates.ServingSize != "" {
		food.ServingSize = updates.ServingSize
	}
	if updates.Category != "" {
		food.Category = updates.Category
	}

	if err := db.Save(&food).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update food"})
	}

	return c.JSON(food)
}

// DeleteFood removes a food from the catalog. Existing food logs keep their
// denormalized name and macros.
func DeleteFood(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	if err := db.Delete(&models.Food{}, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete food"})
	}

	return c.JSON(fiber.Map{
		"message": "Food deleted successfully",
	})
}
