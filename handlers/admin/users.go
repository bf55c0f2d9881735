// handlers/admin/users.go - User administration
package admin

import (
	"bitecount/database"
	"bitecount/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetUsers lists all users.
func GetUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	var users []models.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": len(users),
	})
}

// GetUser returns one user with badges and achievements.
func GetUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.Preload("Badges").Preload("Achievements").First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

// DeleteUser removes a user and all their data.
func DeleteUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.FoodLog{},
			&models.ExerciseLog{},
			&models.WaterIntake{},
			&models.Achievement{},
			&models.Badge{},
		} {
			if err := tx.Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("created_by = ?", user.ID).Delete(&models.Food{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
