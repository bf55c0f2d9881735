// database/seed.go - Default food catalog seeding
package database

import (
	"bitecount/models"
	"log"
)

// SeedFoods inserts the default food catalog when the table has no
// non-custom entries. Safe to call on every boot.
func SeedFoods() {
	db := GetDB()

	var count int64
	if err := db.Model(&models.Food{}).Where("is_custom = ?", false).Count(&count).Error; err != nil {
		log.Printf("Food seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	foods := []models.Food{
		{Name: "Oatmeal", Calories: 150, Protein: 5, Carbs: 27, Fats: 3, ServingSize: "40g", Category: "breakfast"},
		{Name: "Scrambled Eggs", Calories: 180, Protein: 12, Carbs: 2, Fats: 14, ServingSize: "2 eggs", Category: "breakfast"},
		{Name: "Banana", Calories: 105, Protein: 1, Carbs: 27, Fats: 0, ServingSize: "1 medium", Category: "snack"},
		{Name: "Grilled Chicken Breast", Calories: 165, Protein: 31, Carbs: 0, Fats: 4, ServingSize: "100g", Category: "lunch"},
		{Name: "Brown Rice", Calories: 216, Protein: 5, Carbs: 45, Fats: 2, ServingSize: "1 cup", Category: "lunch"},
		{Name: "Caesar Salad", Calories: 180, Protein: 8, Carbs: 10, Fats: 12, ServingSize: "1 bowl", Category: "lunch"},
		{Name: "Salmon Fillet", Calories: 208, Protein: 20, Carbs: 0, Fats: 13, ServingSize: "100g", Category: "dinner"},
		{Name: "Steamed Broccoli", Calories: 55, Protein: 4, Carbs: 11, Fats: 1, ServingSize: "1 cup", Category: "dinner"},
		{Name: "Whole Wheat Pasta", Calories: 174, Protein: 7, Carbs: 37, Fats: 1, ServingSize: "1 cup", Category: "dinner"},
		{Name: "Greek Yogurt", Calories: 100, Protein: 17, Carbs: 6, Fats: 1, ServingSize: "170g", Category: "snack"},
		{Name: "Almonds", Calories: 164, Protein: 6, Carbs: 6, Fats: 14, ServingSize: "28g", Category: "snack"},
		{Name: "Apple", Calories: 95, Protein: 0, Carbs: 25, Fats: 0, ServingSize: "1 medium", Category: "snack"},
		{Name: "Orange Juice", Calories: 112, Protein: 2, Carbs: 26, Fats: 0, ServingSize: "250ml", Category: "beverage"},
		{Name: "Black Coffee", Calories: 2, Protein: 0, Carbs: 0, Fats: 0, ServingSize: "1 cup", Category: "beverage"},
		{Name: "Protein Shake", Calories: 160, Protein: 30, Carbs: 5, Fats: 2, ServingSize: "1 scoop", Category: "beverage"},
	}

	if err := db.Create(&foods).Error; err != nil {
		log.Printf("Food seed failed: %v", err)
		return
	}

	log.Printf("✅ Seeded %d default foods", len(foods))
}
