// cmd/food-importer/main.go - Bulk food catalog importer
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"bitecount/database"
	"bitecount/models"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
)

type foodEntry struct {
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	ServingSize string  `json:"serving_size"`
	Category    string  `json:"category"`
}

func main() {
	file := flag.String("file", "foods.json", "path to the JSON food list")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", *file, err)
	}

	var entries []foodEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("❌ Failed to parse %s: %v", *file, err)
	}
	if len(entries) == 0 {
		log.Fatal("❌ No foods found in input file")
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	imported := 0
	skipped := 0
	for _, e := range entries {
		if e.Name == "" || e.Calories < 0 {
			log.Printf("Skipping invalid entry: %+v", e)
			skipped++
			continue
		}

		food := models.Food{
			Name:        e.Name,
			Calories:    e.Calories,
			Protein:     e.Protein,
			Carbs:       e.Carbs,
			Fats:        e.Fats,
			ServingSize: e.ServingSize,
			Category:    e.Category,
		}
		if food.ServingSize == "" {
			food.ServingSize = "100g"
		}
		if food.Category == "" {
			food.Category = "other"
		}

		// Skip foods that already exist by name
		var existing int64
		if err := db.Model(&models.Food{}).
			Where("name = ? AND is_custom = ?", food.Name, false).
			Count(&existing).Error; err != nil {
			log.Fatalf("❌ Lookup failed for %s: %v", food.Name, err)
		}
		if existing > 0 {
			skipped++
			continue
		}

		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&food).Error; err != nil {
			log.Fatalf("❌ Import failed for %s: %v", food.Name, err)
		}
		imported++
	}

	log.Printf("✅ Imported %d foods (%d skipped)", imported, skipped)
}
