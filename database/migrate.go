// database/migrate.go - Database Migration Runner
package database

import (
	"bitecount/models"
	"log"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Badge{},
		&models.Food{},
		&models.FoodLog{},
		&models.ExerciseLog{},
		&models.WaterIntake{},
		&models.Achievement{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	log.Println("✅ Migrations completed")

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes beyond what AutoMigrate derives from tags
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_level ON users(level DESC)")

	// Log indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_food_logs_user_date ON food_logs(user_id, date DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_exercise_logs_user_date ON exercise_logs(user_id, date DESC)")

	// Achievement indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_user_type ON achievements(user_id, type)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_completed ON achievements(user_id, completed)")

	// Badge indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_badges_user ON badges(user_id)")

	log.Println("✅ Indexes created successfully")
}
