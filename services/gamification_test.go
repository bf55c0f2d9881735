package services

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"bitecount/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1050, 2},
		{2500, 3},
		{-10, 1},
	}
	for _, tc := range cases {
		if got := LevelForPoints(tc.points); got != tc.level {
			t.Errorf("LevelForPoints(%d) = %d, want %d", tc.points, got, tc.level)
		}
	}
}

func TestCompletionPercentage(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0}, // empty catalog must not divide by zero
		{0, 10, 0},
		{5, 10, 50},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
	}
	for _, tc := range cases {
		if got := CompletionPercentage(tc.completed, tc.total); got != tc.want {
			t.Errorf("CompletionPercentage(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
		}
	}
}

func TestNewGamificationServiceRejectsUncoveredType(t *testing.T) {
	// A catalog type without an aggregate function must fail at boot, not at
	// request time. All known types are covered, so this exercises the guard
	// through a catalog built directly.
	catalog := &Catalog{templates: []AchievementTemplate{
		{Type: "unmapped", Title: "X", Milestone: 1},
	}}
	if _, err := NewGamificationService(nil, catalog); err == nil {
		t.Fatal("expected error for catalog type without aggregate")
	}
}

// Integration tests below need a real PostgreSQL database.

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Badge{},
		&models.Food{},
		&models.FoodLog{},
		&models.ExerciseLog{},
		&models.WaterIntake{},
		&models.Achievement{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	user := &models.User{
		FullName:      "Test User",
		Email:         fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		Password:      "x",
		Age:           30,
		Gender:        "other",
		Height:        175,
		Weight:        70,
		ActivityLevel: "moderate",
		Level:         1,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	t.Cleanup(func() {
		db.Where("user_id = ?", user.ID).Delete(&models.Achievement{})
		db.Where("user_id = ?", user.ID).Delete(&models.Badge{})
		db.Where("user_id = ?", user.ID).Delete(&models.ExerciseLog{})
		db.Where("user_id = ?", user.ID).Delete(&models.FoodLog{})
		db.Where("user_id = ?", user.ID).Delete(&models.WaterIntake{})
		db.Delete(user)
	})

	return user
}

func newTestService(t *testing.T, db *gorm.DB) *GamificationService {
	svc, err := NewGamificationService(db, DefaultCatalog())
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}

func TestInitializeAchievementsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)
	user := createTestUser(t, db)

	if err := svc.InitializeAchievements(user.ID); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := svc.InitializeAchievements(user.ID); err != nil {
		t.Fatalf("second init: %v", err)
	}

	var count int64
	if err := db.Model(&models.Achievement{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if int(count) != svc.Catalog().Len() {
		t.Fatalf("expected %d instances, got %d", svc.Catalog().Len(), count)
	}
}

func TestInitializeAchievementsConcurrent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)
	user := createTestUser(t, db)

	const workers = 8
	errs := make(chan error, workers)
	var start sync.WaitGroup
	start.Add(1)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start.Wait()
			errs <- svc.InitializeAchievements(user.ID)
		}()
	}
	start.Done()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent init: %v", err)
		}
	}

	var count int64
	if err := db.Model(&models.Achievement{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if int(count) != svc.Catalog().Len() {
		t.Fatalf("expected %d instances after concurrent init, got %d", svc.Catalog().Len(), count)
	}
}

func TestInitializeAchievementsEmptyCatalog(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	catalog, err := NewCatalog(nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	svc, err := NewGamificationService(db, catalog)
	if err != nil {
		t.Fatalf("service: %v", err)
	}

	// An empty catalog makes init a no-op, not an error
	if err := svc.InitializeAchievements(user.ID); err != nil {
		t.Fatalf("init with empty catalog: %v", err)
	}

	summary, err := svc.GetProgressSummary(user.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.AchievementsTotal != 0 || summary.CompletionPercentage != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestMilestoneAwardedExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)
	user := createTestUser(t, db)

	if err := svc.InitializeAchievements(user.ID); err != nil {
		t.Fatalf("init: %v", err)
	}

	// 900 burned: below the 1000 milestone, progress only
	log1 := models.ExerciseLog{UserID: user.ID, ExerciseName: "Run", Duration: 60, Intensity: "high", CaloriesBurned: 900, Date: time.Now().UTC()}
	if err := db.Create(&log1).Error; err != nil {
		t.Fatalf("log: %v", err)
	}
	completed, err := svc.CheckCaloriesBurnedAchievements(user.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(completed) != 0 {
		t.Fatalf("nothing should complete at 900: %+v", completed)
	}

	var ach models.Achievement
	if err := db.Where("user_id = ? AND type = ? AND milestone = ?", user.ID, TypeCaloriesBurned, 1000).First(&ach).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if ach.Progress != 900 || ach.Completed {
		t.Fatalf("expected progress 900 pending, got %+v", ach)
	}

	// 200 more: crosses 1000, completes once
	log2 := models.ExerciseLog{UserID: user.ID, ExerciseName: "Bike", Duration: 30, Intensity: "moderate", CaloriesBurned: 200, Date: time.Now().UTC()}
	if err := db.Create(&log2).Error; err != nil {
		t.Fatalf("log: %v", err)
	}
	completed, err = svc.CheckCaloriesBurnedAchievements(user.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(completed) != 1 || completed[0].Milestone != 1000 {
		t.Fatalf("expected exactly the 1000 milestone to complete: %+v", completed)
	}

	// Re-checking must not complete or award again
	completed, err = svc.CheckCaloriesBurnedAchievements(user.ID)
	if err != nil {
		t.Fatalf("recheck: %v", err)
	}
	if len(completed) != 0 {
		t.Fatalf("second check must complete nothing: %+v", completed)
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.TotalPoints != 50 {
		t.Fatalf("expected 50 points awarded once, got %d", fresh.TotalPoints)
	}

	var badges int64
	if err := db.Model(&models.Badge{}).Where("user_id = ?", user.ID).Count(&badges).Error; err != nil {
		t.Fatalf("badges: %v", err)
	}
	if badges != 1 {
		t.Fatalf("expected one badge, got %d", badges)
	}
}

func TestMilestoneAwardedOnceUnderRace(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)
	user := createTestUser(t, db)

	if err := svc.InitializeAchievements(user.ID); err != nil {
		t.Fatalf("init: %v", err)
	}

	// Cross the 1000 milestone, then race the check from several goroutines:
	// exactly one caller may observe the completion and award the reward.
	entry := models.ExerciseLog{UserID: user.ID, ExerciseName: "Row", Duration: 90, Intensity: "high", CaloriesBurned: 1100, Date: time.Now().UTC()}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("log: %v", err)
	}

	const workers = 8
	type result struct {
		completed []models.Achievement
		err       error
	}
	results := make(chan result, workers)
	var start sync.WaitGroup
	start.Add(1)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start.Wait()
			completed, err := svc.CheckCaloriesBurnedAchievements(user.ID)
			results <- result{completed, err}
		}()
	}
	start.Done()
	wg.Wait()
	close(results)

	totalCompletions := 0
	for r := range results {
		if r.err != nil {
			t.Fatalf("concurrent check: %v", r.err)
		}
		totalCompletions += len(r.completed)
	}
	if totalCompletions != 1 {
		t.Fatalf("expected exactly one completion event across all racers, got %d", totalCompletions)
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.TotalPoints != 50 {
		t.Fatalf("expected 50 points awarded once, got %d", fresh.TotalPoints)
	}

	var badges int64
	if err := db.Model(&models.Badge{}).Where("user_id = ?", user.ID).Count(&badges).Error; err != nil {
		t.Fatalf("badges: %v", err)
	}
	if badges != 1 {
		t.Fatalf("expected one badge, got %d", badges)
	}
}

func TestProgressNeverRegresses(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)
	user := createTestUser(t, db)

	if err := svc.InitializeAchievements(user.ID); err != nil {
		t.Fatalf("init: %v", err)
	}

	// A streak of 5, then a stale report of 2: progress stays at 5
	if _, err := svc.CheckStreakAchievements(user.ID, 5); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := svc.CheckStreakAchievements(user.ID, 2); err != nil {
		t.Fatalf("check: %v", err)
	}

	var ach models.Achievement
	if err := db.Where("user_id = ? AND type = ? AND milestone = ?", user.ID, TypeStreak, 7).First(&ach).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if ach.Progress != 5 {
		t.Fatalf("expected progress to hold at 5, got %d", ach.Progress)
	}
}

func TestLevelCrossesThresholdAtomically(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"total_points": 900, "level": 1}).Error; err != nil {
		t.Fatalf("seed points: %v", err)
	}

	now := time.Now().UTC()
	if err := db.Transaction(func(tx *gorm.DB) error {
		return awardReward(tx, user.ID, 200, "Threshold", now)
	}); err != nil {
		t.Fatalf("award: %v", err)
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.TotalPoints != 1100 || fresh.Level != 2 {
		t.Fatalf("expected 1100 points at level 2, got %d points level %d", fresh.TotalPoints, fresh.Level)
	}
}

func TestAwardRewardUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		return awardReward(tx, 0, 10, "", time.Now().UTC())
	})
	if err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestWaterGoalUsesPerDayTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)
	user := createTestUser(t, db)

	if err := svc.InitializeAchievements(user.ID); err != nil {
		t.Fatalf("init: %v", err)
	}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.WaterIntake{
		{UserID: user.ID, Date: base, Glasses: 16, Target: 16},                  // met
		{UserID: user.ID, Date: base.AddDate(0, 0, 1), Glasses: 10, Target: 16}, // missed
		{UserID: user.ID, Date: base.AddDate(0, 0, 2), Glasses: 12, Target: 12}, // met, lower target
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("row: %v", err)
		}
	}

	days, err := daysWaterGoalMet(db, user.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if days != 2 {
		t.Fatalf("expected 2 goal-met days, got %d", days)
	}
}

func TestGetProgressSummary(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)
	user := createTestUser(t, db)

	if err := svc.InitializeAchievements(user.ID); err != nil {
		t.Fatalf("init: %v", err)
	}

	summary, err := svc.GetProgressSummary(user.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.AchievementsTotal != svc.Catalog().Len() || summary.AchievementsCompleted != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.CompletionPercentage != 0 || summary.Level != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Badges == nil {
		t.Fatal("badges must be an empty sequence, not nil")
	}
}

func TestGetProgressSummaryUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	if _, err := svc.GetProgressSummary(0); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
