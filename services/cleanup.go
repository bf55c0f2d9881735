// services/cleanup.go - Background retention tasks
package services

import (
	"log"
	"time"

	"bitecount/models"

	"gorm.io/gorm"
)

// CleanupService prunes rows that carry no signal. Viewing the dashboard
// creates a water-intake row for the day even if the user never logs a sip;
// old empty rows are noise and are removed on a schedule.
type CleanupService struct {
	db       *gorm.DB
	interval time.Duration
	retain   time.Duration
	stop     chan struct{}
	done     chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService(db *gorm.DB) {
	cleanupService = &CleanupService{
		db:       db,
		interval: 24 * time.Hour,
		retain:   7 * 24 * time.Hour,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start launches the background worker.
func (s *CleanupService) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.CleanupEmptyWaterIntakes(); err != nil {
					log.Printf("Cleanup run failed: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop shuts the worker down and waits for it to exit.
func (s *CleanupService) Stop() {
	close(s.stop)
	<-s.done
}

// CleanupEmptyWaterIntakes removes water-intake rows older than the
// retention window that never recorded a sip. Rows with glasses are kept
// forever; they feed the water achievement aggregate.
func (s *CleanupService) CleanupEmptyWaterIntakes() error {
	cutoff := time.Now().UTC().Add(-s.retain)

	res := s.db.Where("glasses = 0 AND date < ?", cutoff).Delete(&models.WaterIntake{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected > 0 {
		log.Printf("✅ Cleaned up %d empty water-intake rows", res.RowsAffected)
	}
	return nil
}
