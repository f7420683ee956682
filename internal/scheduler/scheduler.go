// Package scheduler runs periodic model recalibration jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fight-odds/internal/service"
)

// Scheduler manages scheduled calibration jobs
type Scheduler struct {
	cron           *cron.Cron
	calibrationSvc *service.CalibrationService
	log            *logrus.Logger
	mu             sync.RWMutex
	isRunning      bool
	jobIDs         []cron.EntryID
}

// NewScheduler creates a new scheduler
func NewScheduler(calibrationSvc *service.CalibrationService, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithLocation(time.UTC)),
		calibrationSvc: calibrationSvc,
		log:            log,
		jobIDs:         make([]cron.EntryID, 0),
	}
}

// ScheduleCalibration schedules periodic weight recalibration
func (s *Scheduler) ScheduleCalibration(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		s.log.Info("Starting scheduled calibration run")
		fitted, err := s.calibrationSvc.Run(ctx)
		if err != nil {
			s.log.WithError(err).Error("Scheduled calibration run failed")
			return
		}
		s.log.WithFields(logrus.Fields{
			"weights_id": fitted.ID,
			"samples":    fitted.Samples,
		}).Info("Scheduled calibration run completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.log.WithField("schedule", cronExpression).Info("Scheduled calibration job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.log.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.log.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}
