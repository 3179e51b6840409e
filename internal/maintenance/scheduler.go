// Package maintenance runs periodic housekeeping jobs.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/redmonkez12/advisory-cms/internal/logging"
)

const (
	// OTPCleanupSchedule runs at the top of every hour
	OTPCleanupSchedule = "@hourly"
	jobTimeout         = time.Minute
)

// OTPCleaner removes password reset codes that can no longer be used
type OTPCleaner interface {
	ClearExpiredResetOTPs(ctx context.Context, now time.Time) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	cleaner OTPCleaner
	logger  *logging.Logger
	now     func() time.Time
}

func NewScheduler(cleaner OTPCleaner, logger *logging.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cleaner: cleaner,
		logger:  logger,
		now:     time.Now,
	}
}

// Start schedules the jobs and starts the cron runner in its own goroutine
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(OTPCleanupSchedule, s.runOTPCleanup); err != nil {
		return fmt.Errorf("failed to schedule otp cleanup: %w", err)
	}
	s.cron.Start()
	s.logger.Info("maintenance scheduler started", "otp_cleanup", OTPCleanupSchedule)
	return nil
}

// Stop waits for running jobs or until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("maintenance jobs still running at shutdown")
	}
}

func (s *Scheduler) runOTPCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.ClearExpiredOTPs(ctx)
	if err != nil {
		s.logger.Error("otp cleanup failed", "error", err.Error())
		return
	}
	if n > 0 {
		s.logger.Info("cleared expired reset codes", "count", n)
	}
}

// ClearExpiredOTPs runs the cleanup once
func (s *Scheduler) ClearExpiredOTPs(ctx context.Context) (int64, error) {
	return s.cleaner.ClearExpiredResetOTPs(ctx, s.now())
}
