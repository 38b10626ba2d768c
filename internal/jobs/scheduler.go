// Package jobs runs background tasks on a cron schedule.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"

	"milyoner_webapp/internal/logger"
	"milyoner_webapp/internal/repository"
)

// Yearly interest rate on bank deposits, in percent. Accrued daily as
// balance * rate / 365 / 100.
const interestYearlyPercent = 5

type Scheduler struct {
	cron     *cron.Cron
	userRepo *repository.UserRepository
}

func NewScheduler(userRepo *repository.UserRepository) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		userRepo: userRepo,
	}
}

// Start registers and launches all background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	// daily interest accrual at midnight UTC
	s.cron.AddFunc("0 0 * * *", func() {
		updated, err := s.userRepo.AccrueDailyInterest(ctx, interestYearlyPercent)
		if err != nil {
			logger.Error("daily interest accrual failed", "error", err)
			return
		}
		logger.Info("daily interest accrued", "accounts", updated)
	})

	s.cron.Start()
	logger.Info("job scheduler started")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("job scheduler stopped")
}
