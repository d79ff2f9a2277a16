package scheduler

import (
	"context"
	"time"

	"github.com/minhngvn/finshare-server/internal/service"
	"github.com/minhngvn/finshare-server/internal/utils"
	"github.com/robfig/cron/v3"
)

// Start schedules the background jobs and returns the running cron
// instance so the caller can stop it on shutdown.
func Start(svc service.Service) *cron.Cron {
	c := cron.New()

	// Daily at midnight: remind participants who still owe on active
	// shared expenses.
	_, err := c.AddFunc("0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := svc.SendDebtReminders(ctx); err != nil {
			utils.Logger.WithError(err).Error("debt reminder job failed")
		}
	})
	if err != nil {
		utils.Logger.WithError(err).Error("failed to schedule debt reminder job")
	}

	c.Start()
	utils.Logger.Info("cron jobs started (debt reminders daily at midnight)")
	return c
}
