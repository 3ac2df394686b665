// Package scheduler owns the timers behind the background sweeps. It
// decides when; the reconciler decides what.
package scheduler

import (
	"context"
	"time"

	"tourdesk/internal/utils"
)

// Sweeps is what the scheduler drives on each tick.
type Sweeps interface {
	PromoteStartedBookings() error
	PromoteCompletedBookings() error
	SendEmiReminders() error
	PurgeAbandonedPayments() error
}

type Scheduler struct {
	Sweeps           Sweeps
	PromoteInterval  time.Duration
	ReminderInterval time.Duration
	PurgeInterval    time.Duration
}

// Run blocks until ctx is cancelled, firing each sweep on its own
// ticker. A failing sweep is logged and retried on the next tick.
func (s Scheduler) Run(ctx context.Context) {
	promote := time.NewTicker(s.PromoteInterval)
	reminder := time.NewTicker(s.ReminderInterval)
	purge := time.NewTicker(s.PurgeInterval)
	defer promote.Stop()
	defer reminder.Stop()
	defer purge.Stop()

	utils.LogEvent("", "scheduler", "start", "sweeps armed")
	for {
		select {
		case <-ctx.Done():
			utils.LogEvent("", "scheduler", "stop", "context cancelled")
			return
		case <-promote.C:
			s.run("promote_started", s.Sweeps.PromoteStartedBookings)
			s.run("promote_completed", s.Sweeps.PromoteCompletedBookings)
		case <-reminder.C:
			s.run("emi_reminders", s.Sweeps.SendEmiReminders)
		case <-purge.C:
			s.run("purge_orders", s.Sweeps.PurgeAbandonedPayments)
		}
	}
}

func (s Scheduler) run(name string, sweep func() error) {
	if err := sweep(); err != nil {
		utils.LogEvent("", "scheduler", name, "sweep failed: "+err.Error())
	}
}
