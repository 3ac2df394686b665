package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingSweeps struct {
	started   atomic.Int32
	completed atomic.Int32
	reminders atomic.Int32
	purges    atomic.Int32
}

func (c *countingSweeps) PromoteStartedBookings() error   { c.started.Add(1); return nil }
func (c *countingSweeps) PromoteCompletedBookings() error { c.completed.Add(1); return nil }
func (c *countingSweeps) SendEmiReminders() error         { c.reminders.Add(1); return nil }
func (c *countingSweeps) PurgeAbandonedPayments() error   { c.purges.Add(1); return nil }

func TestSchedulerFiresAllSweeps(t *testing.T) {
	sweeps := &countingSweeps{}
	s := Scheduler{
		Sweeps:           sweeps,
		PromoteInterval:  5 * time.Millisecond,
		ReminderInterval: 5 * time.Millisecond,
		PurgeInterval:    5 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for sweeps.started.Load() == 0 || sweeps.reminders.Load() == 0 || sweeps.purges.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("sweeps did not all fire in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}

	if sweeps.started.Load() != sweeps.completed.Load() {
		t.Fatalf("promotes fire together: started=%d completed=%d", sweeps.started.Load(), sweeps.completed.Load())
	}
}
