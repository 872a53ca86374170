package background

import (
	"context"
	"log"
	"sync"
	"time"

	"rentflow/internal/config"
	"rentflow/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the periodic payment sweeps
type JobScheduler struct {
	scheduler gocron.Scheduler
	payments  *jobs.PaymentJobs
	cfg       *config.SchedulerConfig
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(payments *jobs.PaymentJobs, cfg *config.SchedulerConfig) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		payments:  payments,
		cfg:       cfg,
		jobs:      make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	if js.cfg.Scheduler.Enabled {
		sweepJob, err := js.scheduler.NewJob(
			gocron.DurationJob(time.Duration(js.cfg.Scheduler.OverdueSweepMinutes)*time.Minute),
			gocron.NewTask(js.payments.MarkOverduePayments, context.Background()),
			gocron.WithName("payment-overdue-sweep"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			log.Printf("Failed to create overdue sweep job: %v", err)
		} else {
			js.jobs["overdue-sweep"] = sweepJob
		}
	}

	if js.cfg.Reminders.Enabled {
		reminderJob, err := js.scheduler.NewJob(
			gocron.DurationJob(time.Duration(js.cfg.Reminders.IntervalHours)*time.Hour),
			gocron.NewTask(js.payments.SendRentReminders, context.Background(), js.cfg.Reminders.LeadDays),
			gocron.WithName("rent-due-reminders"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			log.Printf("Failed to create rent reminder job: %v", err)
		} else {
			js.jobs["rent-reminders"] = reminderJob
		}
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// JobNames lists the registered job names, for health reporting
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}
