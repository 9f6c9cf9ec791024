package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/srgjo27/reservation_engine/internal/core/services"
)

type Reconciler interface {
	ReconcileRecent(ctx context.Context) ([]*services.ReconcileSummary, error)
}

type Housekeeper interface {
	DropStale(ctx context.Context) (int, error)
	Purge(ctx context.Context, tenantID string, before time.Time) (services.PurgeResult, error)
}

type Config struct {
	ReconcileCron   string
	AgingInterval   time.Duration
	RetentionMonths int
	Location        *time.Location
}

type Jobs struct {
	reconciler  Reconciler
	housekeeper Housekeeper
	now         func() time.Time
}

func NewJobs(reconciler Reconciler, housekeeper Housekeeper) *Jobs {
	return &Jobs{reconciler: reconciler, housekeeper: housekeeper, now: time.Now}
}

// Nightly drops stale PENDING reservations first so reconciliation only
// classifies the ones that were confirmed or show signals.
func (j *Jobs) Nightly(ctx context.Context) {
	if _, err := j.housekeeper.DropStale(ctx); err != nil {
		log.Printf("level=error msg=\"aging before reconciliation failed\" err=%v", err)
	}
	summaries, err := j.reconciler.ReconcileRecent(ctx)
	if err != nil {
		log.Printf("level=error msg=\"nightly reconciliation failed\" err=%v", err)
		return
	}
	log.Printf("level=info msg=\"nightly reconciliation done\" windows=%d", len(summaries))
}

func (j *Jobs) Aging(ctx context.Context) {
	if _, err := j.housekeeper.DropStale(ctx); err != nil {
		log.Printf("level=error msg=\"aging failed\" err=%v", err)
	}
}

func (j *Jobs) Retention(ctx context.Context, months int) {
	if months <= 0 {
		return
	}
	cutoff := j.now().AddDate(0, -months, 0)
	if _, err := j.housekeeper.Purge(ctx, "", cutoff); err != nil {
		log.Printf("level=error msg=\"retention purge failed\" err=%v", err)
	}
}

// Start registers the jobs and starts the scheduler. Every job runs in
// singleton mode so a slow run is never overlapped by the next tick.
func Start(cfg Config, jobs *Jobs) (gocron.Scheduler, error) {
	opts := []gocron.SchedulerOption{}
	if cfg.Location != nil {
		opts = append(opts, gocron.WithLocation(cfg.Location))
	}
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	if _, err := s.NewJob(
		gocron.CronJob(cfg.ReconcileCron, false),
		gocron.NewTask(jobs.Nightly),
		gocron.WithName("nightly-reconciliation"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return nil, fmt.Errorf("failed to schedule reconciliation: %w", err)
	}

	if cfg.AgingInterval > 0 {
		if _, err := s.NewJob(
			gocron.DurationJob(cfg.AgingInterval),
			gocron.NewTask(jobs.Aging),
			gocron.WithName("pending-aging"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return nil, fmt.Errorf("failed to schedule aging: %w", err)
		}
	}

	if cfg.RetentionMonths > 0 {
		if _, err := s.NewJob(
			gocron.MonthlyJob(1, gocron.NewDaysOfTheMonth(1), gocron.NewAtTimes(gocron.NewAtTime(5, 0, 0))),
			gocron.NewTask(jobs.Retention, cfg.RetentionMonths),
			gocron.WithName("retention-purge"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return nil, fmt.Errorf("failed to schedule retention purge: %w", err)
		}
	}

	s.Start()
	log.Printf("level=info msg=\"scheduler started\" jobs=%d", len(s.Jobs()))
	return s, nil
}
