package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher is a job target, typically the exchange rate cache
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler runs periodic exchange rate refreshes
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration
	log       *logrus.Logger
}

// NewScheduler validates spec (standard cron or descriptors such as "@every 1h")
func NewScheduler(spec string, refresher Refresher, timeout time.Duration, log *logrus.Logger) (*Scheduler, error) {
	logger := cron.PrintfLogger(log)
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		refresher: refresher,
		timeout:   timeout,
		log:       log,
	}

	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid rates schedule %q: %w", spec, err)
	}
	return s, s.register(spec)
}

func (s *Scheduler) register(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.refresh(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule rate refresh: %w", err)
	}
	return nil
}

// refresh runs one job. Failures are logged and otherwise ignored.
func (s *Scheduler) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.refresher.Refresh(ctx); err != nil {
		s.log.Warnf("Scheduled rate refresh failed: %v", err)
		return
	}
	s.log.Debug("Scheduled rate refresh done")
}

// Run starts the scheduler and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Infof("Rate refresh scheduler started with %d job(s)", len(s.cron.Entries()))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("Rate refresh scheduler stopped")
	return nil
}
