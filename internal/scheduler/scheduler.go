package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"pythia/pkg/errors"
	"pythia/pkg/logger"
)

// Runner is one full pipeline pass.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler re-runs the pipeline on a cron schedule. A failed tick is
// logged and tracked but does not stop the schedule; the previous page
// stays in place until a tick succeeds.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	ctx    context.Context
	log    *logger.Logger
}

// New creates a scheduler around the given runner.
func New(ctx context.Context, runner Runner) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		ctx:    ctx,
		log:    logger.Get().With("component", "scheduler"),
	}
}

// Register adds the pipeline run under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.task); err != nil {
		return errors.Wrapf(err, "register render task %q", spec)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) task() {
	s.log.Info("Running scheduled render")
	if err := s.runner.Run(s.ctx); err != nil {
		s.log.ErrorWithContext(s.ctx, err, map[string]string{"component": "scheduler"})
	}
}
