package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/litera-id/litera-backend/pkg/logger"
)

type overdueSweepRepo interface {
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// OverdueSweepJobParams configure the overdue sweep.
type OverdueSweepJobParams struct {
	Logger     *logger.Logger
	Repository overdueSweepRepo
}

// NewOverdueSweepJob builds the job that flips past-due loans to overdue.
func NewOverdueSweepJob(params OverdueSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("loans repository required")
	}
	return &overdueSweepJob{
		logg: params.Logger,
		repo: params.Repository,
		now:  time.Now,
	}, nil
}

type overdueSweepJob struct {
	logg *logger.Logger
	repo overdueSweepRepo
	now  func() time.Time
}

func (j *overdueSweepJob) Name() string { return "overdue-sweep" }

func (j *overdueSweepJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	flipped, err := j.repo.MarkOverdue(ctx, now)
	if err != nil {
		return fmt.Errorf("overdue sweep: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"as_of":        now,
		"rows_flipped": flipped,
	})
	j.logg.Info(logCtx, "overdue sweep complete")
	return nil
}
