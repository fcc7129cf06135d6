package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/internal/loans"
	"github.com/litera-id/litera-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AchievementSweepJobParams configure the milestone back-fill.
type AchievementSweepJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository *loans.Repository
}

// NewAchievementSweepJob builds the job that back-fills loan milestones
// awarded outside the request path.
func NewAchievementSweepJob(params AchievementSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("loans repository required")
	}
	return &achievementSweepJob{
		logg: params.Logger,
		db:   params.DB,
		repo: params.Repository,
		now:  time.Now,
	}, nil
}

type achievementSweepJob struct {
	logg *logger.Logger
	db   txRunner
	repo *loans.Repository
	now  func() time.Time
}

func (j *achievementSweepJob) Name() string { return "achievement-sweep" }

func (j *achievementSweepJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	userIDs, err := j.repo.ListUsersWithLoanActivity(ctx)
	if err != nil {
		return fmt.Errorf("achievement sweep: list users: %w", err)
	}

	var granted int
	var errs error
	for _, userID := range userIDs {
		err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
			codes, err := loans.EvaluateMilestones(ctx, j.repo.WithTx(tx), userID, now)
			if err != nil {
				return err
			}
			granted += len(codes)
			return nil
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("user %s: %w", userID, err))
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"users_scanned":  len(userIDs),
		"awards_granted": granted,
	})
	if errs != nil {
		j.logg.Error(logCtx, "achievement sweep finished with errors", errs)
		return fmt.Errorf("achievement sweep: %w", errs)
	}
	j.logg.Info(logCtx, "achievement sweep complete")
	return nil
}
