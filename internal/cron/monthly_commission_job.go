package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/dmarroquin/freightops-backend/internal/commissions"
	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
)

// commissionUserSource lists the users the monthly batch covers.
type commissionUserSource interface {
	ListAllActiveUsers(ctx context.Context) ([]models.User, error)
}

// MonthlyCommissionJob computes the just-closed month for every active user.
// Snapshots already computed on demand stay untouched; the job only fills
// the gaps. One user failing never aborts the rest of the batch.
type MonthlyCommissionJob struct {
	users       commissionUserSource
	commissions commissions.Service
	logg        *logger.Logger
	now         func() time.Time
}

// NewMonthlyCommissionJob builds the job.
func NewMonthlyCommissionJob(users commissionUserSource, svc commissions.Service, logg *logger.Logger) (*MonthlyCommissionJob, error) {
	if users == nil {
		return nil, fmt.Errorf("user source required")
	}
	if svc == nil {
		return nil, fmt.Errorf("commissions service required")
	}
	return &MonthlyCommissionJob{
		users:       users,
		commissions: svc,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// Name implements Job.
func (j *MonthlyCommissionJob) Name() string { return "monthly-commission" }

// Run implements Job.
func (j *MonthlyCommissionJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	period := commissions.Period{Year: now.Year(), Month: int(now.Month())}.Previous()

	users, err := j.users.ListAllActiveUsers(ctx)
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	var failures error
	computed := 0
	for _, user := range users {
		if !user.Role.IsValid() {
			continue
		}
		if _, err := j.commissions.ComputeForPeriod(ctx, user.ID, period, uuid.Nil); err != nil {
			if j.logg != nil {
				userCtx := j.logg.WithUserID(ctx, user.ID.String())
				j.logg.Error(userCtx, fmt.Sprintf("commission batch failed for %s", period), err)
			}
			failures = multierr.Append(failures, fmt.Errorf("user %s: %w", user.ID, err))
			continue
		}
		computed++
	}

	if j.logg != nil {
		summary := j.logg.WithFields(ctx, map[string]any{
			"period":   period.String(),
			"users":    len(users),
			"computed": computed,
		})
		j.logg.Info(summary, "monthly commission batch finished")
	}
	return failures
}
