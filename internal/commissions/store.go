package commissions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarroquin/freightops-backend/pkg/db"
	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
	"github.com/dmarroquin/freightops-backend/pkg/metrics"
)

const runUniqueConstraint = "ux_commission_runs_user_period"

// RunStore serves commission snapshots, computing at most one per
// (user, year, month). The database unique index is the arbiter: when two
// writers race, the loser's insert fails and the winner's row is returned.
type RunStore struct {
	repo    Repository
	metrics *metrics.CommissionMetrics
}

// NewRunStore builds a run store. Metrics may be nil.
func NewRunStore(repo Repository, m *metrics.CommissionMetrics) *RunStore {
	return &RunStore{repo: repo, metrics: m}
}

// GetOrCompute returns the stored snapshot for the period if one exists,
// otherwise runs compute and persists the result. The stored snapshot is
// never recomputed or mutated.
func (s *RunStore) GetOrCompute(ctx context.Context, userID uuid.UUID, period Period, compute func(ctx context.Context) (*models.CommissionRun, error)) (*models.CommissionRun, error) {
	existing, err := s.repo.FindRun(ctx, userID, period)
	if err == nil {
		s.metrics.IncSnapshotHit()
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commission run")
	}

	run, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateRun(ctx, run); err != nil {
		if db.IsUniqueViolation(err, runUniqueConstraint) {
			// Another writer won the race; their snapshot is authoritative.
			winner, readErr := s.repo.FindRun(ctx, userID, period)
			if readErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, readErr, "reload commission run after conflict")
			}
			s.metrics.IncSnapshotHit()
			return winner, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist commission run")
	}
	return run, nil
}
