package commissions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarroquin/freightops-backend/internal/policies"
	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
	"github.com/dmarroquin/freightops-backend/pkg/metrics"
)

// Service serves monthly commission snapshots.
type Service interface {
	MonthlyForUser(ctx context.Context, userID uuid.UUID, month string, actorID uuid.UUID) (*MonthlyResponse, error)
	ComputeForPeriod(ctx context.Context, userID uuid.UUID, period Period, actorID uuid.UUID) (*models.CommissionRun, error)
}

type service struct {
	repo     Repository
	store    *RunStore
	sales    calculator
	dispatch calculator
	metrics  *metrics.CommissionMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the commission service. The inbound detector may be nil,
// in which case no lead is treated as inbound.
func NewService(repo Repository, policySvc policies.Service, store *RunStore, inbound InboundDetector, m *metrics.CommissionMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("commissions repository required")
	}
	if policySvc == nil {
		return nil, fmt.Errorf("policies service required")
	}
	if store == nil {
		return nil, fmt.Errorf("run store required")
	}
	if inbound == nil {
		inbound = NoInboundDetector{}
	}
	return &service{
		repo:     repo,
		store:    store,
		sales:    &salesCalculator{repo: repo, policies: policySvc, inbound: inbound},
		dispatch: &dispatchCalculator{repo: repo, policies: policySvc},
		metrics:  m,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// MonthlyForUser fetches or computes the snapshot for the month ("YYYY-MM",
// empty for the current month). Computation failures degrade to a zeroed
// response instead of failing the read.
func (s *service) MonthlyForUser(ctx context.Context, userID uuid.UUID, month string, actorID uuid.UUID) (*MonthlyResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	period, err := ParsePeriod(month, s.now())
	if err != nil {
		return nil, err
	}

	run, err := s.ComputeForPeriod(ctx, userID, period, actorID)
	if err != nil {
		switch pkgerrors.CodeOf(err) {
		case pkgerrors.CodeValidation, pkgerrors.CodeNotFound:
			return nil, err
		}
		if s.logg != nil {
			s.logg.Error(ctx, fmt.Sprintf("commission computation degraded for %s %s", userID, period), err)
		}
		return degradedResponse(user, period, err), nil
	}

	return s.buildResponse(ctx, user, period, run)
}

// ComputeForPeriod returns the existing snapshot for the period or computes
// and persists a new one.
func (s *service) ComputeForPeriod(ctx context.Context, userID uuid.UUID, period Period, actorID uuid.UUID) (*models.CommissionRun, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	calc, err := s.calculatorFor(user)
	if err != nil {
		return nil, err
	}

	if actorID == uuid.Nil {
		actorID = user.ID
	}

	return s.store.GetOrCompute(ctx, user.ID, period, func(ctx context.Context) (*models.CommissionRun, error) {
		started := s.now()
		draft, err := calc.Compute(ctx, user, period)
		if err != nil {
			return nil, err
		}
		s.metrics.ObserveCompute(draft.Details.PolicyType, s.now().Sub(started))
		s.metrics.IncComputed(draft.Details.PolicyType)

		return &models.CommissionRun{
			OrgID:              user.OrgID,
			UserID:             user.ID,
			Year:               period.Year,
			Month:              period.Month,
			PolicyID:           draft.Policy.ID,
			ActiveLeadCount:    draft.ActiveLeadCount,
			BaseCommission:     draft.BaseCommission,
			AdjustedCommission: draft.AdjustedCommission,
			RepOfMonthBonus:    draft.RepOfMonthBonus,
			ActiveTrucksBonus:  draft.ActiveTrucksBonus,
			TeamLeadBonus:      draft.TeamLeadBonus,
			TotalCommission:    draft.TotalCommission,
			PenaltyApplied:     draft.PenaltyApplied,
			Details:            draft.Details,
			CalculatedBy:       actorID,
			CalculatedAt:       s.now().UTC(),
		}, nil
	})
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func (s *service) calculatorFor(user *models.User) (calculator, error) {
	switch user.Role {
	case enums.UserRoleSales:
		return s.sales, nil
	case enums.UserRoleDispatch:
		return s.dispatch, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("no commission calculator for role %q", user.Role))
	}
}

// buildResponse rebuilds the display view around the stored run: identity
// and deals come from current data, the stored totals stay untouched.
func (s *service) buildResponse(ctx context.Context, user *models.User, period Period, run *models.CommissionRun) (*MonthlyResponse, error) {
	deals, err := s.dealsFor(ctx, user, period, run)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "load commission deals", err)
		}
		deals = nil
	}

	policyID := run.PolicyID
	calculatedAt := run.CalculatedAt
	details := run.Details
	return &MonthlyResponse{
		User:        newUserSummary(user),
		Period:      period.String(),
		PolicyID:    &policyID,
		ActiveLeads: run.ActiveLeadCount,
		Totals: Totals{
			Base:            run.BaseCommission,
			Adjusted:        run.AdjustedCommission,
			RepOfMonthBonus: run.RepOfMonthBonus,
			TrucksBonus:     run.ActiveTrucksBonus,
			TeamLeadBonus:   run.TeamLeadBonus,
			Total:           run.TotalCommission,
		},
		PenaltyApplied: run.PenaltyApplied,
		Details:        &details,
		Deals:          deals,
		Stats:          newStats(deals),
		CalculatedAt:   &calculatedAt,
	}, nil
}

func (s *service) dealsFor(ctx context.Context, user *models.User, period Period, run *models.CommissionRun) ([]DealSummary, error) {
	start, end := period.Window()

	var invoices []models.Invoice
	var err error
	switch user.Role {
	case enums.UserRoleDispatch:
		invoices, err = s.repo.ListInvoicesForDispatcher(ctx, user.ID, start, end)
	case enums.UserRoleSales:
		leadIDs := make([]uuid.UUID, 0, len(run.Details.LeadAdjustments))
		for _, adj := range run.Details.LeadAdjustments {
			id, parseErr := uuid.Parse(adj.LeadID)
			if parseErr != nil {
				continue
			}
			leadIDs = append(leadIDs, id)
		}
		invoices, err = s.repo.ListInvoicesForLeads(ctx, leadIDs, start, end)
	}
	if err != nil {
		return nil, err
	}

	deals := make([]DealSummary, 0, len(invoices))
	for _, invoice := range invoices {
		deals = append(deals, DealSummary{
			InvoiceID: invoice.ID,
			LeadID:    invoice.LeadID,
			Amount:    invoice.TotalAmount,
			Status:    invoice.Status,
			CreatedAt: invoice.CreatedAt,
		})
	}
	return deals, nil
}

func degradedResponse(user *models.User, period Period, cause error) *MonthlyResponse {
	message := "commission computation failed"
	if typed := pkgerrors.As(cause); typed != nil {
		message = typed.Message()
	}
	return &MonthlyResponse{
		User:     newUserSummary(user),
		Period:   period.String(),
		Deals:    []DealSummary{},
		Stats:    newStats(nil),
		Degraded: true,
		Error:    message,
	}
}
