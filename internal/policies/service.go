package policies

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
	"github.com/dmarroquin/freightops-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines commission policy operations.
type Service interface {
	GetActive(ctx context.Context, orgID uuid.UUID, policyType enums.PolicyType) (*models.CommissionPolicy, error)
	Create(ctx context.Context, input CreateInput) (*models.CommissionPolicy, error)
	Activate(ctx context.Context, policyID uuid.UUID) (*models.CommissionPolicy, error)
	Archive(ctx context.Context, policyID uuid.UUID) (*models.CommissionPolicy, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// CreateInput carries a new policy version.
type CreateInput struct {
	OrgID           uuid.UUID
	Type            enums.PolicyType
	ActiveLeadTable types.CommissionTierTable
	StarterSplit    decimal.Decimal
	CloserSplit     decimal.Decimal
	InboundFactor   decimal.Decimal
	PenaltyFactor   decimal.Decimal
	TeamLeadBonus   decimal.Decimal
	DispatchRate    decimal.Decimal
	PerTruckBonus   decimal.Decimal
	ValidFrom       time.Time
}

// NewService wires a policy service with its repository and transaction
// runner.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("policies repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) GetActive(ctx context.Context, orgID uuid.UUID, policyType enums.PolicyType) (*models.CommissionPolicy, error) {
	if orgID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "org id required")
	}
	if !policyType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid policy type %q", policyType))
	}
	policy, err := s.repo.FindActive(ctx, orgID, policyType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNoActivePolicy,
				fmt.Sprintf("no active %s commission policy for organization", policyType)).
				WithDetails(map[string]any{"org_id": orgID.String(), "type": policyType.String()})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active policy")
	}
	return policy, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.CommissionPolicy, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	validFrom := input.ValidFrom
	if validFrom.IsZero() {
		validFrom = time.Now().UTC()
	}

	policy := &models.CommissionPolicy{
		OrgID:           input.OrgID,
		Type:            input.Type,
		IsActive:        false,
		ActiveLeadTable: input.ActiveLeadTable,
		StarterSplit:    input.StarterSplit,
		CloserSplit:     input.CloserSplit,
		InboundFactor:   input.InboundFactor,
		PenaltyFactor:   input.PenaltyFactor,
		TeamLeadBonus:   input.TeamLeadBonus,
		DispatchRate:    input.DispatchRate,
		PerTruckBonus:   input.PerTruckBonus,
		ValidFrom:       validFrom,
	}

	if err := s.repo.Create(ctx, policy); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create policy")
	}
	return policy, nil
}

// Activate deactivates every sibling of the same (org, type) and activates
// the target in one transaction, so readers never observe two active
// policies.
func (s *service) Activate(ctx context.Context, policyID uuid.UUID) (*models.CommissionPolicy, error) {
	if policyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "policy id required")
	}

	var activated *models.CommissionPolicy
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		policy, err := repo.FindByID(ctx, policyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "policy not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load policy")
		}
		if err := repo.DeactivateSiblings(ctx, policy.OrgID, policy.Type, policy.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate sibling policies")
		}
		if err := repo.SetActive(ctx, policy.ID, true); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate policy")
		}
		policy.IsActive = true
		activated = policy
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activated, nil
}

// Archive retires a policy. Archiving the active policy without a replacement
// is allowed; active-policy lookups fail until a new version is activated.
func (s *service) Archive(ctx context.Context, policyID uuid.UUID) (*models.CommissionPolicy, error) {
	if policyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "policy id required")
	}

	policy, err := s.repo.FindByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "policy not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load policy")
	}

	now := time.Now().UTC()
	if err := s.repo.Archive(ctx, policy.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive policy")
	}
	policy.IsActive = false
	policy.ValidTo = &now
	return policy, nil
}

func validateCreate(input CreateInput) error {
	if input.OrgID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "org id required")
	}
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid policy type %q", input.Type))
	}
	one := decimal.NewFromInt(1)
	for name, factor := range map[string]decimal.Decimal{
		"starter_split":  input.StarterSplit,
		"closer_split":   input.CloserSplit,
		"inbound_factor": input.InboundFactor,
	} {
		if !factor.IsPositive() || factor.GreaterThan(one) {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("%s must be within (0,1], got %s", name, factor))
		}
	}
	if input.PenaltyFactor.IsNegative() || input.PenaltyFactor.GreaterThan(one) {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("penalty_factor must be within [0,1], got %s", input.PenaltyFactor))
	}
	if input.TeamLeadBonus.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "team_lead_bonus must not be negative")
	}
	if input.DispatchRate.IsNegative() || input.DispatchRate.GreaterThan(one) {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("dispatch_rate must be within [0,1], got %s", input.DispatchRate))
	}
	if input.PerTruckBonus.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "per_truck_bonus must not be negative")
	}
	if input.Type == enums.PolicyTypeSales && len(input.ActiveLeadTable) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "active_lead_table requires at least one tier")
	}
	for _, tier := range input.ActiveLeadTable {
		if tier.ActiveLeads < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier thresholds must not be negative")
		}
		if tier.Amount.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier amounts must not be negative")
		}
	}
	return nil
}
