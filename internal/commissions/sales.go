package commissions

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarroquin/freightops-backend/internal/policies"
	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
	"github.com/dmarroquin/freightops-backend/pkg/types"
)

// salesCalculator computes sales rep commissions: tier base from the active
// lead count, per-lead split adjustments, penalty only when the rep carries
// zero active leads, then policy bonuses.
type salesCalculator struct {
	repo     Repository
	policies policies.Service
	inbound  InboundDetector
}

func (c *salesCalculator) Compute(ctx context.Context, user *models.User, period Period) (*runDraft, error) {
	policy, err := c.policies.GetActive(ctx, user.OrgID, enums.PolicyTypeSales)
	if err != nil {
		return nil, err
	}

	leads, err := c.repo.ListActiveLeadsForUser(ctx, user.OrgID, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active leads")
	}

	return c.compute(ctx, user, policy, leads)
}

func (c *salesCalculator) compute(ctx context.Context, user *models.User, policy *models.CommissionPolicy, leads []models.Lead) (*runDraft, error) {
	activeLeads := len(leads)
	base := policy.ActiveLeadTable.AmountFor(activeLeads)
	threshold := tierThresholdFor(policy.ActiveLeadTable, activeLeads)

	leadIDs := make([]uuid.UUID, 0, len(leads))
	for _, lead := range leads {
		leadIDs = append(leadIDs, lead.ID)
	}
	roles, err := c.repo.SalesRolesForUser(ctx, user.ID, leadIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales roles")
	}

	adjustments := make([]types.LeadAdjustment, 0, len(leads))
	for _, lead := range leads {
		factor := decimal.NewFromInt(1)
		role := "direct"
		reason := "direct attribution"
		switch roles[lead.ID] {
		case enums.SalesRoleStarter:
			factor = policy.StarterSplit
			role = string(enums.SalesRoleStarter)
			reason = "starter split"
		case enums.SalesRoleCloser:
			factor = policy.CloserSplit
			role = string(enums.SalesRoleCloser)
			reason = "closer split"
		}
		if c.inbound.IsInbound(lead) {
			factor = factor.Mul(policy.InboundFactor)
			reason = fmt.Sprintf("%s, inbound source", reason)
		}
		adjustments = append(adjustments, types.LeadAdjustment{
			LeadID:  lead.ID.String(),
			Company: lead.CompanyName,
			Role:    role,
			Factor:  factor,
			Percent: types.DisplayPercent(factor),
			Reason:  reason,
		})
	}

	// The tier base covers the whole book of active leads; per-lead split
	// factors are recorded in the breakdown for credit attribution but do
	// not scale the tier amount.
	adjusted := base

	penaltyApplied := false
	notes := []string{}
	if activeLeads == 0 {
		penaltyApplied = true
		adjusted = adjusted.Mul(policy.PenaltyFactor)
		notes = append(notes, "no active leads; penalty factor applied")
	}

	bonus := teamLeadBonus(user, policy)
	total := adjusted.Add(bonus)

	draft := &runDraft{
		Policy:             policy,
		ActiveLeadCount:    activeLeads,
		BaseCommission:     money(base),
		AdjustedCommission: money(adjusted),
		RepOfMonthBonus:    decimal.Zero,
		ActiveTrucksBonus:  decimal.Zero,
		TeamLeadBonus:      money(bonus),
		TotalCommission:    money(total),
		PenaltyApplied:     penaltyApplied,
		Details: types.CalculationDetails{
			PolicyType:      string(enums.PolicyTypeSales),
			ActiveLeads:     activeLeads,
			TierThreshold:   threshold,
			LeadAdjustments: adjustments,
			PenaltyFactor:   policy.PenaltyFactor,
			PenaltyApplied:  penaltyApplied,
			Notes:           notes,
		},
	}
	return draft, nil
}

// tierThresholdFor returns the threshold of the tier that applied, or nil
// when the count falls below every tier.
func tierThresholdFor(table types.CommissionTierTable, activeLeads int) *int {
	sorted := make(types.CommissionTierTable, len(table))
	copy(sorted, table)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ActiveLeads > sorted[j].ActiveLeads
	})
	for _, tier := range sorted {
		if tier.ActiveLeads <= activeLeads {
			threshold := tier.ActiveLeads
			return &threshold
		}
	}
	return nil
}
