package commissions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/types"
)

// runDraft carries a computed result before it is persisted as a run.
type runDraft struct {
	Policy             *models.CommissionPolicy
	ActiveLeadCount    int
	BaseCommission     decimal.Decimal
	AdjustedCommission decimal.Decimal
	RepOfMonthBonus    decimal.Decimal
	ActiveTrucksBonus  decimal.Decimal
	TeamLeadBonus      decimal.Decimal
	TotalCommission    decimal.Decimal
	PenaltyApplied     bool
	Details            types.CalculationDetails
}

// calculator computes one user's commission for a period.
type calculator interface {
	Compute(ctx context.Context, user *models.User, period Period) (*runDraft, error)
}

// teamLeadBonus returns the policy bonus for team leads, zero otherwise.
func teamLeadBonus(user *models.User, policy *models.CommissionPolicy) decimal.Decimal {
	if user.IsTeamLead {
		return policy.TeamLeadBonus
	}
	return decimal.Zero
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
