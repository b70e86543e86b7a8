package commissions

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dmarroquin/freightops-backend/internal/policies"
	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
	"github.com/dmarroquin/freightops-backend/pkg/types"
)

// dispatchCalculator computes dispatcher commissions: invoiced total for the
// calendar month times the policy rate, plus a per-active-truck bonus. No
// penalty applies to dispatch.
type dispatchCalculator struct {
	repo     Repository
	policies policies.Service
}

func (c *dispatchCalculator) Compute(ctx context.Context, user *models.User, period Period) (*runDraft, error) {
	policy, err := c.policies.GetActive(ctx, user.OrgID, enums.PolicyTypeDispatch)
	if err != nil {
		return nil, err
	}

	start, end := period.Window()
	invoices, err := c.repo.ListInvoicesForDispatcher(ctx, user.ID, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dispatcher invoices")
	}

	totalInvoiced := decimal.Zero
	for _, invoice := range invoices {
		totalInvoiced = totalInvoiced.Add(invoice.TotalAmount)
	}

	activeTrucks, err := c.repo.CountActiveTrucks(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active trucks")
	}

	base := totalInvoiced.Mul(policy.DispatchRate)
	trucksBonus := policy.PerTruckBonus.Mul(decimal.NewFromInt(int64(activeTrucks)))
	bonus := teamLeadBonus(user, policy)
	total := base.Add(trucksBonus).Add(bonus)

	rate := policy.DispatchRate
	draft := &runDraft{
		Policy:             policy,
		ActiveLeadCount:    0,
		BaseCommission:     money(base),
		AdjustedCommission: money(base),
		RepOfMonthBonus:    decimal.Zero,
		ActiveTrucksBonus:  money(trucksBonus),
		TeamLeadBonus:      money(bonus),
		TotalCommission:    money(total),
		PenaltyApplied:     false,
		Details: types.CalculationDetails{
			PolicyType:    string(enums.PolicyTypeDispatch),
			TotalInvoiced: &totalInvoiced,
			DispatchRate:  &rate,
			ActiveTrucks:  activeTrucks,
			PenaltyFactor: policy.PenaltyFactor,
			Notes: []string{
				fmt.Sprintf("%d invoices between %s and %s",
					len(invoices),
					start.Format("2006-01-02"),
					end.Format("2006-01-02")),
			},
		},
	}
	return draft, nil
}
