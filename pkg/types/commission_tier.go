package types

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CommissionTier pairs an active-lead threshold with the commission amount it
// unlocks.
type CommissionTier struct {
	ActiveLeads int             `json:"active_leads"`
	Amount      decimal.Decimal `json:"amount"`
}

// CommissionTierTable is the ordered tier set stored on a sales policy.
type CommissionTierTable []CommissionTier

// AmountFor returns the amount of the highest tier whose threshold does not
// exceed activeLeads, or zero when the count is below every threshold.
func (t CommissionTierTable) AmountFor(activeLeads int) decimal.Decimal {
	sorted := make(CommissionTierTable, len(t))
	copy(sorted, t)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ActiveLeads > sorted[j].ActiveLeads
	})
	for _, tier := range sorted {
		if tier.ActiveLeads <= activeLeads {
			return tier.Amount
		}
	}
	return decimal.Zero
}
