package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LeadAdjustment records the split factor applied to one lead during a sales
// commission run.
type LeadAdjustment struct {
	LeadID  string          `json:"lead_id"`
	Company string          `json:"company,omitempty"`
	Role    string          `json:"role"`
	Factor  decimal.Decimal `json:"factor"`
	Percent string          `json:"percent"`
	Reason  string          `json:"reason"`
}

// CalculationDetails is the structured breakdown persisted with every
// commission run. The decimal factors are canonical; percent strings exist
// for display only.
type CalculationDetails struct {
	PolicyType      string           `json:"policy_type"`
	ActiveLeads     int              `json:"active_leads"`
	TierThreshold   *int             `json:"tier_threshold,omitempty"`
	TotalInvoiced   *decimal.Decimal `json:"total_invoiced,omitempty"`
	DispatchRate    *decimal.Decimal `json:"dispatch_rate,omitempty"`
	ActiveTrucks    int              `json:"active_trucks,omitempty"`
	LeadAdjustments []LeadAdjustment `json:"lead_adjustments,omitempty"`
	PenaltyFactor   decimal.Decimal  `json:"penalty_factor"`
	PenaltyApplied  bool             `json:"penalty_applied"`
	Notes           []string         `json:"notes,omitempty"`
}

// DisplayPercent renders a factor as "<factor*100>%" for human display.
func DisplayPercent(factor decimal.Decimal) string {
	return fmt.Sprintf("%s%%", factor.Mul(decimal.NewFromInt(100)).String())
}
