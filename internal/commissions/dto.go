package commissions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	"github.com/dmarroquin/freightops-backend/pkg/types"
)

// UserSummary identifies whose commission the response describes.
type UserSummary struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Role       enums.UserRole `json:"role"`
	IsTeamLead bool           `json:"is_team_lead"`
}

// Totals is the monetary breakdown of one commission run.
type Totals struct {
	Base            decimal.Decimal `json:"base"`
	Adjusted        decimal.Decimal `json:"adjusted"`
	RepOfMonthBonus decimal.Decimal `json:"rep_of_month_bonus"`
	TrucksBonus     decimal.Decimal `json:"trucks_bonus"`
	TeamLeadBonus   decimal.Decimal `json:"team_lead_bonus"`
	Total           decimal.Decimal `json:"total"`
}

// DealSummary is one invoice contributing to the month, re-read from current
// data for display. Stored run totals stay authoritative.
type DealSummary struct {
	InvoiceID uuid.UUID           `json:"invoice_id"`
	LeadID    uuid.UUID           `json:"lead_id"`
	Amount    decimal.Decimal     `json:"amount"`
	Status    enums.InvoiceStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

// Stats aggregates the deal list.
type Stats struct {
	TotalDeals     int             `json:"total_deals"`
	TotalInvoiced  decimal.Decimal `json:"total_invoiced"`
	AveragePerDeal decimal.Decimal `json:"average_per_deal"`
}

// MonthlyResponse is the GET monthly-commission payload. When the underlying
// computation fails, the response carries zeroed totals with Degraded set and
// the error message, so a failed month is distinguishable from a real zero
// month.
type MonthlyResponse struct {
	User           UserSummary               `json:"user"`
	Period         string                    `json:"period"`
	PolicyID       *uuid.UUID                `json:"policy_id,omitempty"`
	ActiveLeads    int                       `json:"active_leads"`
	Totals         Totals                    `json:"totals"`
	PenaltyApplied bool                      `json:"penalty_applied"`
	Details        *types.CalculationDetails `json:"details,omitempty"`
	Deals          []DealSummary             `json:"deals"`
	Stats          Stats                     `json:"stats"`
	CalculatedAt   *time.Time                `json:"calculated_at,omitempty"`
	Degraded       bool                      `json:"degraded"`
	Error          string                    `json:"error,omitempty"`
}

func newUserSummary(user *models.User) UserSummary {
	return UserSummary{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		IsTeamLead: user.IsTeamLead,
	}
}

func newStats(deals []DealSummary) Stats {
	total := decimal.Zero
	for _, deal := range deals {
		total = total.Add(deal.Amount)
	}
	avg := decimal.Zero
	if len(deals) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(deals)))).Round(2)
	}
	return Stats{
		TotalDeals:     len(deals),
		TotalInvoiced:  total,
		AveragePerDeal: avg,
	}
}
