package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarroquin/freightops-backend/pkg/types"
)

// CommissionRun is one immutable monthly commission snapshot for one user.
// Rows are append only; the unique index on (user_id, year, month) guarantees
// at most one snapshot per period.
type CommissionRun struct {
	ID                 uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrgID              uuid.UUID                `gorm:"column:org_id;type:uuid;not null;index"`
	UserID             uuid.UUID                `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_commission_runs_user_period"`
	Year               int                      `gorm:"column:year;not null;uniqueIndex:ux_commission_runs_user_period"`
	Month              int                      `gorm:"column:month;not null;uniqueIndex:ux_commission_runs_user_period"`
	PolicyID           uuid.UUID                `gorm:"column:policy_id;type:uuid;not null"`
	ActiveLeadCount    int                      `gorm:"column:active_lead_count;not null;default:0"`
	BaseCommission     decimal.Decimal          `gorm:"column:base_commission;type:numeric(12,2);not null"`
	AdjustedCommission decimal.Decimal          `gorm:"column:adjusted_commission;type:numeric(12,2);not null"`
	RepOfMonthBonus    decimal.Decimal          `gorm:"column:rep_of_month_bonus;type:numeric(12,2);not null;default:0"`
	ActiveTrucksBonus  decimal.Decimal          `gorm:"column:active_trucks_bonus;type:numeric(12,2);not null;default:0"`
	TeamLeadBonus      decimal.Decimal          `gorm:"column:team_lead_bonus;type:numeric(12,2);not null;default:0"`
	TotalCommission    decimal.Decimal          `gorm:"column:total_commission;type:numeric(12,2);not null"`
	PenaltyApplied     bool                     `gorm:"column:penalty_applied;not null;default:false"`
	Details            types.CalculationDetails `gorm:"column:details;type:jsonb;serializer:json"`
	CalculatedBy       uuid.UUID                `gorm:"column:calculated_by;type:uuid;not null"`
	CalculatedAt       time.Time                `gorm:"column:calculated_at;not null"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
}
