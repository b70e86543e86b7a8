package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarroquin/freightops-backend/pkg/enums"
	"github.com/dmarroquin/freightops-backend/pkg/types"
)

// CommissionPolicy is one versioned commission configuration for an org.
// At most one policy per (org, type) is active at any time.
type CommissionPolicy struct {
	ID              uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrgID           uuid.UUID                 `gorm:"column:org_id;type:uuid;not null;index"`
	Type            enums.PolicyType          `gorm:"column:type;type:policy_type;not null"`
	IsActive        bool                      `gorm:"column:is_active;not null;default:false"`
	ActiveLeadTable types.CommissionTierTable `gorm:"column:active_lead_table;type:jsonb;serializer:json"`
	StarterSplit    decimal.Decimal           `gorm:"column:starter_split;type:numeric(5,4);not null"`
	CloserSplit     decimal.Decimal           `gorm:"column:closer_split;type:numeric(5,4);not null"`
	InboundFactor   decimal.Decimal           `gorm:"column:inbound_factor;type:numeric(5,4);not null"`
	PenaltyFactor   decimal.Decimal           `gorm:"column:penalty_factor;type:numeric(5,4);not null"`
	TeamLeadBonus   decimal.Decimal           `gorm:"column:team_lead_bonus;type:numeric(12,2);not null;default:0"`
	DispatchRate    decimal.Decimal           `gorm:"column:dispatch_rate;type:numeric(5,4);not null;default:0.01"`
	PerTruckBonus   decimal.Decimal           `gorm:"column:per_truck_bonus;type:numeric(12,2);not null;default:10.00"`
	ValidFrom       time.Time                 `gorm:"column:valid_from;not null"`
	ValidTo         *time.Time                `gorm:"column:valid_to"`
	CreatedAt       time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
