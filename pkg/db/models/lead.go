package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// MCNumberPending is the sentinel stored while a carrier's motor-carrier
// number has not been obtained yet.
const MCNumberPending = "Pending"

// Lead represents a carrier lead moving through the sales pipeline.
type Lead struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrgID            uuid.UUID        `gorm:"column:org_id;type:uuid;not null"`
	AssignedTo       uuid.UUID        `gorm:"column:assigned_to;type:uuid;not null"`
	CompanyName      string           `gorm:"column:company_name;not null"`
	Status           enums.LeadStatus `gorm:"column:status;type:lead_status;not null;default:'new'"`
	CallAttempts     int              `gorm:"column:call_attempts;not null;default:0"`
	MCNumber         string           `gorm:"column:mc_number;not null;default:'Pending'"`
	InboundSource    *string          `gorm:"column:inbound_source"`
	EquipmentTypes   pq.StringArray   `gorm:"column:equipment_types;type:text[];default:ARRAY[]::text[]"`
	InProgressAt     *time.Time       `gorm:"column:in_progress_at"`
	HandToDispatchAt *time.Time       `gorm:"column:hand_to_dispatch_at"`
	ActivatedAt      *time.Time       `gorm:"column:activated_at"`
	SalesUsers       []LeadSalesUser  `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// HasMCNumber reports whether a real motor-carrier number is on file.
func (l Lead) HasMCNumber() bool {
	mc := strings.TrimSpace(l.MCNumber)
	return mc != "" && mc != MCNumberPending
}
