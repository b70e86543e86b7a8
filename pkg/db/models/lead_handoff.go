package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// LeadHandoff records a lead crossing from sales to dispatch.
type LeadHandoff struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LeadID      uuid.UUID           `gorm:"column:lead_id;type:uuid;not null;index"`
	SalesRepID  uuid.UUID           `gorm:"column:sales_rep_id;type:uuid;not null"`
	HandoffDate time.Time           `gorm:"column:handoff_date;not null"`
	Status      enums.HandoffStatus `gorm:"column:status;type:handoff_status;not null;default:'pending'"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
