package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// Invoice mirrors the billing system's invoices. The commission engine reads
// them as calculator input and never writes.
type Invoice struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrgID        uuid.UUID           `gorm:"column:org_id;type:uuid;not null;index"`
	LeadID       uuid.UUID           `gorm:"column:lead_id;type:uuid;not null;index"`
	DispatcherID uuid.UUID           `gorm:"column:dispatcher_id;type:uuid;not null;index"`
	TotalAmount  decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Status       enums.InvoiceStatus `gorm:"column:status;type:invoice_status;not null;default:'draft'"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
