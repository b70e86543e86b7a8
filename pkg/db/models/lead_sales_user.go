package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// LeadSalesUser attributes a sales role on a lead. A lead carries at most one
// starter and one closer; a rep without a row gets direct attribution.
type LeadSalesUser struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LeadID    uuid.UUID       `gorm:"column:lead_id;type:uuid;not null;uniqueIndex:ux_lead_sales_users_lead_role"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	Role      enums.SalesRole `gorm:"column:role;type:sales_role;not null;uniqueIndex:ux_lead_sales_users_lead_role"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
