package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// Truck is a carrier truck managed by a dispatcher; active trucks feed the
// dispatch commission bonus.
type Truck struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrgID        uuid.UUID         `gorm:"column:org_id;type:uuid;not null;index"`
	DispatcherID uuid.UUID         `gorm:"column:dispatcher_id;type:uuid;not null;index"`
	UnitNumber   string            `gorm:"column:unit_number;not null"`
	Status       enums.TruckStatus `gorm:"column:status;type:truck_status;not null;default:'idle'"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
