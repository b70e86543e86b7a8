package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// LeadActivity is one immutable entry on a lead's timeline. Rows are append
// only; nothing in the application updates or deletes them.
type LeadActivity struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LeadID     uuid.UUID              `gorm:"column:lead_id;type:uuid;not null;index"`
	ActorID    uuid.UUID              `gorm:"column:actor_id;type:uuid;not null"`
	Type       enums.LeadActivityType `gorm:"column:type;type:lead_activity_type;not null"`
	PrevStatus *enums.LeadStatus      `gorm:"column:prev_status;type:lead_status"`
	NextStatus *enums.LeadStatus      `gorm:"column:next_status;type:lead_status"`
	Notes      *string                `gorm:"column:notes"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime"`
}
