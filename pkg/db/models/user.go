package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// User is the back-office account the commission engine reads. Account
// management itself lives in the identity service.
type User struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrgID      uuid.UUID      `gorm:"column:org_id;type:uuid;not null;index"`
	Name       string         `gorm:"column:name;not null"`
	Email      string         `gorm:"column:email;not null;uniqueIndex"`
	Role       enums.UserRole `gorm:"column:role;type:user_role;not null"`
	IsTeamLead bool           `gorm:"column:is_team_lead;not null;default:false"`
	Active     bool           `gorm:"column:active;not null;default:true"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
