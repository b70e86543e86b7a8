package leads

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// UpdateStatusRequest is the PATCH /leads/{leadId}/status body.
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

// TransitionInput carries a requested lifecycle transition into the service.
type TransitionInput struct {
	LeadID  uuid.UUID
	Target  enums.LeadStatus
	ActorID uuid.UUID
	Notes   *string
}

// LeadResponse is the API view of a lead.
type LeadResponse struct {
	ID               uuid.UUID        `json:"id"`
	OrgID            uuid.UUID        `json:"org_id"`
	AssignedTo       uuid.UUID        `json:"assigned_to"`
	CompanyName      string           `json:"company_name"`
	Status           enums.LeadStatus `json:"status"`
	CallAttempts     int              `json:"call_attempts"`
	MCNumber         string           `json:"mc_number"`
	InboundSource    *string          `json:"inbound_source,omitempty"`
	EquipmentTypes   []string         `json:"equipment_types"`
	InProgressAt     *time.Time       `json:"in_progress_at,omitempty"`
	HandToDispatchAt *time.Time       `json:"hand_to_dispatch_at,omitempty"`
	ActivatedAt      *time.Time       `json:"activated_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// NewLeadResponse maps a lead model to its API view.
func NewLeadResponse(lead *models.Lead) LeadResponse {
	return LeadResponse{
		ID:               lead.ID,
		OrgID:            lead.OrgID,
		AssignedTo:       lead.AssignedTo,
		CompanyName:      lead.CompanyName,
		Status:           lead.Status,
		CallAttempts:     lead.CallAttempts,
		MCNumber:         lead.MCNumber,
		InboundSource:    lead.InboundSource,
		EquipmentTypes:   lead.EquipmentTypes,
		InProgressAt:     lead.InProgressAt,
		HandToDispatchAt: lead.HandToDispatchAt,
		ActivatedAt:      lead.ActivatedAt,
		CreatedAt:        lead.CreatedAt,
		UpdatedAt:        lead.UpdatedAt,
	}
}

type statusChangedPayload struct {
	LeadID     uuid.UUID        `json:"lead_id"`
	ActorID    uuid.UUID        `json:"actor_id"`
	PrevStatus enums.LeadStatus `json:"prev_status"`
	NextStatus enums.LeadStatus `json:"next_status"`
}
