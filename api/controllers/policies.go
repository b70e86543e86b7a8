package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarroquin/freightops-backend/api/middleware"
	"github.com/dmarroquin/freightops-backend/api/responses"
	"github.com/dmarroquin/freightops-backend/api/validators"
	"github.com/dmarroquin/freightops-backend/internal/policies"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
	"github.com/dmarroquin/freightops-backend/pkg/types"
)

// CreatePolicyRequest is the POST /commissions/policy body. A new version is
// created inactive and switched on through the activate endpoint.
type CreatePolicyRequest struct {
	Type            string                    `json:"type" validate:"required,oneof=sales dispatch"`
	ActiveLeadTable types.CommissionTierTable `json:"active_lead_table"`
	StarterSplit    decimal.Decimal           `json:"starter_split" validate:"required"`
	CloserSplit     decimal.Decimal           `json:"closer_split" validate:"required"`
	InboundFactor   decimal.Decimal           `json:"inbound_factor" validate:"required"`
	PenaltyFactor   decimal.Decimal           `json:"penalty_factor"`
	TeamLeadBonus   decimal.Decimal           `json:"team_lead_bonus"`
	DispatchRate    decimal.Decimal           `json:"dispatch_rate"`
	PerTruckBonus   decimal.Decimal           `json:"per_truck_bonus"`
	ValidFrom       *time.Time                `json:"valid_from"`
}

// CreatePolicy handles POST /api/v1/commissions/policy.
func CreatePolicy(svc policies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orgID, err := uuid.Parse(middleware.OrgIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "organization context required"))
			return
		}

		var req CreatePolicyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		policyType, err := enums.ParsePolicyType(req.Type)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid policy type"))
			return
		}

		input := policies.CreateInput{
			OrgID:           orgID,
			Type:            policyType,
			ActiveLeadTable: req.ActiveLeadTable,
			StarterSplit:    req.StarterSplit,
			CloserSplit:     req.CloserSplit,
			InboundFactor:   req.InboundFactor,
			PenaltyFactor:   req.PenaltyFactor,
			TeamLeadBonus:   req.TeamLeadBonus,
			DispatchRate:    req.DispatchRate,
			PerTruckBonus:   req.PerTruckBonus,
		}
		if req.ValidFrom != nil {
			input.ValidFrom = *req.ValidFrom
		}

		policy, err := svc.Create(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, policy)
	}
}

// ActivatePolicy handles PATCH /api/v1/commissions/policy/{policyId}/activate.
func ActivatePolicy(svc policies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		policyID, err := validators.ParseUUIDParam(r, "policyId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		policy, err := svc.Activate(ctx, policyID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, policy)
	}
}

// ArchivePolicy handles PATCH /api/v1/commissions/policy/{policyId}/archive.
func ArchivePolicy(svc policies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		policyID, err := validators.ParseUUIDParam(r, "policyId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		policy, err := svc.Archive(ctx, policyID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, policy)
	}
}
