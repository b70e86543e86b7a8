package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/api/middleware"
	"github.com/dmarroquin/freightops-backend/api/responses"
	"github.com/dmarroquin/freightops-backend/api/validators"
	"github.com/dmarroquin/freightops-backend/internal/leads"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
)

// UpdateLeadStatus handles PATCH /api/v1/leads/{leadId}/status.
func UpdateLeadStatus(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		leadID, err := validators.ParseUUIDParam(r, "leadId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		actorID, err := uuid.Parse(middleware.ActorIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity required"))
			return
		}

		var req leads.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		target, err := enums.ParseLeadStatus(req.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target status"))
			return
		}

		if logg != nil {
			ctx = logg.WithLeadID(ctx, leadID.String())
		}
		lead, err := svc.Transition(ctx, leads.TransitionInput{
			LeadID:  leadID,
			Target:  target,
			ActorID: actorID,
			Notes:   req.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, leads.NewLeadResponse(lead))
	}
}
