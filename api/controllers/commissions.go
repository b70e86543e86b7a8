package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/api/middleware"
	"github.com/dmarroquin/freightops-backend/api/responses"
	"github.com/dmarroquin/freightops-backend/api/validators"
	"github.com/dmarroquin/freightops-backend/internal/commissions"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
)

// MonthlyCommission handles GET /api/v1/commissions/monthly/user/{userId}
// and .../{userId}/{month}. The month defaults to the current one.
func MonthlyCommission(svc commissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := validators.ParseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		month := chi.URLParam(r, "month")

		actorID, _ := uuid.Parse(middleware.ActorIDFromContext(ctx))

		resp, err := svc.MonthlyForUser(ctx, userID, month, actorID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
