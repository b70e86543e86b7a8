package middleware

import (
	"context"
	"net/http"

	"github.com/dmarroquin/freightops-backend/pkg/logger"
)

type contextKey string

const (
	ctxActorID contextKey = "actor_id"
	ctxOrgID   contextKey = "org_id"
)

// Headers set by the upstream auth proxy. Authentication itself lives in
// front of this service.
const (
	actorIDHeader = "X-Actor-Id"
	orgIDHeader   = "X-Org-Id"
)

// ActorContext lifts the authenticated actor and org identifiers from proxy
// headers into the request context.
func ActorContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if actorID := r.Header.Get(actorIDHeader); actorID != "" {
				ctx = context.WithValue(ctx, ctxActorID, actorID)
				if logg != nil {
					ctx = logg.WithUserID(ctx, actorID)
				}
			}
			if orgID := r.Header.Get(orgIDHeader); orgID != "" {
				ctx = context.WithValue(ctx, ctxOrgID, orgID)
				if logg != nil {
					ctx = logg.WithOrgID(ctx, orgID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithActorID injects the actor identifier into the context.
func WithActorID(ctx context.Context, actorID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActorID, actorID)
}

// WithOrgID injects the organization identifier into the context.
func WithOrgID(ctx context.Context, orgID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxOrgID, orgID)
}

func ActorIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorID).(string); ok {
		return v
	}
	return ""
}

func OrgIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxOrgID).(string); ok {
		return v
	}
	return ""
}
