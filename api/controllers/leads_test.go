package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/api/middleware"
	"github.com/dmarroquin/freightops-backend/internal/leads"
	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
)

type testLeadsService struct {
	getFn        func(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	transitionFn func(ctx context.Context, input leads.TransitionInput) (*models.Lead, error)
}

func (s *testLeadsService) Get(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, nil
}

func (s *testLeadsService) Transition(ctx context.Context, input leads.TransitionInput) (*models.Lead, error) {
	if s.transitionFn != nil {
		return s.transitionFn(ctx, input)
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func leadStatusRequest(t *testing.T, leadID uuid.UUID, actorID uuid.UUID, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/leads/"+leadID.String()+"/status", strings.NewReader(body))
	if actorID != uuid.Nil {
		req = req.WithContext(middleware.WithActorID(req.Context(), actorID.String()))
	}
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("leadId", leadID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestUpdateLeadStatusSuccess(t *testing.T) {
	leadID := uuid.New()
	actorID := uuid.New()
	svc := &testLeadsService{
		transitionFn: func(_ context.Context, input leads.TransitionInput) (*models.Lead, error) {
			if input.LeadID != leadID || input.ActorID != actorID {
				t.Fatalf("unexpected input %+v", input)
			}
			if input.Target != enums.LeadStatusInProgress {
				t.Fatalf("unexpected target %s", input.Target)
			}
			return &models.Lead{ID: leadID, Status: input.Target, CompanyName: "Red Rock Carriers"}, nil
		},
	}

	req := leadStatusRequest(t, leadID, actorID, `{"status":"in_progress"}`)
	resp := httptest.NewRecorder()
	UpdateLeadStatus(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data leads.LeadResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope.Data.Status != enums.LeadStatusInProgress {
		t.Fatalf("response status = %s", envelope.Data.Status)
	}
}

// A failed handoff guard surfaces as 412 with the remediation detail intact.
func TestUpdateLeadStatusPreconditionPayload(t *testing.T) {
	leadID := uuid.New()
	svc := &testLeadsService{
		transitionFn: func(context.Context, leads.TransitionInput) (*models.Lead, error) {
			return nil, pkgerrors.New(pkgerrors.CodePrecondition,
				"lead needs more call attempts before dispatch handoff").
				WithDetails(map[string]any{
					"reason":                 "INSUFFICIENT_CALL_ATTEMPTS",
					"current_call_attempts":  1,
					"required_call_attempts": 3,
				})
		},
	}

	req := leadStatusRequest(t, leadID, uuid.New(), `{"status":"hand_to_dispatch"}`)
	resp := httptest.NewRecorder()
	UpdateLeadStatus(svc, testLogger())(resp, req)

	if resp.Code != http.StatusPreconditionFailed {
		t.Fatalf("status = %d, want 412", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope.Error.Code != "PRECONDITION_FAILED" {
		t.Fatalf("error code = %s", envelope.Error.Code)
	}
	if envelope.Error.Details["reason"] != "INSUFFICIENT_CALL_ATTEMPTS" {
		t.Fatalf("details = %v", envelope.Error.Details)
	}
	if envelope.Error.Details["required_call_attempts"] != float64(3) {
		t.Fatalf("missing remediation detail: %v", envelope.Error.Details)
	}
}

func TestUpdateLeadStatusUnknownLead(t *testing.T) {
	svc := &testLeadsService{
		transitionFn: func(context.Context, leads.TransitionInput) (*models.Lead, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		},
	}

	req := leadStatusRequest(t, uuid.New(), uuid.New(), `{"status":"in_progress"}`)
	resp := httptest.NewRecorder()
	UpdateLeadStatus(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestUpdateLeadStatusMissingActor(t *testing.T) {
	req := leadStatusRequest(t, uuid.New(), uuid.Nil, `{"status":"in_progress"}`)
	resp := httptest.NewRecorder()
	UpdateLeadStatus(&testLeadsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestUpdateLeadStatusBadBody(t *testing.T) {
	req := leadStatusRequest(t, uuid.New(), uuid.New(), `{"status":`)
	resp := httptest.NewRecorder()
	UpdateLeadStatus(&testLeadsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}
