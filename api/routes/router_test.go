package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/dmarroquin/freightops-backend/internal/commissions"
	"github.com/dmarroquin/freightops-backend/internal/leads"
	"github.com/dmarroquin/freightops-backend/internal/policies"
	"github.com/dmarroquin/freightops-backend/pkg/config"
	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
)

type stubLeadsService struct{}

func (stubLeadsService) Get(context.Context, uuid.UUID) (*models.Lead, error) {
	return nil, nil
}

func (stubLeadsService) Transition(context.Context, leads.TransitionInput) (*models.Lead, error) {
	return &models.Lead{Status: enums.LeadStatusInProgress}, nil
}

type stubPoliciesService struct{}

func (stubPoliciesService) GetActive(context.Context, uuid.UUID, enums.PolicyType) (*models.CommissionPolicy, error) {
	return nil, nil
}

func (stubPoliciesService) Create(context.Context, policies.CreateInput) (*models.CommissionPolicy, error) {
	return &models.CommissionPolicy{}, nil
}

func (stubPoliciesService) Activate(context.Context, uuid.UUID) (*models.CommissionPolicy, error) {
	return &models.CommissionPolicy{IsActive: true}, nil
}

func (stubPoliciesService) Archive(context.Context, uuid.UUID) (*models.CommissionPolicy, error) {
	return &models.CommissionPolicy{}, nil
}

type stubCommissionsService struct{}

func (stubCommissionsService) MonthlyForUser(context.Context, uuid.UUID, string, uuid.UUID) (*commissions.MonthlyResponse, error) {
	return &commissions.MonthlyResponse{Period: "2026-07"}, nil
}

func (stubCommissionsService) ComputeForPeriod(context.Context, uuid.UUID, commissions.Period, uuid.UUID) (*models.CommissionRun, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	return NewRouter(RouterParams{
		Config:      &config.Config{},
		Logger:      logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Leads:       stubLeadsService{},
		Policies:    stubPoliciesService{},
		Commissions: stubCommissionsService{},
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
}

func TestRouterRoutesRegistered(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		header map[string]string
		body   string
		want   int
	}{
		{method: http.MethodGet, path: "/api/v1/commissions/monthly/user/" + uuid.NewString(), want: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/commissions/monthly/user/" + uuid.NewString() + "/2026-07", want: http.StatusOK},
		// A registered route without the actor header fails auth, not routing.
		{method: http.MethodPatch, path: "/api/v1/leads/" + uuid.NewString() + "/status", body: `{"status":"in_progress"}`, want: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/v1/unknown", want: http.StatusNotFound},
		{method: http.MethodGet, path: "/metrics", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		var body io.Reader
		if tt.body != "" {
			body = strings.NewReader(tt.body)
		}
		req := httptest.NewRequest(tt.method, tt.path, body)
		for k, v := range tt.header {
			req.Header.Set(k, v)
		}

		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tt.want {
			t.Fatalf("%s %s status = %d, want %d", tt.method, tt.path, resp.Code, tt.want)
		}
	}
}
