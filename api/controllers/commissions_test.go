package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarroquin/freightops-backend/internal/commissions"
	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
)

type testCommissionsService struct {
	monthlyFn func(ctx context.Context, userID uuid.UUID, month string, actorID uuid.UUID) (*commissions.MonthlyResponse, error)
}

func (s *testCommissionsService) MonthlyForUser(ctx context.Context, userID uuid.UUID, month string, actorID uuid.UUID) (*commissions.MonthlyResponse, error) {
	if s.monthlyFn != nil {
		return s.monthlyFn(ctx, userID, month, actorID)
	}
	return nil, nil
}

func (s *testCommissionsService) ComputeForPeriod(context.Context, uuid.UUID, commissions.Period, uuid.UUID) (*models.CommissionRun, error) {
	return nil, nil
}

func monthlyRequest(userID uuid.UUID, month string) *http.Request {
	path := "/api/v1/commissions/monthly/user/" + userID.String()
	if month != "" {
		path += "/" + month
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("userId", userID.String())
	if month != "" {
		routeCtx.URLParams.Add("month", month)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestMonthlyCommissionSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &testCommissionsService{
		monthlyFn: func(_ context.Context, gotUser uuid.UUID, month string, _ uuid.UUID) (*commissions.MonthlyResponse, error) {
			if gotUser != userID {
				t.Fatalf("unexpected user %s", gotUser)
			}
			if month != "2026-07" {
				t.Fatalf("unexpected month %q", month)
			}
			return &commissions.MonthlyResponse{
				Period: "2026-07",
				Totals: commissions.Totals{Total: decimal.NewFromInt(500)},
			}, nil
		},
	}

	resp := httptest.NewRecorder()
	MonthlyCommission(svc, testLogger())(resp, monthlyRequest(userID, "2026-07"))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var envelope struct {
		Data commissions.MonthlyResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !envelope.Data.Totals.Total.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("total = %s", envelope.Data.Totals.Total)
	}
}

func TestMonthlyCommissionDefaultsMonth(t *testing.T) {
	userID := uuid.New()
	var gotMonth = "unset"
	svc := &testCommissionsService{
		monthlyFn: func(_ context.Context, _ uuid.UUID, month string, _ uuid.UUID) (*commissions.MonthlyResponse, error) {
			gotMonth = month
			return &commissions.MonthlyResponse{}, nil
		},
	}

	resp := httptest.NewRecorder()
	MonthlyCommission(svc, testLogger())(resp, monthlyRequest(userID, ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if gotMonth != "" {
		t.Fatalf("month = %q, want empty for current month", gotMonth)
	}
}

// A degraded snapshot is still a 200: zero totals plus the degraded flag and
// error message.
func TestMonthlyCommissionDegradedStillOK(t *testing.T) {
	svc := &testCommissionsService{
		monthlyFn: func(context.Context, uuid.UUID, string, uuid.UUID) (*commissions.MonthlyResponse, error) {
			return &commissions.MonthlyResponse{
				Period:   "2026-07",
				Degraded: true,
				Error:    "no active sales commission policy for organization",
			}, nil
		},
	}

	resp := httptest.NewRecorder()
	MonthlyCommission(svc, testLogger())(resp, monthlyRequest(uuid.New(), "2026-07"))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for degraded read", resp.Code)
	}
	var envelope struct {
		Data commissions.MonthlyResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !envelope.Data.Degraded {
		t.Fatal("degraded flag missing")
	}
	if envelope.Data.Error == "" {
		t.Fatal("error message missing")
	}
	if !envelope.Data.Totals.Total.IsZero() {
		t.Fatalf("degraded totals must be zero, got %s", envelope.Data.Totals.Total)
	}
}

func TestMonthlyCommissionUnknownUser(t *testing.T) {
	svc := &testCommissionsService{
		monthlyFn: func(context.Context, uuid.UUID, string, uuid.UUID) (*commissions.MonthlyResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		},
	}

	resp := httptest.NewRecorder()
	MonthlyCommission(svc, testLogger())(resp, monthlyRequest(uuid.New(), "2026-07"))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestMonthlyCommissionBadUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/commissions/monthly/user/not-a-uuid", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("userId", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	MonthlyCommission(&testCommissionsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}
