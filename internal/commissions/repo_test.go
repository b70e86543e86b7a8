package commissions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dmarroquin/freightops-backend/pkg/db"
	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	"github.com/dmarroquin/freightops-backend/pkg/types"
)

func setupCommissionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  org_id TEXT NOT NULL,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  role TEXT NOT NULL,
  is_team_lead INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	leads := `
CREATE TABLE IF NOT EXISTS leads (
  id TEXT PRIMARY KEY,
  org_id TEXT NOT NULL,
  assigned_to TEXT NOT NULL,
  company_name TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'new',
  call_attempts INTEGER NOT NULL DEFAULT 0,
  mc_number TEXT NOT NULL DEFAULT 'Pending',
  inbound_source TEXT,
  equipment_types TEXT,
  in_progress_at DATETIME,
  hand_to_dispatch_at DATETIME,
  activated_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	leadSalesUsers := `
CREATE TABLE IF NOT EXISTS lead_sales_users (
  id TEXT PRIMARY KEY,
  lead_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (lead_id, role)
);`
	invoices := `
CREATE TABLE IF NOT EXISTS invoices (
  id TEXT PRIMARY KEY,
  org_id TEXT NOT NULL,
  lead_id TEXT NOT NULL,
  dispatcher_id TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  created_at DATETIME,
  updated_at DATETIME
);`
	trucks := `
CREATE TABLE IF NOT EXISTS trucks (
  id TEXT PRIMARY KEY,
  org_id TEXT NOT NULL,
  dispatcher_id TEXT NOT NULL,
  unit_number TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'idle',
  created_at DATETIME,
  updated_at DATETIME
);`
	commissionRuns := `
CREATE TABLE IF NOT EXISTS commission_runs (
  id TEXT PRIMARY KEY,
  org_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  year INTEGER NOT NULL,
  month INTEGER NOT NULL,
  policy_id TEXT NOT NULL,
  active_lead_count INTEGER NOT NULL DEFAULT 0,
  base_commission NUMERIC NOT NULL,
  adjusted_commission NUMERIC NOT NULL,
  rep_of_month_bonus NUMERIC NOT NULL DEFAULT 0,
  active_trucks_bonus NUMERIC NOT NULL DEFAULT 0,
  team_lead_bonus NUMERIC NOT NULL DEFAULT 0,
  total_commission NUMERIC NOT NULL,
  penalty_applied INTEGER NOT NULL DEFAULT 0,
  details TEXT,
  calculated_by TEXT NOT NULL,
  calculated_at DATETIME NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, year, month)
);`
	for _, stmt := range []string{users, leads, leadSalesUsers, invoices, trucks, commissionRuns} {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
	return gdb
}

func newSalesUser(t *testing.T, gdb *gorm.DB, orgID uuid.UUID) *models.User {
	t.Helper()

	user := &models.User{
		ID:    uuid.New(),
		OrgID: orgID,
		Name:  "Test Rep",
		Email: uuid.NewString() + "@freightops.test",
		Role:  enums.UserRoleSales,
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func newLeadRow(t *testing.T, gdb *gorm.DB, orgID, assignedTo uuid.UUID, status enums.LeadStatus) *models.Lead {
	t.Helper()

	lead := &models.Lead{
		ID:          uuid.New(),
		OrgID:       orgID,
		AssignedTo:  assignedTo,
		CompanyName: "Test Carrier",
		Status:      status,
		MCNumber:    "MC-100200",
	}
	require.NoError(t, gdb.Create(lead).Error)
	return lead
}

func newInvoiceRow(t *testing.T, gdb *gorm.DB, orgID, leadID, dispatcherID uuid.UUID, amount int64, status enums.InvoiceStatus, created time.Time) {
	t.Helper()

	invoice := &models.Invoice{
		ID:           uuid.New(),
		OrgID:        orgID,
		LeadID:       leadID,
		DispatcherID: dispatcherID,
		TotalAmount:  decimal.NewFromInt(amount),
		Status:       status,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, gdb.Create(invoice).Error)
}

func TestRepositoryListActiveLeadsForUser(t *testing.T) {
	gdb := setupCommissionsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	orgID := uuid.New()
	rep := newSalesUser(t, gdb, orgID)

	assigned := newLeadRow(t, gdb, orgID, rep.ID, enums.LeadStatusActive)

	// Attributed through a split role rather than assignment.
	split := newLeadRow(t, gdb, orgID, uuid.New(), enums.LeadStatusActive)
	require.NoError(t, gdb.Create(&models.LeadSalesUser{
		ID:     uuid.New(),
		LeadID: split.ID,
		UserID: rep.ID,
		Role:   enums.SalesRoleCloser,
	}).Error)

	// Assigned and holding a role on the same lead must not duplicate it.
	require.NoError(t, gdb.Create(&models.LeadSalesUser{
		ID:     uuid.New(),
		LeadID: assigned.ID,
		UserID: rep.ID,
		Role:   enums.SalesRoleStarter,
	}).Error)

	newLeadRow(t, gdb, orgID, rep.ID, enums.LeadStatusFollowUp)
	newLeadRow(t, gdb, uuid.New(), rep.ID, enums.LeadStatusActive)

	leads, err := repo.ListActiveLeadsForUser(ctx, orgID, rep.ID)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	ids := map[uuid.UUID]bool{}
	for _, lead := range leads {
		ids[lead.ID] = true
	}
	assert.True(t, ids[assigned.ID])
	assert.True(t, ids[split.ID])
}

func TestRepositorySalesRolesForUser(t *testing.T) {
	gdb := setupCommissionsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	orgID := uuid.New()
	rep := newSalesUser(t, gdb, orgID)
	leadA := newLeadRow(t, gdb, orgID, rep.ID, enums.LeadStatusActive)
	leadB := newLeadRow(t, gdb, orgID, rep.ID, enums.LeadStatusActive)

	require.NoError(t, gdb.Create(&models.LeadSalesUser{
		ID:     uuid.New(),
		LeadID: leadA.ID,
		UserID: rep.ID,
		Role:   enums.SalesRoleStarter,
	}).Error)

	roles, err := repo.SalesRolesForUser(ctx, rep.ID, []uuid.UUID{leadA.ID, leadB.ID})
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, enums.SalesRoleStarter, roles[leadA.ID])

	empty, err := repo.SalesRolesForUser(ctx, rep.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepositoryListInvoicesForDispatcher(t *testing.T) {
	gdb := setupCommissionsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	orgID := uuid.New()
	dispatcherID := uuid.New()
	leadID := uuid.New()
	start, end := Period{Year: 2026, Month: 7}.Window()

	newInvoiceRow(t, gdb, orgID, leadID, dispatcherID, 4000, enums.InvoiceStatusPaid, start.Add(24*time.Hour))
	newInvoiceRow(t, gdb, orgID, leadID, dispatcherID, 6000, enums.InvoiceStatusSent, end.Add(-time.Hour))
	newInvoiceRow(t, gdb, orgID, leadID, dispatcherID, 999, enums.InvoiceStatusDraft, start.Add(48*time.Hour))
	newInvoiceRow(t, gdb, orgID, leadID, dispatcherID, 999, enums.InvoiceStatusVoid, start.Add(48*time.Hour))
	newInvoiceRow(t, gdb, orgID, leadID, dispatcherID, 999, enums.InvoiceStatusPaid, end.Add(time.Hour))
	newInvoiceRow(t, gdb, orgID, leadID, uuid.New(), 999, enums.InvoiceStatusPaid, start.Add(24*time.Hour))

	invoices, err := repo.ListInvoicesForDispatcher(ctx, dispatcherID, start, end)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.True(t, invoices[0].TotalAmount.Equal(decimal.NewFromInt(4000)))
	assert.True(t, invoices[1].TotalAmount.Equal(decimal.NewFromInt(6000)))
}

func TestRepositoryCountActiveTrucks(t *testing.T) {
	gdb := setupCommissionsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	orgID := uuid.New()
	dispatcherID := uuid.New()
	for i, status := range []enums.TruckStatus{
		enums.TruckStatusActive,
		enums.TruckStatusActive,
		enums.TruckStatusIdle,
		enums.TruckStatusInactive,
	} {
		require.NoError(t, gdb.Create(&models.Truck{
			ID:           uuid.New(),
			OrgID:        orgID,
			DispatcherID: dispatcherID,
			UnitNumber:   string(rune('A' + i)),
			Status:       status,
		}).Error)
	}

	count, err := repo.CountActiveTrucks(ctx, dispatcherID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRepositoryRunRoundTrip(t *testing.T) {
	gdb := setupCommissionsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	orgID := uuid.New()
	rep := newSalesUser(t, gdb, orgID)
	period := Period{Year: 2026, Month: 7}

	_, err := repo.FindRun(ctx, rep.ID, period)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	threshold := 3
	run := &models.CommissionRun{
		ID:                 uuid.New(),
		OrgID:              orgID,
		UserID:             rep.ID,
		Year:               period.Year,
		Month:              period.Month,
		PolicyID:           uuid.New(),
		ActiveLeadCount:    4,
		BaseCommission:     decimal.NewFromInt(500),
		AdjustedCommission: decimal.NewFromInt(500),
		TotalCommission:    decimal.NewFromInt(500),
		Details: types.CalculationDetails{
			PolicyType:    "sales",
			ActiveLeads:   4,
			TierThreshold: &threshold,
		},
		CalculatedBy: rep.ID,
		CalculatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateRun(ctx, run))

	stored, err := repo.FindRun(ctx, rep.ID, period)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.ActiveLeadCount)
	assert.True(t, stored.TotalCommission.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "sales", stored.Details.PolicyType)
	require.NotNil(t, stored.Details.TierThreshold)
	assert.Equal(t, 3, *stored.Details.TierThreshold)

	// Second snapshot for the same period must trip the unique index.
	dup := *run
	dup.ID = uuid.New()
	err = repo.CreateRun(ctx, &dup)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))
}
