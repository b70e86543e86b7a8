package commissions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// Repository reads calculator inputs and persists commission snapshots.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindRun(ctx context.Context, userID uuid.UUID, period Period) (*models.CommissionRun, error)
	CreateRun(ctx context.Context, run *models.CommissionRun) error

	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListActiveUsers(ctx context.Context, orgID uuid.UUID) ([]models.User, error)
	ListAllActiveUsers(ctx context.Context) ([]models.User, error)

	ListActiveLeadsForUser(ctx context.Context, orgID, userID uuid.UUID) ([]models.Lead, error)
	SalesRolesForUser(ctx context.Context, userID uuid.UUID, leadIDs []uuid.UUID) (map[uuid.UUID]enums.SalesRole, error)

	ListInvoicesForDispatcher(ctx context.Context, dispatcherID uuid.UUID, start, end time.Time) ([]models.Invoice, error)
	ListInvoicesForLeads(ctx context.Context, leadIDs []uuid.UUID, start, end time.Time) ([]models.Invoice, error)
	CountActiveTrucks(ctx context.Context, dispatcherID uuid.UUID) (int, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a commissions repository bound to the provided
// database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindRun(ctx context.Context, userID uuid.UUID, period Period) (*models.CommissionRun, error) {
	var run models.CommissionRun
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, period.Year, period.Month).
		First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) CreateRun(ctx context.Context, run *models.CommissionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) ListActiveUsers(ctx context.Context, orgID uuid.UUID) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND active = ?", orgID, true).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) ListAllActiveUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListActiveLeadsForUser returns active leads the user is attributed on,
// either as the assigned rep or through a lead_sales_users role row.
func (r *repository) ListActiveLeadsForUser(ctx context.Context, orgID, userID uuid.UUID) ([]models.Lead, error) {
	var leads []models.Lead
	if err := r.db.WithContext(ctx).
		Distinct("leads.*").
		Joins("LEFT JOIN lead_sales_users lsu ON lsu.lead_id = leads.id").
		Where("leads.org_id = ? AND leads.status = ?", orgID, enums.LeadStatusActive).
		Where("leads.assigned_to = ? OR lsu.user_id = ?", userID, userID).
		Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *repository) SalesRolesForUser(ctx context.Context, userID uuid.UUID, leadIDs []uuid.UUID) (map[uuid.UUID]enums.SalesRole, error) {
	roles := make(map[uuid.UUID]enums.SalesRole, len(leadIDs))
	if len(leadIDs) == 0 {
		return roles, nil
	}
	var rows []models.LeadSalesUser
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND lead_id IN ?", userID, leadIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		roles[row.LeadID] = row.Role
	}
	return roles, nil
}

// ListInvoicesForDispatcher returns billable invoices created inside the
// window. Draft and void invoices never count toward commission.
func (r *repository) ListInvoicesForDispatcher(ctx context.Context, dispatcherID uuid.UUID, start, end time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).
		Where("dispatcher_id = ?", dispatcherID).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Where("status IN ?", []enums.InvoiceStatus{
			enums.InvoiceStatusSent,
			enums.InvoiceStatusPaid,
			enums.InvoiceStatusOverdue,
		}).
		Order("created_at ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repository) ListInvoicesForLeads(ctx context.Context, leadIDs []uuid.UUID, start, end time.Time) ([]models.Invoice, error) {
	if len(leadIDs) == 0 {
		return nil, nil
	}
	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).
		Where("lead_id IN ?", leadIDs).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Where("status IN ?", []enums.InvoiceStatus{
			enums.InvoiceStatusSent,
			enums.InvoiceStatusPaid,
			enums.InvoiceStatusOverdue,
		}).
		Order("created_at ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repository) CountActiveTrucks(ctx context.Context, dispatcherID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Truck{}).
		Where("dispatcher_id = ? AND status = ?", dispatcherID, enums.TruckStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
