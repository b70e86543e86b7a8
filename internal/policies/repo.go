package policies

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
)

// Repository manages persistence for commission policies.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, policy *models.CommissionPolicy) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CommissionPolicy, error)
	FindActive(ctx context.Context, orgID uuid.UUID, policyType enums.PolicyType) (*models.CommissionPolicy, error)
	DeactivateSiblings(ctx context.Context, orgID uuid.UUID, policyType enums.PolicyType, exceptID uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Archive(ctx context.Context, id uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a policy repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, policy *models.CommissionPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CommissionPolicy, error) {
	var policy models.CommissionPolicy
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&policy).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *repository) FindActive(ctx context.Context, orgID uuid.UUID, policyType enums.PolicyType) (*models.CommissionPolicy, error) {
	var policy models.CommissionPolicy
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND type = ? AND is_active = ?", orgID, policyType, true).
		First(&policy).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *repository) DeactivateSiblings(ctx context.Context, orgID uuid.UUID, policyType enums.PolicyType, exceptID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CommissionPolicy{}).
		Where("org_id = ? AND type = ? AND id <> ?", orgID, policyType, exceptID).
		Update("is_active", false).Error
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.CommissionPolicy{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *repository) Archive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.CommissionPolicy{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "valid_to": at}).Error
}
