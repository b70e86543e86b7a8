package leads

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarroquin/freightops-backend/pkg/db/models"
)

// Repository manages persistence for leads and their timeline.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	AppendActivity(ctx context.Context, activity *models.LeadActivity) error
	CreateHandoff(ctx context.Context, handoff *models.LeadHandoff) error
	ListActivities(ctx context.Context, leadID uuid.UUID) ([]models.LeadActivity, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a lead repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).
		Preload("SalesUsers").
		Where("id = ?", id).
		First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// AppendActivity inserts one timeline row. Activities are never updated or
// deleted.
func (r *repository) AppendActivity(ctx context.Context, activity *models.LeadActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repository) CreateHandoff(ctx context.Context, handoff *models.LeadHandoff) error {
	return r.db.WithContext(ctx).Create(handoff).Error
}

func (r *repository) ListActivities(ctx context.Context, leadID uuid.UUID) ([]models.LeadActivity, error) {
	var activities []models.LeadActivity
	if err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
