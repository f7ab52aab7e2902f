package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"craftlab/careers/internal/models"
)

// OpportunityFilter narrows listings. Zero values mean "any".
type OpportunityFilter struct {
	Type     string
	WorkType string
	Industry string
	Limit    int
}

type OpportunityRepository interface {
	Create(ctx context.Context, opp *models.Opportunity) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Opportunity, error)
	FindOpen(ctx context.Context, filter OpportunityFilter) ([]models.Opportunity, error)
	FindUnindexed(ctx context.Context, limit int) ([]models.Opportunity, error)
	MarkIndexed(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OpportunityStatus) error
}

type opportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) OpportunityRepository {
	return &opportunityRepository{db: db}
}

func (r *opportunityRepository) Create(ctx context.Context, opp *models.Opportunity) error {
	if err := r.db.WithContext(ctx).Create(opp).Error; err != nil {
		return fmt.Errorf("failed to create opportunity: %w", translate(err))
	}
	return nil
}

func (r *opportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error) {
	var opp models.Opportunity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&opp).Error; err != nil {
		return nil, fmt.Errorf("failed to find opportunity %s: %w", id, translate(err))
	}
	return &opp, nil
}

// FindByIDs returns the opportunities in the order of ids, skipping unknown ones.
func (r *opportunityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Opportunity, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var opps []models.Opportunity
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&opps).Error; err != nil {
		return nil, fmt.Errorf("failed to find opportunities: %w", err)
	}

	byID := make(map[uuid.UUID]models.Opportunity, len(opps))
	for _, o := range opps {
		byID[o.ID] = o
	}

	ordered := make([]models.Opportunity, 0, len(opps))
	for _, id := range ids {
		if o, ok := byID[id]; ok {
			ordered = append(ordered, o)
		}
	}
	return ordered, nil
}

// FindOpen lists open opportunities oldest first, so ranking ties favour
// earlier postings.
func (r *opportunityRepository) FindOpen(ctx context.Context, filter OpportunityFilter) ([]models.Opportunity, error) {
	query := r.db.WithContext(ctx).Where("status = ?", models.OpportunityOpen)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.WorkType != "" {
		query = query.Where("work_type = ?", filter.WorkType)
	}
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var opps []models.Opportunity
	if err := query.Order("created_at ASC").Find(&opps).Error; err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	return opps, nil
}

func (r *opportunityRepository) FindUnindexed(ctx context.Context, limit int) ([]models.Opportunity, error) {
	var opps []models.Opportunity
	err := r.db.WithContext(ctx).
		Where("indexed_at IS NULL AND status = ?", models.OpportunityOpen).
		Order("created_at ASC").
		Limit(limit).
		Find(&opps).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed opportunities: %w", err)
	}
	return opps, nil
}

func (r *opportunityRepository) MarkIndexed(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Opportunity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"indexed_at": now,
			"updated_at": now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark opportunity indexed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to mark opportunity %s indexed: %w", id, ErrNotFound)
	}

	return nil
}

// UpdateStatus changes the listing status and clears indexed_at so the
// vector index gets refreshed.
func (r *opportunityRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OpportunityStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Opportunity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"indexed_at": nil,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update opportunity status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update opportunity %s: %w", id, ErrNotFound)
	}

	return nil
}
