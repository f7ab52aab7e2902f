package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"craftlab/careers/internal/models"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", translate(err))
	}
	return nil
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to find profile %s: %w", id, translate(err))
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"full_name":            profile.FullName,
			"email":                profile.Email,
			"user_type":            profile.UserType,
			"bio":                  profile.Bio,
			"location":             profile.Location,
			"skills":               profile.Skills,
			"preferred_work_type":  profile.PreferredWorkType,
			"preferred_industries": profile.PreferredIndustries,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", translate(result.Error))
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update profile %s: %w", profile.ID, ErrNotFound)
	}

	return nil
}
