package postgres

import (
	"context"
	"errors"
	"fmt"

	"menuReco/business/menu"
	"menuReco/business/profile"
	"menuReco/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserProfileRepository struct {
	DB *gorm.DB
}

var (
	_ profile.ProfileRepository = (*UserProfileRepository)(nil)
	_ menu.ProfileRepository    = (*UserProfileRepository)(nil)
)

func NewUserProfileRepository(db *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{DB: db}
}

func (r *UserProfileRepository) FindByUserID(ctx context.Context, userID uint) (domain.UserProfile, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserProfile{}, false, fmt.Errorf("context error: %w", err)
	}

	var row domain.UserProfile
	err := r.DB.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserProfile{}, false, nil
	}
	if err != nil {
		return domain.UserProfile{}, false, fmt.Errorf("failed to query user_profiles: %w", err)
	}
	return row, true, nil
}

func (r *UserProfileRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"liked_ingredients",
				"disliked_ingredients",
				"allergies",
				"restrictions",
				"liked_dishes",
				"disliked_dishes",
				"updated_at",
			}),
		}).
		Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user_profile: %w", err)
	}
	return nil
}
