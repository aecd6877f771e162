package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menuReco/domain"
	"menuReco/pkg/logger"
)

var (
	ErrDishNotFound    = errors.New("dish not found")
	ErrEmptyIngredient = errors.New("ingredient name is required")
	ErrInvalidUserID   = errors.New("invalid user id")
)

// ProfileRepository stores one preference row per user.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.UserProfile, bool, error)
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

type DishRepository interface {
	FindByID(ctx context.Context, id string) (domain.Dish, error)
}

type profileService struct {
	profileRepo ProfileRepository
	dishRepo    DishRepository
}

func NewProfileService(profileRepo ProfileRepository, dishRepo DishRepository) *profileService {
	return &profileService{
		profileRepo: profileRepo,
		dishRepo:    dishRepo,
	}
}

// GetProfile returns the stored profile, or an empty one for users who
// never saved preferences.
func (s *profileService) GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error) {
	if userID == 0 {
		return domain.UserProfile{}, ErrInvalidUserID
	}
	if err := ctx.Err(); err != nil {
		return domain.UserProfile{}, fmt.Errorf("context error: %w", err)
	}

	p, found, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to load profile", "user_id", userID, "error", err)
		return domain.UserProfile{}, err
	}
	if !found {
		return domain.UserProfile{UserID: userID}, nil
	}
	return p, nil
}

func (s *profileService) MarkDish(ctx context.Context, userID uint, dishID string, o Opinion) (domain.UserProfile, error) {
	id := strings.TrimSpace(dishID)
	if _, err := s.dishRepo.FindByID(ctx, id); err != nil {
		logger.Warn("mark dish on unknown dish", "user_id", userID, "dish_id", id, "error", err)
		return domain.UserProfile{}, fmt.Errorf("%w: %s", ErrDishNotFound, id)
	}
	return s.update(ctx, userID, func(p domain.UserProfile) domain.UserProfile {
		return MarkDish(p, id, o)
	})
}

func (s *profileService) MarkIngredient(ctx context.Context, userID uint, ingredient string, o Opinion) (domain.UserProfile, error) {
	if normalize(ingredient) == "" {
		return domain.UserProfile{}, ErrEmptyIngredient
	}
	return s.update(ctx, userID, func(p domain.UserProfile) domain.UserProfile {
		return MarkIngredient(p, ingredient, o)
	})
}

func (s *profileService) ToggleAllergy(ctx context.Context, userID uint, ingredient string) (domain.UserProfile, error) {
	if normalize(ingredient) == "" {
		return domain.UserProfile{}, ErrEmptyIngredient
	}
	return s.update(ctx, userID, func(p domain.UserProfile) domain.UserProfile {
		return ToggleAllergy(p, ingredient)
	})
}

func (s *profileService) ToggleRestriction(ctx context.Context, userID uint, ingredient string) (domain.UserProfile, error) {
	if normalize(ingredient) == "" {
		return domain.UserProfile{}, ErrEmptyIngredient
	}
	return s.update(ctx, userID, func(p domain.UserProfile) domain.UserProfile {
		return ToggleRestriction(p, ingredient)
	})
}

func (s *profileService) ApplyPreset(ctx context.Context, userID uint, name string) (domain.UserProfile, error) {
	preset, err := FindPreset(name)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return s.update(ctx, userID, func(p domain.UserProfile) domain.UserProfile {
		return ApplyPreset(p, preset)
	})
}

func (s *profileService) RemovePreset(ctx context.Context, userID uint, name string) (domain.UserProfile, error) {
	preset, err := FindPreset(name)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return s.update(ctx, userID, func(p domain.UserProfile) domain.UserProfile {
		return RemovePreset(p, preset)
	})
}

// update loads the profile, applies change and stores the result.
func (s *profileService) update(ctx context.Context, userID uint, change func(domain.UserProfile) domain.UserProfile) (domain.UserProfile, error) {
	current, err := s.GetProfile(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}

	next := change(current)
	next.UserID = userID
	if err := s.profileRepo.Upsert(ctx, &next); err != nil {
		logger.Error("failed to save profile", "user_id", userID, "error", err)
		return domain.UserProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.Debug("profile_updated", "user_id", userID)
	return next, nil
}
