package dish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menuReco/business/recommender"
	"menuReco/domain"
	"menuReco/pkg/logger"

	"gorm.io/datatypes"
)

var (
	ErrDishNotFound  = errors.New("dish not found")
	ErrDishExists    = errors.New("dish already exists")
	ErrIDRequired    = errors.New("dish id is required")
	ErrNameRequired  = errors.New("dish name is required")
	ErrNoIngredients = errors.New("dish needs at least one ingredient")
)

// DishRepository contract interface
type DishRepository interface {
	Create(ctx context.Context, dish *domain.Dish) error
	FindByID(ctx context.Context, id string) (domain.Dish, error)
	FindAll(ctx context.Context) ([]domain.Dish, error)
	Update(ctx context.Context, dish *domain.Dish) error
	Delete(ctx context.Context, id string) error
}

type dishService struct {
	dishRepo DishRepository
}

func NewDishService(dishRepo DishRepository) *dishService {
	return &dishService{
		dishRepo: dishRepo,
	}
}

func (s *dishService) GetAllDishes(ctx context.Context) ([]domain.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	dishes, err := s.dishRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all dishes", "error", err)
		return nil, err
	}

	return dishes, nil
}

func (s *dishService) GetDishByID(ctx context.Context, id string) (*domain.Dish, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	dish, err := s.dishRepo.FindByID(ctx, id)
	if err != nil {
		logger.Warn("failed to find dish by id", "dish_id", id, "error", err)
		return nil, ErrDishNotFound
	}

	return &dish, nil
}

// CreateDish stores a new dish with normalized ingredients.
func (s *dishService) CreateDish(ctx context.Context, dish *domain.Dish) (*domain.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := normalize(dish); err != nil {
		return nil, err
	}

	if _, err := s.dishRepo.FindByID(ctx, dish.ID); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDishExists, dish.ID)
	}

	if err := s.dishRepo.Create(ctx, dish); err != nil {
		logger.Error("failed to create dish", "dish_id", dish.ID, "error", err)
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	logger.Info("dish created", "dish_id", dish.ID)
	return dish, nil
}

func (s *dishService) UpdateDish(ctx context.Context, dish *domain.Dish) (*domain.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := normalize(dish); err != nil {
		return nil, err
	}

	if _, err := s.dishRepo.FindByID(ctx, dish.ID); err != nil {
		return nil, ErrDishNotFound
	}

	if err := s.dishRepo.Update(ctx, dish); err != nil {
		logger.Error("failed to update dish", "dish_id", dish.ID, "error", err)
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}

	updated, err := s.dishRepo.FindByID(ctx, dish.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated dish: %w", err)
	}

	logger.Info("dish updated", "dish_id", dish.ID)
	return &updated, nil
}

func (s *dishService) DeleteDish(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrIDRequired
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.dishRepo.FindByID(ctx, id); err != nil {
		return ErrDishNotFound
	}

	if err := s.dishRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete dish", "dish_id", id, "error", err)
		return fmt.Errorf("failed to delete dish: %w", err)
	}

	logger.Info("dish deleted", "dish_id", id)
	return nil
}

// normalize trims the id and name and rewrites ingredients the way the
// ranker reads them.
func normalize(d *domain.Dish) error {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = strings.TrimSpace(d.Name)
	if d.ID == "" {
		return ErrIDRequired
	}
	if d.Name == "" {
		return ErrNameRequired
	}

	ings := recommender.NormalizeIngredients([]string(d.Ingredients))
	if len(ings) == 0 {
		return ErrNoIngredients
	}
	d.Ingredients = datatypes.JSONSlice[string](ings)
	return nil
}
