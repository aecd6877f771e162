package postgres

import (
	"context"
	"errors"
	"fmt"

	"menuReco/business/dish"
	"menuReco/business/menu"
	"menuReco/domain"

	"gorm.io/gorm"
)

type DishRepository struct {
	DB *gorm.DB
}

var (
	_ dish.DishRepository = (*DishRepository)(nil)
	_ menu.DishRepository = (*DishRepository)(nil)
)

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{
		DB: db,
	}
}

func (r *DishRepository) Create(ctx context.Context, d *domain.Dish) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}

	return nil
}

func (r *DishRepository) FindByID(ctx context.Context, id string) (domain.Dish, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dish{}, fmt.Errorf("context error: %w", err)
	}

	var d domain.Dish
	err := r.DB.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Dish{}, errors.New("dish not found")
		}
		return domain.Dish{}, fmt.Errorf("failed to find dish: %w", err)
	}

	return d, nil
}

// FindAll returns the catalog in insertion order. The ranker breaks
// probability ties by catalog position, so the order has to be stable.
func (r *DishRepository) FindAll(ctx context.Context) ([]domain.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var dishes []domain.Dish
	err := r.DB.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&dishes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find dishes: %w", err)
	}

	return dishes, nil
}

func (r *DishRepository) Update(ctx context.Context, d *domain.Dish) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":        d.Name,
		"ingredients": d.Ingredients,
		"available":   d.Available,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Dish{}).Where("id = ?", d.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update dish: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("dish not found")
	}

	return nil
}

func (r *DishRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Dish{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete dish: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("dish not found or already deleted")
	}

	return nil
}
