package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"menuReco/business/dish"
	"menuReco/domain"
	"menuReco/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type DishService interface {
	GetAllDishes(ctx context.Context) ([]domain.Dish, error)
	GetDishByID(ctx context.Context, id string) (*domain.Dish, error)
	CreateDish(ctx context.Context, d *domain.Dish) (*domain.Dish, error)
	UpdateDish(ctx context.Context, d *domain.Dish) (*domain.Dish, error)
	DeleteDish(ctx context.Context, id string) error
}

type DishHandler struct {
	dishService DishService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewDishHandler(dishService DishService) *DishHandler {
	return &DishHandler{
		dishService: dishService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type CreateDishRequest struct {
	ID          string   `json:"id" validate:"required,max=64"`
	Name        string   `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Available   *bool    `json:"available"`
}

type UpdateDishRequest struct {
	Name        string   `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Available   *bool    `json:"available"`
}

func (h *DishHandler) GetAllDishes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dishes, err := h.dishService.GetAllDishes(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(dishes))
}

func (h *DishHandler) GetDishByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	d, err := h.dishService.GetDishByID(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(dishErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(d))
}

func (h *DishHandler) CreateDish(c echo.Context) error {
	var req CreateDishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.dishService.CreateDish(ctx, &domain.Dish{
		ID:          req.ID,
		Name:        req.Name,
		Ingredients: datatypes.JSONSlice[string](req.Ingredients),
		Available:   req.Available == nil || *req.Available,
	})
	if err != nil {
		logger.Warn("failed to create dish", "dish_id", req.ID, "error", err)
		return c.JSON(dishErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *DishHandler) UpdateDish(c echo.Context) error {
	var req UpdateDishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.dishService.UpdateDish(ctx, &domain.Dish{
		ID:          c.Param("id"),
		Name:        req.Name,
		Ingredients: datatypes.JSONSlice[string](req.Ingredients),
		Available:   req.Available == nil || *req.Available,
	})
	if err != nil {
		return c.JSON(dishErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *DishHandler) DeleteDish(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.dishService.DeleteDish(ctx, c.Param("id")); err != nil {
		return c.JSON(dishErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("dish deleted"))
}

func dishErrorStatus(err error) int {
	switch {
	case errors.Is(err, dish.ErrDishNotFound):
		return http.StatusNotFound
	case errors.Is(err, dish.ErrDishExists):
		return http.StatusConflict
	case errors.Is(err, dish.ErrIDRequired),
		errors.Is(err, dish.ErrNameRequired),
		errors.Is(err, dish.ErrNoIngredients):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
