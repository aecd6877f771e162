package rest

import (
	"context"
	"net/http"
	"time"

	"menuReco/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AvailabilityStore interface {
	GetAll(ctx context.Context) (map[string]bool, error)
	Set(ctx context.Context, avail map[string]bool) error
	Delete(ctx context.Context, ingredients ...string) error
}

type AvailabilityHandler struct {
	store     AvailabilityStore
	validator *validator.Validate
	timeout   time.Duration
}

func NewAvailabilityHandler(store AvailabilityStore) *AvailabilityHandler {
	return &AvailabilityHandler{
		store:     store,
		validator: validator.New(),
		timeout:   10 * time.Second,
	}
}

// SetAvailabilityRequest marks ingredients as available or not. Names
// listed in Reset are forgotten and count as available again.
type SetAvailabilityRequest struct {
	Ingredients map[string]bool `json:"ingredients"`
	Reset       []string        `json:"reset" validate:"omitempty,dive,required"`
}

func (h *AvailabilityHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	avail, err := h.store.GetAll(ctx)
	if err != nil {
		logger.Error("failed to read availability", "error", err)
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(avail))
}

func (h *AvailabilityHandler) Set(c echo.Context) error {
	var req SetAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if len(req.Ingredients) == 0 && len(req.Reset) == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "nothing to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.store.Set(ctx, req.Ingredients); err != nil {
		logger.Error("failed to write availability", "error", err)
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
	}
	if err := h.store.Delete(ctx, req.Reset...); err != nil {
		logger.Error("failed to reset availability", "error", err)
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
	}

	avail, err := h.store.GetAll(ctx)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(avail))
}
