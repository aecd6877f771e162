package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"menuReco/business/profile"
	"menuReco/domain"
	"menuReco/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error)
	MarkDish(ctx context.Context, userID uint, dishID string, o profile.Opinion) (domain.UserProfile, error)
	MarkIngredient(ctx context.Context, userID uint, ingredient string, o profile.Opinion) (domain.UserProfile, error)
	ToggleAllergy(ctx context.Context, userID uint, ingredient string) (domain.UserProfile, error)
	ToggleRestriction(ctx context.Context, userID uint, ingredient string) (domain.UserProfile, error)
	ApplyPreset(ctx context.Context, userID uint, name string) (domain.UserProfile, error)
	RemovePreset(ctx context.Context, userID uint, name string) (domain.UserProfile, error)
}

type ProfileHandler struct {
	profileService ProfileService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type OpinionRequest struct {
	Opinion string `json:"opinion" validate:"required,oneof=like dislike neutral"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	p, err := h.profileService.GetProfile(ctx, userID)
	if err != nil {
		return c.JSON(profileErrorStatus(err), ResponseError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(p))
}

// PUT /api/v1/profile/dishes/:id
func (h *ProfileHandler) MarkDish(c echo.Context) error {
	return h.withOpinion(c, func(ctx context.Context, userID uint, o profile.Opinion) (domain.UserProfile, error) {
		return h.profileService.MarkDish(ctx, userID, c.Param("id"), o)
	})
}

// PUT /api/v1/profile/ingredients/:name
func (h *ProfileHandler) MarkIngredient(c echo.Context) error {
	return h.withOpinion(c, func(ctx context.Context, userID uint, o profile.Opinion) (domain.UserProfile, error) {
		return h.profileService.MarkIngredient(ctx, userID, c.Param("name"), o)
	})
}

func (h *ProfileHandler) ToggleAllergy(c echo.Context) error {
	return h.edit(c, func(ctx context.Context, userID uint) (domain.UserProfile, error) {
		return h.profileService.ToggleAllergy(ctx, userID, c.Param("name"))
	})
}

func (h *ProfileHandler) ToggleRestriction(c echo.Context) error {
	return h.edit(c, func(ctx context.Context, userID uint) (domain.UserProfile, error) {
		return h.profileService.ToggleRestriction(ctx, userID, c.Param("name"))
	})
}

func (h *ProfileHandler) ApplyPreset(c echo.Context) error {
	return h.edit(c, func(ctx context.Context, userID uint) (domain.UserProfile, error) {
		return h.profileService.ApplyPreset(ctx, userID, c.Param("name"))
	})
}

func (h *ProfileHandler) RemovePreset(c echo.Context) error {
	return h.edit(c, func(ctx context.Context, userID uint) (domain.UserProfile, error) {
		return h.profileService.RemovePreset(ctx, userID, c.Param("name"))
	})
}

// GET /api/v1/presets
func (h *ProfileHandler) ListPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile.Presets()))
}

func (h *ProfileHandler) withOpinion(c echo.Context, apply func(context.Context, uint, profile.Opinion) (domain.UserProfile, error)) error {
	var req OpinionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	o, err := profile.ParseOpinion(req.Opinion)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return h.edit(c, func(ctx context.Context, userID uint) (domain.UserProfile, error) {
		return apply(ctx, userID, o)
	})
}

func (h *ProfileHandler) edit(c echo.Context, apply func(context.Context, uint) (domain.UserProfile, error)) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	p, err := apply(ctx, userID)
	if err != nil {
		status := profileErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("failed to update profile", "user_id", userID, "error", err)
		}
		return c.JSON(status, ResponseError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(p))
}

func profileErrorStatus(err error) int {
	switch {
	case errors.Is(err, profile.ErrDishNotFound), errors.Is(err, profile.ErrUnknownPreset):
		return http.StatusNotFound
	case errors.Is(err, profile.ErrEmptyIngredient),
		errors.Is(err, profile.ErrInvalidOpinion),
		errors.Is(err, profile.ErrInvalidUserID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
