package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"menuReco/business/recommender"
	"menuReco/domain"
	"menuReco/pkg/logger"
	"menuReco/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	MenuHandler struct {
		validate    *validator.Validate
		menuService MenuService
		timeout     time.Duration
	}

	MenuService interface {
		Recommend(ctx context.Context, userID uint, n int) ([]domain.DishRecommendation, error)
		Explain(ctx context.Context, userID uint) ([]recommender.Breakdown, error)
	}

	RecommendQuery struct {
		N int `query:"n" validate:"gte=0,lte=1000"`
	}
)

func NewMenuHandler(svc MenuService) *MenuHandler {
	return &MenuHandler{
		validate:    validator.New(),
		menuService: svc,
		timeout:     10 * time.Second,
	}
}

// GET /api/v1/recommendations?n=5
func (h *MenuHandler) Recommend(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.RecommendLatency.Observe(time.Since(start).Seconds()) }()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		metrics.RecommendRequests.WithLabelValues("recommend", "bad_request").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		metrics.RecommendRequests.WithLabelValues("recommend", "bad_request").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.menuService.Recommend(ctx, userID, q.N)
	if err != nil {
		status, outcome := recommendErrorStatus(err)
		metrics.RecommendRequests.WithLabelValues("recommend", outcome).Inc()
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	metrics.RecommendRequests.WithLabelValues("recommend", "ok").Inc()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/debug
func (h *MenuHandler) Explain(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	out, err := h.menuService.Explain(ctx, userID)
	if err != nil {
		status, outcome := recommendErrorStatus(err)
		metrics.RecommendRequests.WithLabelValues("explain", outcome).Inc()
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	metrics.RecommendRequests.WithLabelValues("explain", "ok").Inc()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(out))
}

func recommendErrorStatus(err error) (int, string) {
	var inv *recommender.InferenceInvariantError
	switch {
	case errors.Is(err, recommender.ErrEmptyCatalog):
		return http.StatusUnprocessableEntity, "empty_catalog"
	case errors.Is(err, recommender.ErrInvalidDish), errors.Is(err, recommender.ErrInvalidConfig):
		return http.StatusBadRequest, "invalid_input"
	case errors.As(err, &inv):
		logger.Error("inference invariant violated", "stage", inv.Stage, "error", inv.Err)
		return http.StatusInternalServerError, "invariant"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "error"
	}
}
