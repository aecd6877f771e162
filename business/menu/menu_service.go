package menu

import (
	"context"
	"fmt"
	"math"

	"menuReco/business/recommender"
	"menuReco/domain"
	"menuReco/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ---- Repository interfaces ----

type DishRepository interface {
	FindAll(ctx context.Context) ([]domain.Dish, error)
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.UserProfile, bool, error)
}

// AvailabilityRepository returns the ingredient availability map. Missing
// ingredients count as available.
type AvailabilityRepository interface {
	GetAll(ctx context.Context) (map[string]bool, error)
}

// ---- Service ----

type MenuService struct {
	dishRepo    DishRepository
	profileRepo ProfileRepository
	availRepo   AvailabilityRepository
	rec         *recommender.Recommender
	defaultTopN int
}

func NewMenuService(
	dishRepo DishRepository,
	profileRepo ProfileRepository,
	availRepo AvailabilityRepository,
	rec *recommender.Recommender,
	defaultTopN int,
) *MenuService {
	return &MenuService{
		dishRepo:    dishRepo,
		profileRepo: profileRepo,
		availRepo:   availRepo,
		rec:         rec,
		defaultTopN: defaultTopN,
	}
}

// Recommend ranks the whole catalog for a user and returns the first n
// entries. n <= 0 falls back to the configured default; a default <= 0
// returns every dish. Probabilities are those of the full catalog.
func (s *MenuService) Recommend(ctx context.Context, userID uint, n int) ([]domain.DishRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if n <= 0 {
		n = s.defaultTopN
	}

	dishes, profile, avail, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	recs, err := s.rec.Recommend(dishes, profile, avail)
	if err != nil {
		logger.Error("recommend failed",
			"trace_id", TraceIDFromContext(ctx),
			"user_id", userID,
			"error", err,
		)
		return nil, err
	}

	excluded := 0
	for _, r := range recs {
		if r.Excluded {
			excluded++
		}
	}
	VetoedDishesTotal.WithLabelValues("recommend").Add(float64(excluded))

	logger.Debug("menu_recommend",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"dish_count", len(recs),
		"excluded", excluded,
		"limit", n,
		"with_availability", avail != nil,
	)

	if n > 0 && n < len(recs) {
		recs = recs[:n]
	}
	return toDishRecommendations(recs), nil
}

// Explain returns the per-stage breakdown of every dish in rank order.
func (s *MenuService) Explain(ctx context.Context, userID uint) ([]recommender.Breakdown, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	dishes, profile, avail, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	out, err := s.rec.Explain(dishes, profile, avail)
	if err != nil {
		logger.Error("explain failed",
			"trace_id", TraceIDFromContext(ctx),
			"user_id", userID,
			"error", err,
		)
		return nil, err
	}

	vetoed := 0
	for _, b := range out {
		if b.Vetoed {
			vetoed++
		}
	}
	VetoedDishesTotal.WithLabelValues("explain").Add(float64(vetoed))

	logger.Debug("menu_explain",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"dish_count", len(out),
		"vetoed", vetoed,
	)
	return out, nil
}

// load gathers catalog, profile and availability concurrently.
// Availability is best effort: on failure it is skipped and the ranking
// continues without it.
func (s *MenuService) load(ctx context.Context, userID uint) ([]recommender.Dish, recommender.Profile, map[string]bool, error) {
	var (
		rows    []domain.Dish
		profile recommender.Profile
		avail   map[string]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.dishRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("load dishes: %w", err)
		}
		return nil
	})
	if userID != 0 {
		g.Go(func() error {
			stored, found, err := s.profileRepo.FindByUserID(gctx, userID)
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}
			if found {
				profile = toProfile(stored)
			}
			return nil
		})
	}
	if s.availRepo != nil {
		g.Go(func() error {
			m, err := s.availRepo.GetAll(gctx)
			if err != nil {
				AvailabilityFallbackTotal.Inc()
				logger.Warn("availability unavailable, ranking without it",
					"trace_id", TraceIDFromContext(ctx),
					"error", err,
				)
				return nil
			}
			avail = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, recommender.Profile{}, nil, err
	}
	return toDishes(rows), profile, avail, nil
}

func toDishes(rows []domain.Dish) []recommender.Dish {
	out := make([]recommender.Dish, len(rows))
	for i, d := range rows {
		out[i] = recommender.Dish{
			ID:          d.ID,
			Name:        d.Name,
			Ingredients: []string(d.Ingredients),
			Available:   d.Available,
		}
	}
	return out
}

func toProfile(p domain.UserProfile) recommender.Profile {
	return recommender.Profile{
		LikedIngredients:    []string(p.LikedIngredients),
		DislikedIngredients: []string(p.DislikedIngredients),
		Allergies:           []string(p.Allergies),
		Restrictions:        []string(p.Restrictions),
		LikedDishes:         []string(p.LikedDishes),
		DislikedDishes:      []string(p.DislikedDishes),
	}
}

func toDishRecommendations(recs []recommender.Recommendation) []domain.DishRecommendation {
	out := make([]domain.DishRecommendation, len(recs))
	for i, r := range recs {
		var score *float64
		if !math.IsInf(r.Score, -1) {
			v := r.Score
			score = &v
		}
		ingredients := r.Ingredients
		if ingredients == nil {
			ingredients = []string{}
		}
		out[i] = domain.DishRecommendation{
			Rank:        i + 1,
			DishID:      r.ID,
			Name:        r.Name,
			Ingredients: ingredients,
			Available:   r.Available,
			Probability: r.Probability,
			Score:       score,
			Excluded:    r.Excluded,
		}
	}
	return out
}
