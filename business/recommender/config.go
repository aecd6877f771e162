// Package recommender ranks menu dishes for one user profile.
//
// A Bayesian network with a uniform Dish root and one presence variable per
// ingredient gives P(dish | liked ingredients). That posterior is then
// reranked by hard vetoes (disliked dish, allergy, restriction), soft
// penalties (unavailable or disliked ingredients), Jaccard similarity to the
// dishes the user liked and a boost for liked dishes, and renormalized.
//
// Everything here is a pure function of its inputs. Nothing is logged and
// nothing is read from or written to the outside world.
package recommender

import (
	"fmt"
	"math"
)

type Config struct {
	// P(ingredient present | dish) when the dish has the ingredient, and
	// when it does not. Both must be strictly between 0 and 1.
	PresentIfContains float64
	PresentIfMissing  float64

	// multiplied once per unavailable ingredient
	UnavailablePenalty float64

	// multiplied once when any disliked ingredient is present
	DislikedIngredientPenalty float64

	// weight on Jaccard similarity to the liked dishes: w *= 1 + SimilarityWeight*sim
	SimilarityWeight float64

	LikedDishBoost float64
}

const (
	defaultPresentIfContains         = 0.8
	defaultPresentIfMissing          = 0.1
	defaultUnavailablePenalty        = 0.2
	defaultDislikedIngredientPenalty = 0.1
	defaultSimilarityWeight          = 1.0
	defaultLikedDishBoost            = 1.3
)

func DefaultConfig() Config {
	return Config{
		PresentIfContains:         defaultPresentIfContains,
		PresentIfMissing:          defaultPresentIfMissing,
		UnavailablePenalty:        defaultUnavailablePenalty,
		DislikedIngredientPenalty: defaultDislikedIngredientPenalty,
		SimilarityWeight:          defaultSimilarityWeight,
		LikedDishBoost:            defaultLikedDishBoost,
	}
}

// Validate rejects settings that would break the probability tables or let
// a penalty turn into a boost.
func (c Config) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
		openMin  bool
		openMax  bool
	}{
		{"present_if_contains", c.PresentIfContains, 0, 1, true, true},
		{"present_if_missing", c.PresentIfMissing, 0, 1, true, true},
		{"unavailable_penalty", c.UnavailablePenalty, 0, 1, false, false},
		{"disliked_ingredient_penalty", c.DislikedIngredientPenalty, 0, 1, false, false},
		{"similarity_weight", c.SimilarityWeight, 0, math.MaxFloat64, false, false},
		{"liked_dish_boost", c.LikedDishBoost, 0, math.MaxFloat64, true, false},
	}

	for _, ch := range checks {
		v := ch.value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidConfig, ch.name, v)
		}
		if v < ch.min || (ch.openMin && v == ch.min) || v > ch.max || (ch.openMax && v == ch.max) {
			return fmt.Errorf("%w: %s=%v out of range", ErrInvalidConfig, ch.name, v)
		}
	}
	return nil
}
