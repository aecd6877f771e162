package profile

import (
	"errors"
	"slices"
	"strings"

	"menuReco/domain"

	"gorm.io/datatypes"
)

type Opinion string

const (
	Like    Opinion = "like"
	Dislike Opinion = "dislike"
	Neutral Opinion = "neutral"
)

var ErrInvalidOpinion = errors.New("opinion must be like, dislike or neutral")

func ParseOpinion(s string) (Opinion, error) {
	switch o := Opinion(strings.ToLower(strings.TrimSpace(s))); o {
	case Like, Dislike, Neutral:
		return o, nil
	}
	return "", ErrInvalidOpinion
}

// The functions below never modify their argument; each returns an updated
// copy of the profile.

// MarkDish moves a dish id between the liked and disliked lists.
func MarkDish(p domain.UserProfile, dishID string, o Opinion) domain.UserProfile {
	out := clone(p)
	id := strings.TrimSpace(dishID)
	out.LikedDishes = without(out.LikedDishes, id)
	out.DislikedDishes = without(out.DislikedDishes, id)
	switch o {
	case Like:
		out.LikedDishes = with(out.LikedDishes, id)
	case Dislike:
		out.DislikedDishes = with(out.DislikedDishes, id)
	}
	return out
}

// MarkIngredient moves an ingredient between the liked and disliked lists.
func MarkIngredient(p domain.UserProfile, ingredient string, o Opinion) domain.UserProfile {
	out := clone(p)
	ing := normalize(ingredient)
	out.LikedIngredients = without(out.LikedIngredients, ing)
	out.DislikedIngredients = without(out.DislikedIngredients, ing)
	switch o {
	case Like:
		out.LikedIngredients = with(out.LikedIngredients, ing)
	case Dislike:
		out.DislikedIngredients = with(out.DislikedIngredients, ing)
	}
	return out
}

func ToggleAllergy(p domain.UserProfile, ingredient string) domain.UserProfile {
	out := clone(p)
	out.Allergies = toggle(out.Allergies, normalize(ingredient))
	return out
}

func ToggleRestriction(p domain.UserProfile, ingredient string) domain.UserProfile {
	out := clone(p)
	out.Restrictions = toggle(out.Restrictions, normalize(ingredient))
	return out
}

// ApplyPreset adds the preset's ingredients to the restrictions and drops
// them from the liked ingredients.
func ApplyPreset(p domain.UserProfile, preset Preset) domain.UserProfile {
	out := clone(p)
	for _, raw := range preset.Ingredients {
		ing := normalize(raw)
		out.LikedIngredients = without(out.LikedIngredients, ing)
		out.Restrictions = with(out.Restrictions, ing)
	}
	return out
}

// RemovePreset drops the preset's ingredients from the restrictions.
// Restrictions shared with another applied preset are removed as well.
func RemovePreset(p domain.UserProfile, preset Preset) domain.UserProfile {
	out := clone(p)
	for _, raw := range preset.Ingredients {
		out.Restrictions = without(out.Restrictions, normalize(raw))
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clone(p domain.UserProfile) domain.UserProfile {
	p.LikedIngredients = slices.Clone(p.LikedIngredients)
	p.DislikedIngredients = slices.Clone(p.DislikedIngredients)
	p.Allergies = slices.Clone(p.Allergies)
	p.Restrictions = slices.Clone(p.Restrictions)
	p.LikedDishes = slices.Clone(p.LikedDishes)
	p.DislikedDishes = slices.Clone(p.DislikedDishes)
	return p
}

func with(list datatypes.JSONSlice[string], v string) datatypes.JSONSlice[string] {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

func without(list datatypes.JSONSlice[string], v string) datatypes.JSONSlice[string] {
	return slices.DeleteFunc(list, func(s string) bool { return s == v })
}

func toggle(list datatypes.JSONSlice[string], v string) datatypes.JSONSlice[string] {
	if slices.Contains(list, v) {
		return without(list, v)
	}
	return with(list, v)
}
