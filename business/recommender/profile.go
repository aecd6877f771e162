package recommender

import "strings"

// Profile is one user's preferences. Nil fields are empty. Ingredient names
// are matched case-insensitively and dish ids exactly after trimming.
type Profile struct {
	LikedIngredients    []string `json:"liked_ingredients"`
	DislikedIngredients []string `json:"disliked_ingredients"`
	Allergies           []string `json:"allergies"`
	Restrictions        []string `json:"restrictions"`
	LikedDishes         []string `json:"liked_dishes"`
	DislikedDishes      []string `json:"disliked_dishes"`
}

type stringSet map[string]struct{}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// intersects reports whether any of items is in s.
func (s stringSet) intersects(items []string) bool {
	for _, it := range items {
		if s.has(it) {
			return true
		}
	}
	return false
}

// profileSets is the read-only view of a Profile used while ranking.
type profileSets struct {
	likedIngredients    stringSet
	dislikedIngredients stringSet
	allergies           stringSet
	restrictions        stringSet
	likedDishes         stringSet
	dislikedDishes      stringSet
}

func newProfileSets(p Profile) profileSets {
	return profileSets{
		likedIngredients:    ingredientSet(p.LikedIngredients),
		dislikedIngredients: ingredientSet(p.DislikedIngredients),
		allergies:           ingredientSet(p.Allergies),
		restrictions:        ingredientSet(p.Restrictions),
		likedDishes:         idSet(p.LikedDishes),
		dislikedDishes:      idSet(p.DislikedDishes),
	}
}

func ingredientSet(items []string) stringSet {
	s := make(stringSet, len(items))
	for _, it := range items {
		if name := normalizeIngredient(it); name != "" {
			s[name] = struct{}{}
		}
	}
	return s
}

func idSet(items []string) stringSet {
	s := make(stringSet, len(items))
	for _, it := range items {
		if id := strings.TrimSpace(it); id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// availability is a lowercased copy of the caller's map. When two keys
// differ only by case and disagree, unavailable wins.
type availability map[string]bool

func newAvailability(in map[string]bool) availability {
	if in == nil {
		return nil
	}
	out := make(availability, len(in))
	for k, v := range in {
		name := normalizeIngredient(k)
		if name == "" {
			continue
		}
		if prev, ok := out[name]; ok {
			out[name] = prev && v
			continue
		}
		out[name] = v
	}
	return out
}

// available defaults to true for ingredients without an entry.
func (a availability) available(ingredient string) bool {
	v, ok := a[ingredient]
	return !ok || v
}
