package profile

import (
	"errors"
	"strings"
)

var ErrUnknownPreset = errors.New("unknown restriction preset")

// Preset is a named bundle of ingredients added to a user's restrictions
// in one go.
type Preset struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

var presets = []Preset{
	{
		Slug: "vegano",
		Name: "Vegano",
		Ingredients: []string{
			"carne molida", "salsa boloñesa", "mozzarella", "queso parmesano",
			"mascarpone", "bechamel", "huevo",
		},
	},
	{
		Slug:        "vegetariano",
		Name:        "Vegetariano",
		Ingredients: []string{"carne molida", "salsa boloñesa"},
	},
	{
		Slug:        "sin-gluten",
		Name:        "Sin gluten",
		Ingredients: []string{"masa", "pan", "láminas de pasta", "spaghetti"},
	},
	{
		Slug:        "sin-lactosa",
		Name:        "Sin lactosa",
		Ingredients: []string{"mozzarella", "queso parmesano", "mascarpone", "bechamel"},
	},
	{
		Slug:        "sin-huevo",
		Name:        "Sin huevo",
		Ingredients: []string{"huevo"},
	},
}

// Presets lists the built-in presets.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		p.Ingredients = append([]string(nil), p.Ingredients...)
		out[i] = p
	}
	return out
}

// FindPreset matches a slug or display name, ignoring case.
func FindPreset(name string) (Preset, error) {
	key := strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(p.Slug, key) || strings.EqualFold(p.Name, key) {
			p.Ingredients = append([]string(nil), p.Ingredients...)
			return p, nil
		}
	}
	return Preset{}, ErrUnknownPreset
}
