package recommender

import (
	"fmt"
	"sort"
	"strings"
)

type Dish struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Available   bool     `json:"available"`
}

// Catalog is an immutable, normalized list of dishes.
//
// Ids are trimmed. Ingredients are trimmed, lowercased, de-duplicated and
// sorted, and blank ones are dropped. When an id appears more than once the
// last record wins but keeps the position of the first occurrence.
type Catalog struct {
	dishes []Dish
	index  map[string]int
	vocab  []string
}

func NewCatalog(dishes []Dish) (*Catalog, error) {
	if len(dishes) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		dishes: make([]Dish, 0, len(dishes)),
		index:  make(map[string]int, len(dishes)),
	}

	vocab := make(map[string]struct{})
	for i, d := range dishes {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: dish at position %d has no id", ErrInvalidDish, i)
		}

		nd := Dish{
			ID:          id,
			Name:        d.Name,
			Ingredients: NormalizeIngredients(d.Ingredients),
			Available:   d.Available,
		}

		if pos, ok := c.index[id]; ok {
			c.dishes[pos] = nd
		} else {
			c.index[id] = len(c.dishes)
			c.dishes = append(c.dishes, nd)
		}
	}

	for _, d := range c.dishes {
		for _, ing := range d.Ingredients {
			vocab[ing] = struct{}{}
		}
	}
	c.vocab = make([]string, 0, len(vocab))
	for ing := range vocab {
		c.vocab = append(c.vocab, ing)
	}
	sort.Strings(c.vocab)

	return c, nil
}

// NormalizeIngredients lowercases, trims, de-duplicates and sorts names.
func NormalizeIngredients(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		name := normalizeIngredient(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeIngredient(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (c *Catalog) Len() int {
	return len(c.dishes)
}

// Dishes returns a copy of the dishes in catalog order.
func (c *Catalog) Dishes() []Dish {
	out := make([]Dish, len(c.dishes))
	for i, d := range c.dishes {
		out[i] = d.clone()
	}
	return out
}

func (c *Catalog) Dish(id string) (Dish, bool) {
	i, ok := c.index[strings.TrimSpace(id)]
	if !ok {
		return Dish{}, false
	}
	return c.dishes[i].clone(), true
}

// IDs returns the dish ids in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.dishes))
	for i, d := range c.dishes {
		out[i] = d.ID
	}
	return out
}

// Vocabulary returns the sorted distinct ingredients across all dishes.
func (c *Catalog) Vocabulary() []string {
	return append([]string(nil), c.vocab...)
}

func (d Dish) clone() Dish {
	d.Ingredients = append([]string(nil), d.Ingredients...)
	return d
}
