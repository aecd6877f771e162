package recommender

import (
	"fmt"
	"sort"

	"menuReco/business/bayes"
)

const (
	DishVariable = "dish"

	StateAbsent  = "absent"
	StatePresent = "present"

	ingredientPrefix = "ingredient:"
)

// IngredientVariable is the network variable name for an ingredient.
func IngredientVariable(ingredient string) string {
	return ingredientPrefix + ingredient
}

// BuildNetwork builds the star network for c: a uniform root over dish ids
// in catalog order and one absent/present child per vocabulary ingredient.
func BuildNetwork(c *Catalog, cfg Config) (*bayes.Network, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	net := bayes.NewNetwork()
	n := c.Len()

	if err := net.AddVariable(DishVariable, c.IDs()...); err != nil {
		return nil, &InferenceInvariantError{Stage: "build", Err: err}
	}
	prior := make([]float64, n)
	for i := range prior {
		prior[i] = 1 / float64(n)
	}
	if err := net.SetCPD(bayes.CPD{Variable: DishVariable, Values: [][]float64{prior}}); err != nil {
		return nil, &InferenceInvariantError{Stage: "build", Err: err}
	}

	for _, ing := range c.vocab {
		name := IngredientVariable(ing)
		if err := net.AddVariable(name, StateAbsent, StatePresent); err != nil {
			return nil, &InferenceInvariantError{Stage: "build", Err: err}
		}

		rows := make([][]float64, n)
		for j, d := range c.dishes {
			p := cfg.PresentIfMissing
			if containsSorted(d.Ingredients, ing) {
				p = cfg.PresentIfContains
			}
			rows[j] = []float64{1 - p, p}
		}

		cpd := bayes.CPD{Variable: name, Parents: []string{DishVariable}, Values: rows}
		if err := net.SetCPD(cpd); err != nil {
			return nil, &InferenceInvariantError{Stage: "build", Err: fmt.Errorf("ingredient %q: %w", ing, err)}
		}
	}

	return net, nil
}

// evidenceFor observes "present" for every liked ingredient the catalog
// knows about. Unknown ingredients have no variable and are dropped.
func evidenceFor(c *Catalog, liked stringSet) bayes.Evidence {
	ev := make(bayes.Evidence, len(liked))
	for _, ing := range c.vocab {
		if liked.has(ing) {
			ev[IngredientVariable(ing)] = StatePresent
		}
	}
	return ev
}

func containsSorted(sorted []string, v string) bool {
	i := sort.SearchStrings(sorted, v)
	return i < len(sorted) && sorted[i] == v
}
