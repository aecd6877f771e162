package recommender

import (
	"fmt"
	"math"

	"menuReco/business/bayes"
)

// posteriorTolerance bounds how far the engine's distribution may drift
// from summing to 1.
const posteriorTolerance = 1e-9

// Posterior maps dish id to P(dish | liked ingredients) before reranking.
type Posterior map[string]float64

// Recommender is safe for concurrent use.
type Recommender struct {
	cfg    Config
	engine bayes.Engine
}

type Option func(*Recommender)

// WithEngine replaces the default variable elimination engine.
func WithEngine(e bayes.Engine) Option {
	return func(r *Recommender) {
		if e != nil {
			r.engine = e
		}
	}
}

func New(cfg Config, opts ...Option) (*Recommender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Recommender{
		cfg:    cfg,
		engine: bayes.VariableElimination{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

var defaultRecommender = &Recommender{
	cfg:    DefaultConfig(),
	engine: bayes.VariableElimination{},
}

// Recommend ranks dishes for profile with the default configuration.
// A nil availability map skips the availability penalty.
func Recommend(dishes []Dish, profile Profile, availability map[string]bool) ([]Recommendation, error) {
	return defaultRecommender.Recommend(dishes, profile, availability)
}

func (r *Recommender) Config() Config {
	return r.cfg
}

// Recommend returns every catalog dish with its final probability, highest
// first. Probabilities sum to 1, or are all 0 when every dish was vetoed.
func (r *Recommender) Recommend(dishes []Dish, profile Profile, availability map[string]bool) ([]Recommendation, error) {
	c, breakdowns, err := r.run(dishes, profile, availability)
	if err != nil {
		return nil, err
	}
	return assemble(c, breakdowns), nil
}

// Explain returns the per-stage breakdown of every dish in the same order
// Recommend ranks them.
func (r *Recommender) Explain(dishes []Dish, profile Profile, availability map[string]bool) ([]Breakdown, error) {
	_, breakdowns, err := r.run(dishes, profile, availability)
	if err != nil {
		return nil, err
	}
	out := make([]Breakdown, 0, len(breakdowns))
	for _, i := range rankOrder(breakdowns) {
		out = append(out, breakdowns[i])
	}
	return out, nil
}

// Posterior returns the raw network posterior for the profile's liked
// ingredients, with no reranking applied.
func (r *Recommender) Posterior(dishes []Dish, profile Profile) (Posterior, error) {
	c, err := NewCatalog(dishes)
	if err != nil {
		return nil, err
	}
	probs, err := r.posterior(c, newProfileSets(profile))
	if err != nil {
		return nil, err
	}
	out := make(Posterior, len(probs))
	for i, d := range c.dishes {
		out[d.ID] = probs[i]
	}
	return out, nil
}

func (r *Recommender) run(dishes []Dish, profile Profile, availability map[string]bool) (*Catalog, []Breakdown, error) {
	c, err := NewCatalog(dishes)
	if err != nil {
		return nil, nil, err
	}
	p := newProfileSets(profile)

	posterior, err := r.posterior(c, p)
	if err != nil {
		return nil, nil, err
	}

	return c, rerank(c, posterior, p, newAvailability(availability), r.cfg), nil
}

// posterior runs inference and checks the result is a distribution over
// the catalog's dishes, in catalog order.
func (r *Recommender) posterior(c *Catalog, p profileSets) ([]float64, error) {
	net, err := BuildNetwork(c, r.cfg)
	if err != nil {
		return nil, err
	}

	dist, err := r.engine.Query(net, DishVariable, evidenceFor(c, p.likedIngredients))
	if err != nil {
		return nil, &InferenceInvariantError{Stage: "inference", Err: err}
	}

	if len(dist.Probs) != c.Len() || len(dist.States) != c.Len() {
		return nil, &InferenceInvariantError{
			Stage: "posterior",
			Err:   fmt.Errorf("got %d states for %d dishes", len(dist.Probs), c.Len()),
		}
	}

	sum := 0.0
	for i, prob := range dist.Probs {
		if dist.States[i] != c.dishes[i].ID {
			return nil, &InferenceInvariantError{
				Stage: "posterior",
				Err:   fmt.Errorf("state %d is %q, want %q", i, dist.States[i], c.dishes[i].ID),
			}
		}
		if math.IsNaN(prob) || prob < 0 || prob > 1 {
			return nil, &InferenceInvariantError{
				Stage: "posterior",
				Err:   fmt.Errorf("dish %q has probability %v", c.dishes[i].ID, prob),
			}
		}
		sum += prob
	}
	if math.Abs(sum-1) > posteriorTolerance {
		return nil, &InferenceInvariantError{
			Stage: "posterior",
			Err:   fmt.Errorf("posterior sums to %v", sum),
		}
	}

	return dist.Probs, nil
}
