package recommender

type VetoReason string

const (
	VetoNone         VetoReason = ""
	VetoDislikedDish VetoReason = "disliked_dish"
	VetoAllergy      VetoReason = "allergy"
	VetoRestriction  VetoReason = "restriction"
)

// Breakdown shows how one dish's final probability came about. Factors
// for stages that did not run are 1.
type Breakdown struct {
	DishID     string     `json:"dish_id"`
	Posterior  float64    `json:"posterior"`
	Vetoed     bool       `json:"vetoed"`
	VetoReason VetoReason `json:"veto_reason,omitempty"`

	AvailabilityFactor float64 `json:"availability_factor"`
	UnavailableCount   int     `json:"unavailable_count"`
	DislikeFactor      float64 `json:"dislike_factor"`
	Similarity         float64 `json:"similarity"`
	SimilarityFactor   float64 `json:"similarity_factor"`
	BoostFactor        float64 `json:"boost_factor"`

	// Weight is the value before renormalization.
	Weight      float64 `json:"weight"`
	Probability float64 `json:"probability"`
}

func vetoReason(d Dish, p profileSets) VetoReason {
	switch {
	case p.dislikedDishes.has(d.ID):
		return VetoDislikedDish
	case p.allergies.intersects(d.Ingredients):
		return VetoAllergy
	case p.restrictions.intersects(d.Ingredients):
		return VetoRestriction
	}
	return VetoNone
}

// rerank applies, in order: vetoes, availability and dislike penalties,
// similarity to liked dishes, the liked-dish boost, and renormalization
// over the whole catalog. posterior is indexed like c.dishes.
func rerank(c *Catalog, posterior []float64, p profileSets, avail availability, cfg Config) []Breakdown {
	out := make([]Breakdown, len(c.dishes))
	for i, d := range c.dishes {
		out[i] = Breakdown{
			DishID:             d.ID,
			Posterior:          posterior[i],
			Weight:             posterior[i],
			AvailabilityFactor: 1,
			DislikeFactor:      1,
			SimilarityFactor:   1,
			BoostFactor:        1,
		}
		if r := vetoReason(d, p); r != VetoNone {
			out[i].Vetoed = true
			out[i].VetoReason = r
			out[i].Weight = 0
		}
	}

	for i, d := range c.dishes {
		b := &out[i]
		if b.Weight <= 0 {
			continue
		}
		if avail != nil {
			for _, ing := range d.Ingredients {
				if !avail.available(ing) {
					b.Weight *= cfg.UnavailablePenalty
					b.AvailabilityFactor *= cfg.UnavailablePenalty
					b.UnavailableCount++
				}
			}
		}
		if p.dislikedIngredients.intersects(d.Ingredients) {
			b.Weight *= cfg.DislikedIngredientPenalty
			b.DislikeFactor = cfg.DislikedIngredientPenalty
		}
	}

	if ref := referenceIngredients(c, p.likedDishes); len(ref) > 0 {
		for i, d := range c.dishes {
			b := &out[i]
			if b.Weight <= 0 {
				continue
			}
			b.Similarity = jaccard(d.Ingredients, ref)
			b.SimilarityFactor = 1 + cfg.SimilarityWeight*b.Similarity
			b.Weight *= b.SimilarityFactor
		}
	}

	for i, d := range c.dishes {
		b := &out[i]
		if b.Weight > 0 && p.likedDishes.has(d.ID) {
			b.Weight *= cfg.LikedDishBoost
			b.BoostFactor = cfg.LikedDishBoost
		}
	}

	total := 0.0
	for _, b := range out {
		total += b.Weight
	}
	if total > 0 {
		for i := range out {
			out[i].Probability = out[i].Weight / total
		}
	}
	return out
}

// referenceIngredients is the union of ingredients of the liked dishes that
// exist in the catalog. Vetoed liked dishes still contribute.
func referenceIngredients(c *Catalog, liked stringSet) stringSet {
	ref := make(stringSet)
	for _, d := range c.dishes {
		if !liked.has(d.ID) {
			continue
		}
		for _, ing := range d.Ingredients {
			ref[ing] = struct{}{}
		}
	}
	return ref
}

// jaccard of a de-duplicated ingredient list against ref.
func jaccard(ingredients []string, ref stringSet) float64 {
	inter := 0
	for _, ing := range ingredients {
		if ref.has(ing) {
			inter++
		}
	}
	union := len(ingredients) + len(ref) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
