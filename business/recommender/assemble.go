package recommender

import (
	"math"
	"sort"
)

// Recommendation is a dish with its final probability. Score is
// ln(Probability), or -Inf when Probability is 0, and has no JSON encoding
// for that reason. Excluded is set only for hard vetoes; a dish whose weight
// reached 0 through penalties is not excluded, just ranked last.
type Recommendation struct {
	Dish
	Probability float64 `json:"probability"`
	Score       float64 `json:"-"`
	Excluded    bool    `json:"excluded"`
}

func logScore(p float64) float64 {
	if p > 0 {
		return math.Log(p)
	}
	return math.Inf(-1)
}

// rankOrder returns catalog indexes sorted by probability, highest first.
// Ties keep catalog order.
func rankOrder(breakdowns []Breakdown) []int {
	order := make([]int, len(breakdowns))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return breakdowns[order[a]].Probability > breakdowns[order[b]].Probability
	})
	return order
}

func assemble(c *Catalog, breakdowns []Breakdown) []Recommendation {
	order := rankOrder(breakdowns)
	out := make([]Recommendation, 0, len(order))
	for _, i := range order {
		b := breakdowns[i]
		out = append(out, Recommendation{
			Dish:        c.dishes[i].clone(),
			Probability: b.Probability,
			Score:       logScore(b.Probability),
			Excluded:    b.Vetoed,
		})
	}
	return out
}
