package domain

// DishRecommendation is one ranked dish as served over HTTP. Score is
// ln(probability) and is null when the probability is 0.
type DishRecommendation struct {
	Rank        int      `json:"rank"`
	DishID      string   `json:"dish_id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Available   bool     `json:"available"`
	Probability float64  `json:"probability"`
	Score       *float64 `json:"score"`
	Excluded    bool     `json:"excluded"`
}
