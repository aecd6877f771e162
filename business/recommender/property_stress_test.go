//go:build !integration

package recommender

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

const (
	propertyRuns      = 500
	propertyMaxDishes = 12
)

var propertyPool = []string{
	"masa", "mozzarella", "tomate", "lechuga", "huevo",
	"pan", "carne molida", "bechamel", "spaghetti", "mascarpone",
}

func randomSubset(rng *rand.Rand, pool []string, maxLen int) []string {
	n := rng.Intn(maxLen + 1)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pool[rng.Intn(len(pool))])
	}
	return out
}

func randomCase(rng *rand.Rand) ([]Dish, Profile, map[string]bool) {
	n := 1 + rng.Intn(propertyMaxDishes)
	dishes := make([]Dish, n)
	ids := make([]string, n)
	for i := range dishes {
		ids[i] = fmt.Sprintf("d%d", i)
		dishes[i] = Dish{ID: ids[i], Ingredients: randomSubset(rng, propertyPool, 4)}
	}

	profile := Profile{
		LikedIngredients:    randomSubset(rng, propertyPool, 4),
		DislikedIngredients: randomSubset(rng, propertyPool, 2),
		Allergies:           randomSubset(rng, propertyPool, 1),
		Restrictions:        randomSubset(rng, propertyPool, 1),
		LikedDishes:         randomSubset(rng, ids, 2),
		DislikedDishes:      randomSubset(rng, ids, 1),
	}

	var avail map[string]bool
	if rng.Intn(2) == 0 {
		avail = make(map[string]bool)
		for _, ing := range randomSubset(rng, propertyPool, 3) {
			avail[ing] = rng.Intn(2) == 0
		}
	}
	return dishes, profile, avail
}

func TestRecommend_RandomizedProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < propertyRuns; run++ {
		dishes, profile, avail := randomCase(rng)
		sets := newProfileSets(profile)

		recs, err := Recommend(dishes, profile, avail)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if len(recs) != len(dishes) {
			t.Fatalf("run %d: got %d recommendations for %d dishes", run, len(recs), len(dishes))
		}

		sum := 0.0
		allVetoed := true
		for i, r := range recs {
			sum += r.Probability

			vetoed := vetoReason(r.Dish, sets) != VetoNone
			if vetoed != r.Excluded {
				t.Fatalf("run %d: dish %s excluded=%v, vetoed=%v", run, r.ID, r.Excluded, vetoed)
			}
			if vetoed && r.Probability != 0 {
				t.Fatalf("run %d: vetoed dish %s has probability %v", run, r.ID, r.Probability)
			}
			if !vetoed {
				allVetoed = false
			}
			if i > 0 && recs[i-1].Probability < r.Probability {
				t.Fatalf("run %d: not sorted at %d", run, i)
			}
		}

		if allVetoed {
			if sum != 0 {
				t.Fatalf("run %d: every dish vetoed but probabilities sum to %v", run, sum)
			}
		} else if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("run %d: probabilities sum to %v", run, sum)
		}

		again, err := Recommend(dishes, profile, avail)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		for i := range recs {
			if recs[i].ID != again[i].ID || recs[i].Probability != again[i].Probability {
				t.Fatalf("run %d: second call differs at %d", run, i)
			}
		}
	}
	t.Logf("checked %d random catalogs", propertyRuns)
}

func TestPosterior_NoEvidenceIsUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 100; run++ {
		dishes, _, _ := randomCase(rng)
		post, err := defaultRecommender.Posterior(dishes, Profile{})
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		want := 1 / float64(len(dishes))
		for id, p := range post {
			if math.Abs(p-want) > 1e-12 {
				t.Fatalf("run %d: dish %s has prior %v, want %v", run, id, p, want)
			}
		}
	}
}
