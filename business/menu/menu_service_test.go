package menu

import (
	"context"
	"errors"
	"math"
	"testing"

	"menuReco/business/recommender"
	"menuReco/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeDishes struct {
	rows []domain.Dish
	err  error
}

func (f fakeDishes) FindAll(context.Context) ([]domain.Dish, error) {
	return f.rows, f.err
}

type fakeProfiles map[uint]domain.UserProfile

func (f fakeProfiles) FindByUserID(_ context.Context, id uint) (domain.UserProfile, bool, error) {
	p, ok := f[id]
	return p, ok, nil
}

type fakeAvailability struct {
	avail map[string]bool
	err   error
}

func (f fakeAvailability) GetAll(context.Context) (map[string]bool, error) {
	return f.avail, f.err
}

func catalog() []domain.Dish {
	return []domain.Dish{
		{ID: "p1", Name: "Pizza", Ingredients: datatypes.JSONSlice[string]{"mozzarella", "masa"}, Available: true},
		{ID: "p2", Name: "Ensalada", Ingredients: datatypes.JSONSlice[string]{"lechuga"}, Available: true},
		{ID: "p3", Name: "Pan", Ingredients: datatypes.JSONSlice[string]{"pan"}, Available: false},
	}
}

func newService(t *testing.T, dishes DishRepository, profiles ProfileRepository, avail AvailabilityRepository, topN int) *MenuService {
	t.Helper()
	rec, err := recommender.New(recommender.DefaultConfig())
	require.NoError(t, err)
	return NewMenuService(dishes, profiles, avail, rec, topN)
}

func TestMenuService_RecommendRanksAndTruncates(t *testing.T) {
	profiles := fakeProfiles{1: {UserID: 1, LikedIngredients: datatypes.JSONSlice[string]{"lechuga"}}}
	svc := newService(t, fakeDishes{rows: catalog()}, profiles, nil, 10)

	all, err := svc.Recommend(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "p2", all[0].DishID)
	assert.Equal(t, 1, all[0].Rank)
	assert.Equal(t, 3, all[2].Rank)

	sum := 0.0
	for _, r := range all {
		sum += r.Probability
		require.NotNil(t, r.Score)
		assert.InDelta(t, math.Log(r.Probability), *r.Score, 1e-12)
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	top, err := svc.Recommend(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, all[0], top[0])
}

func TestMenuService_DefaultTopN(t *testing.T) {
	svc := newService(t, fakeDishes{rows: catalog()}, fakeProfiles{}, nil, 2)

	recs, err := svc.Recommend(context.Background(), 9, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestMenuService_VetoedDishHasNullScore(t *testing.T) {
	profiles := fakeProfiles{1: {UserID: 1, Allergies: datatypes.JSONSlice[string]{"mozzarella"}}}
	svc := newService(t, fakeDishes{rows: catalog()}, profiles, nil, 0)

	recs, err := svc.Recommend(context.Background(), 1, 0)
	require.NoError(t, err)

	last := recs[len(recs)-1]
	assert.Equal(t, "p1", last.DishID)
	assert.True(t, last.Excluded)
	assert.Equal(t, 0.0, last.Probability)
	assert.Nil(t, last.Score)
}

func TestMenuService_AvailabilityFailureIsSkipped(t *testing.T) {
	profiles := fakeProfiles{}
	broken := fakeAvailability{err: errors.New("redis down")}
	withMap := fakeAvailability{avail: map[string]bool{"lechuga": false}}

	plain, err := newService(t, fakeDishes{rows: catalog()}, profiles, nil, 0).Recommend(context.Background(), 1, 0)
	require.NoError(t, err)

	degraded, err := newService(t, fakeDishes{rows: catalog()}, profiles, broken, 0).Recommend(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, plain, degraded)

	penalized, err := newService(t, fakeDishes{rows: catalog()}, profiles, withMap, 0).Recommend(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "p2", penalized[len(penalized)-1].DishID)
}

func TestMenuService_Errors(t *testing.T) {
	svc := newService(t, fakeDishes{}, fakeProfiles{}, nil, 0)
	_, err := svc.Recommend(context.Background(), 1, 0)
	assert.ErrorIs(t, err, recommender.ErrEmptyCatalog)

	svc = newService(t, fakeDishes{err: errors.New("db down")}, fakeProfiles{}, nil, 0)
	_, err = svc.Explain(context.Background(), 1)
	assert.ErrorContains(t, err, "db down")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Recommend(ctx, 1, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMenuService_ExplainRankOrder(t *testing.T) {
	profiles := fakeProfiles{1: {UserID: 1, LikedDishes: datatypes.JSONSlice[string]{"p2"}}}
	svc := newService(t, fakeDishes{rows: catalog()}, profiles, nil, 0)

	out, err := svc.Explain(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "p2", out[0].DishID)
	assert.Equal(t, recommender.DefaultConfig().LikedDishBoost, out[0].BoostFactor)
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
	assert.Equal(t, "abc", TraceIDFromContext(WithTraceID(context.Background(), "abc")))
}
