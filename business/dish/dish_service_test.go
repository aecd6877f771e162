package dish

import (
	"context"
	"errors"
	"sort"
	"testing"

	"menuReco/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type memDishRepo struct {
	rows      map[string]domain.Dish
	createErr error
}

func newMemDishRepo(dishes ...domain.Dish) *memDishRepo {
	r := &memDishRepo{rows: make(map[string]domain.Dish)}
	for _, d := range dishes {
		r.rows[d.ID] = d
	}
	return r
}

func (r *memDishRepo) Create(_ context.Context, d *domain.Dish) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.rows[d.ID] = *d
	return nil
}

func (r *memDishRepo) FindByID(_ context.Context, id string) (domain.Dish, error) {
	d, ok := r.rows[id]
	if !ok {
		return domain.Dish{}, errors.New("dish not found")
	}
	return d, nil
}

func (r *memDishRepo) FindAll(context.Context) ([]domain.Dish, error) {
	out := make([]domain.Dish, 0, len(r.rows))
	for _, d := range r.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDishRepo) Update(_ context.Context, d *domain.Dish) error {
	r.rows[d.ID] = *d
	return nil
}

func (r *memDishRepo) Delete(_ context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

func TestDishService_CreateNormalizes(t *testing.T) {
	repo := newMemDishRepo()
	svc := NewDishService(repo)

	got, err := svc.CreateDish(context.Background(), &domain.Dish{
		ID:          " p1 ",
		Name:        " Pizza ",
		Ingredients: datatypes.JSONSlice[string]{"Masa", "mozzarella ", "MASA", " "},
		Available:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "Pizza", got.Name)
	assert.Equal(t, datatypes.JSONSlice[string]{"masa", "mozzarella"}, got.Ingredients)
	assert.Contains(t, repo.rows, "p1")

	_, err = svc.CreateDish(context.Background(), &domain.Dish{ID: "p1", Name: "Otra", Ingredients: datatypes.JSONSlice[string]{"pan"}})
	assert.ErrorIs(t, err, ErrDishExists)
}

func TestDishService_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		dish domain.Dish
		want error
	}{
		{"missing id", domain.Dish{Name: "x", Ingredients: datatypes.JSONSlice[string]{"a"}}, ErrIDRequired},
		{"missing name", domain.Dish{ID: "x", Ingredients: datatypes.JSONSlice[string]{"a"}}, ErrNameRequired},
		{"blank ingredients", domain.Dish{ID: "x", Name: "x", Ingredients: datatypes.JSONSlice[string]{" "}}, ErrNoIngredients},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemDishRepo()
			d := tt.dish
			_, err := NewDishService(repo).CreateDish(context.Background(), &d)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.rows)
		})
	}
}

func TestDishService_UpdateAndDelete(t *testing.T) {
	repo := newMemDishRepo(domain.Dish{ID: "p1", Name: "Pizza", Ingredients: datatypes.JSONSlice[string]{"masa"}})
	svc := NewDishService(repo)
	ctx := context.Background()

	updated, err := svc.UpdateDish(ctx, &domain.Dish{ID: "p1", Name: "Pizza napolitana", Ingredients: datatypes.JSONSlice[string]{"Tomate", "masa"}})
	require.NoError(t, err)
	assert.Equal(t, "Pizza napolitana", updated.Name)
	assert.Equal(t, datatypes.JSONSlice[string]{"masa", "tomate"}, updated.Ingredients)

	_, err = svc.UpdateDish(ctx, &domain.Dish{ID: "ghost", Name: "x", Ingredients: datatypes.JSONSlice[string]{"a"}})
	assert.ErrorIs(t, err, ErrDishNotFound)

	require.NoError(t, svc.DeleteDish(ctx, "p1"))
	assert.ErrorIs(t, svc.DeleteDish(ctx, "p1"), ErrDishNotFound)
	assert.ErrorIs(t, svc.DeleteDish(ctx, " "), ErrIDRequired)

	_, err = svc.GetDishByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrDishNotFound)
}

func TestDishService_CreateRepoFailure(t *testing.T) {
	repo := newMemDishRepo()
	repo.createErr = errors.New("db down")

	_, err := NewDishService(repo).CreateDish(context.Background(), &domain.Dish{ID: "p1", Name: "Pizza", Ingredients: datatypes.JSONSlice[string]{"masa"}})
	assert.ErrorContains(t, err, "db down")
}
