package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"menuReco/business/dish"
	"menuReco/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memDishStore struct {
	rows map[string]domain.Dish
}

func (m *memDishStore) Create(_ context.Context, d *domain.Dish) error {
	m.rows[d.ID] = *d
	return nil
}

func (m *memDishStore) FindByID(_ context.Context, id string) (domain.Dish, error) {
	d, ok := m.rows[id]
	if !ok {
		return domain.Dish{}, errors.New("dish not found")
	}
	return d, nil
}

func (m *memDishStore) FindAll(context.Context) ([]domain.Dish, error) {
	out := make([]domain.Dish, 0, len(m.rows))
	for _, d := range m.rows {
		out = append(out, d)
	}
	return out, nil
}

func (m *memDishStore) Update(_ context.Context, d *domain.Dish) error {
	m.rows[d.ID] = *d
	return nil
}

func (m *memDishStore) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func TestDishHandler_CRUD(t *testing.T) {
	store := &memDishStore{rows: map[string]domain.Dish{}}
	h := NewDishHandler(dish.NewDishService(store))

	c, rec := jsonContext(http.MethodPost, "/api/v1/dishes", `{"id":"p1","name":"Pizza","ingredients":["Masa","Mozzarella"]}`, 1)
	require.NoError(t, h.CreateDish(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, store.rows, "p1")
	assert.Equal(t, []string{"masa", "mozzarella"}, []string(store.rows["p1"].Ingredients))
	assert.True(t, store.rows["p1"].Available)

	c, rec = jsonContext(http.MethodPost, "/api/v1/dishes", `{"id":"p1","name":"Pizza","ingredients":["masa"]}`, 1)
	require.NoError(t, h.CreateDish(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	c, rec = jsonContext(http.MethodPost, "/api/v1/dishes", `{"id":"p2","name":"Nada","ingredients":[]}`, 1)
	require.NoError(t, h.CreateDish(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = jsonContext(http.MethodPut, "/api/v1/dishes/p1", `{"name":"Pizza","ingredients":["masa"],"available":false}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	require.NoError(t, h.UpdateDish(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, store.rows["p1"].Available)

	c, rec = jsonContext(http.MethodGet, "/api/v1/dishes/p9", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("p9")
	require.NoError(t, h.GetDishByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = jsonContext(http.MethodDelete, "/api/v1/dishes/p1", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	require.NoError(t, h.DeleteDish(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.rows)
}
