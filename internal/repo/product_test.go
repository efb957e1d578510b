package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vpetrakov/webshop/internal/models"
)

func TestGetProductNotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetProduct(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProductOverwritesFields(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	prod := createProduct(t, r, "widget", 9.99)

	updated, err := r.UpdateProduct(ctx, prod.ID, models.Product{
		Name:        "widget v2",
		Description: "",
		Price:       12.50,
		ImageURL:    "https://img.example.com/w2.png",
	})
	require.NoError(t, err)
	require.Equal(t, "widget v2", updated.Name)
	require.Equal(t, "", updated.Description)
	require.InDelta(t, 12.50, updated.Price, 0.001)

	_, err = r.UpdateProduct(ctx, 999, models.Product{Name: "x", Price: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetProductsPagination(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		createProduct(t, r, "p", 1)
	}

	total, items, err := r.GetProducts(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(15), total)
	require.Len(t, items, 10)

	_, items, err = r.GetProducts(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, items, 5)
}
