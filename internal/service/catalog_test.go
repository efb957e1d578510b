package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpetrakov/webshop/internal/models"
	"github.com/vpetrakov/webshop/internal/repo"
)

func TestCreateProductValidation(t *testing.T) {
	store, pub := newTestStore(t)
	svc := &CatalogService{Repo: store, Publisher: pub}
	ctx := context.Background()

	err := svc.CreateProduct(ctx, &models.Product{Name: "  ", Price: 1})
	require.ErrorIs(t, err, ErrValidation)

	err = svc.CreateProduct(ctx, &models.Product{Name: "a", Price: -1})
	require.ErrorIs(t, err, ErrValidation)

	require.Empty(t, pub.Events())
}

func TestProductLifecycle(t *testing.T) {
	store, pub := newTestStore(t)
	svc := &CatalogService{Repo: store, Publisher: pub}
	ctx := context.Background()

	prod := &models.Product{Name: "widget", Description: "round", Price: 9.99}
	require.NoError(t, svc.CreateProduct(ctx, prod))
	require.NotZero(t, prod.ID)

	got, err := svc.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "widget", got.Name)

	updated, err := svc.UpdateProduct(ctx, prod.ID, models.Product{Name: "widget v2", Price: 11})
	require.NoError(t, err)
	assert.Equal(t, "widget v2", updated.Name)

	require.NoError(t, svc.DeleteProduct(ctx, prod.ID))
	_, err = svc.GetProduct(ctx, prod.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)

	topics := make([]string, 0)
	for _, e := range pub.Events() {
		topics = append(topics, e.Topic)
	}
	assert.Equal(t, []string{"product_events", "product_events", "product_events"}, topics)
}
