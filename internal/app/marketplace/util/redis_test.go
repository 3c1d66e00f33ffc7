package util

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/internal/app/marketplace/entity"
)

func newTestCache(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestProductCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	products := []entity.ProductWithCategory{
		{
			Product:  entity.Product{ID: primitive.NewObjectID(), Name: "Pen", Price: 2, Stock: 10},
			Category: entity.Category{ID: primitive.NewObjectID(), Name: "Office"},
		},
	}

	err := cache.SetProducts(ctx, products, time.Hour)
	require.NoError(t, err)

	got, err := cache.GetProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Pen", got[0].Name)
	assert.Equal(t, "Office", got[0].Category.Name)
}

func TestProductCache_MissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t)

	got, err := cache.GetProducts(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	products := []entity.ProductWithCategory{
		{Product: entity.Product{ID: primitive.NewObjectID(), Name: "Pen"}},
	}
	require.NoError(t, cache.SetProducts(ctx, products, time.Hour))

	require.NoError(t, cache.DeleteProducts(ctx))

	got, err := cache.GetProducts(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	products := []entity.ProductWithCategory{
		{Product: entity.Product{ID: primitive.NewObjectID(), Name: "Pen"}},
	}
	require.NoError(t, cache.SetProducts(ctx, products, time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := cache.GetProducts(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
