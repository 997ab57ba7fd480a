package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cachedTree struct {
	Name     string   `json:"name"`
	Children []string `json:"children"`
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	var miss cachedTree
	assert.False(t, c.Get(ctx, "category:tree:active", &miss))

	c.Set(ctx, "category:tree:active", cachedTree{Name: "Football", Children: []string{"Ballons"}}, time.Minute)

	var got cachedTree
	assert.True(t, c.Get(ctx, "category:tree:active", &got))
	assert.Equal(t, "Football", got.Name)
	assert.Equal(t, []string{"Ballons"}, got.Children)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set(ctx, "k", cachedTree{Name: "Football"}, time.Minute)

	var first cachedTree
	assert.True(t, c.Get(ctx, "k", &first))
	first.Name = "mutated"

	var second cachedTree
	assert.True(t, c.Get(ctx, "k", &second))
	assert.Equal(t, "Football", second.Name)
}

func TestMemoryCache_DeleteAndPrefix(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set(ctx, "page:category:football", 1, time.Minute)
	c.Set(ctx, "page:category:tennis", 2, time.Minute)
	c.Set(ctx, "category:tree:active", 3, time.Minute)

	c.DeletePrefix(ctx, "page:")

	var v int
	assert.False(t, c.Get(ctx, "page:category:football", &v))
	assert.False(t, c.Get(ctx, "page:category:tennis", &v))
	assert.True(t, c.Get(ctx, "category:tree:active", &v))
	assert.Equal(t, 3, v)

	c.Delete(ctx, "category:tree:active")
	assert.False(t, c.Get(ctx, "category:tree:active", &v))

	c.Set(ctx, "a", 1, time.Minute)
	c.Flush(ctx)
	assert.False(t, c.Get(ctx, "a", &v))
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set(ctx, "short", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	var v int
	assert.False(t, c.Get(ctx, "short", &v))
}
