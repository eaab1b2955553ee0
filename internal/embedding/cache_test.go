package embedding

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_HitAvoidsProviderCall(t *testing.T) {
	inner := &fakeProvider{name: "inner", vector: []float32{1, 2}}
	cache := NewCache(inner, time.Minute, 10)

	vec, err := cache.Embed(context.Background(), "Backend Engineer at Acme")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, vec)

	_, err = cache.Embed(context.Background(), "Backend Engineer at Acme")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestCache_KeyNormalizesWhitespaceAndCase(t *testing.T) {
	inner := &fakeProvider{name: "inner", vector: []float32{1}}
	cache := NewCache(inner, time.Minute, 10)

	_, err := cache.Embed(context.Background(), "Backend  Engineer")
	require.NoError(t, err)
	_, err = cache.Embed(context.Background(), "backend engineer")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCache_ExpiredEntryRefetches(t *testing.T) {
	inner := &fakeProvider{name: "inner", vector: []float32{1}}
	cache := NewCache(inner, time.Nanosecond, 10)

	_, err := cache.Embed(context.Background(), "text")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = cache.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCache_FailureNotCached(t *testing.T) {
	inner := &fakeProvider{name: "inner", err: fmt.Errorf("down")}
	cache := NewCache(inner, time.Minute, 10)

	_, err := cache.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_BoundedSize(t *testing.T) {
	inner := &fakeProvider{name: "inner", vector: []float32{1}}
	cache := NewCache(inner, time.Minute, 3)

	for i := 0; i < 5; i++ {
		_, err := cache.Embed(context.Background(), fmt.Sprintf("text %d", i))
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, cache.Len(), 3)
}
