package embedding

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProvider is a scriptable Provider for chain and cache tests.
type fakeProvider struct {
	name   string
	vector []float32
	err    error
	calls  int
}

func (f *fakeProvider) Embed(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeProvider) Name() string { return f.name }

func TestChain_FirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "first", vector: []float32{1, 2}}
	second := &fakeProvider{name: "second", vector: []float32{3, 4}}

	chain, err := NewChain(zap.NewNop(), first, second)
	require.NoError(t, err)

	vec, err := chain.Embed(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, vec)
	assert.Equal(t, 0, second.calls)
}

func TestChain_FallsThroughOnFailure(t *testing.T) {
	first := &fakeProvider{name: "first", err: fmt.Errorf("quota exceeded")}
	second := &fakeProvider{name: "second", vector: []float32{3, 4}}

	chain, err := NewChain(zap.NewNop(), first, second)
	require.NoError(t, err)

	vec, err := chain.Embed(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, vec)
	assert.Equal(t, 1, first.calls)
}

func TestChain_AllFail(t *testing.T) {
	first := &fakeProvider{name: "first", err: fmt.Errorf("down")}
	second := &fakeProvider{name: "second", err: fmt.Errorf("also down")}

	chain, err := NewChain(zap.NewNop(), first, second)
	require.NoError(t, err)

	_, err = chain.Embed(context.Background(), "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "also down")
}

func TestChain_RequiresProviders(t *testing.T) {
	_, err := NewChain(zap.NewNop())
	assert.Error(t, err)
}

func TestChain_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first := &fakeProvider{name: "first", err: fmt.Errorf("cancelled")}
	second := &fakeProvider{name: "second", vector: []float32{1}}

	chain, err := NewChain(zap.NewNop(), first, second)
	require.NoError(t, err)

	_, err = chain.Embed(ctx, "some text")
	require.Error(t, err)
	assert.Equal(t, 0, second.calls)
}
