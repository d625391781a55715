package provisioning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deep-archive/setup/internal/config"
)

func TestNewContext(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	observer := NewMockObserver()

	ctx := NewContext(context.Background(), cfg, observer)

	require.NotNil(t, ctx)
	assert.Equal(t, cfg, ctx.Config)
	assert.Equal(t, observer, ctx.Observer)
	require.NotNil(t, ctx.State)
	assert.Equal(t, StageInit, ctx.State.Stage)
}

func TestNewContext_NilObserverDiscards(t *testing.T) {
	t.Parallel()

	ctx := NewContext(context.Background(), config.Default(), nil)

	require.NotNil(t, ctx.Observer)
	ctx.Observer.Printf("dropped")
}
