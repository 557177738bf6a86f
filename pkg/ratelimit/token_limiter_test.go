package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLimiter_ConsumesWithinBudget(t *testing.T) {
	l := NewTokenLimiter(100)

	require.NoError(t, l.Wait(context.Background(), 40))
	assert.Equal(t, 60, l.GetRemaining())

	require.NoError(t, l.Wait(context.Background(), 60))
	assert.Equal(t, 0, l.GetRemaining())
}

func TestTokenLimiter_OversizedRequestPassesThrough(t *testing.T) {
	l := NewTokenLimiter(10)

	// A request above the whole budget must not block forever.
	require.NoError(t, l.Wait(context.Background(), 50))
}

func TestTokenLimiter_BlocksUntilContextCancelled(t *testing.T) {
	l := NewTokenLimiter(10)
	require.NoError(t, l.Wait(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
