package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := New(3, time.Minute)

	require.True(t, rl.Allow("user-a"))
	require.True(t, rl.Allow("user-a"))
	require.True(t, rl.Allow("user-a"))
	require.False(t, rl.Allow("user-a"))

	// A different key has its own window
	require.True(t, rl.Allow("user-b"))
}

func TestGetRemaining(t *testing.T) {
	rl := New(5, time.Minute)

	require.Equal(t, 5, rl.GetRemaining("user-a"))
	rl.Allow("user-a")
	rl.Allow("user-a")
	require.Equal(t, 3, rl.GetRemaining("user-a"))
}

func TestWindowExpiry(t *testing.T) {
	rl := New(1, 10*time.Millisecond)

	require.True(t, rl.Allow("user-a"))
	require.False(t, rl.Allow("user-a"))

	time.Sleep(15 * time.Millisecond)
	require.True(t, rl.Allow("user-a"))
}
