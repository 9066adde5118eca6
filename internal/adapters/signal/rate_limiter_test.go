package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter_SlidingWindow(t *testing.T) {
	req := require.New(t)
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(3, time.Second)
	rl.now = func() time.Time { return now }

	req.True(rl.Allow("a"))
	req.True(rl.Allow("a"))
	req.True(rl.Allow("a"))
	req.False(rl.Allow("a"))

	// Other connections have their own budget
	req.True(rl.Allow("b"))

	now = now.Add(1100 * time.Millisecond)
	req.True(rl.Allow("a"))
}

func TestRateLimiter_ForgetAndDisabled(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))
	rl.Forget("a")
	require.True(t, rl.Allow("a"))

	off := NewRateLimiter(0, time.Minute)
	for range 100 {
		require.True(t, off.Allow("a"))
	}
}
