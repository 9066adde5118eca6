package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveChannelCode(t *testing.T) {
	require.Equal(t, DefaultChannel, ResolveChannelCode(""))
	require.Equal(t, ChannelCode("ABC"), ResolveChannelCode("ABC"))
	require.Equal(t, ChannelCode(" "), ResolveChannelCode(" "))
}

func TestNewConnectionID_Unique(t *testing.T) {
	seen := make(map[ConnectionID]struct{})
	for range 100 {
		id := NewConnectionID()
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
