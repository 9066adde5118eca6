package signal

import (
	"testing"
	"time"

	"github.com/dkeye/radiolink/internal/app"
	"github.com/dkeye/radiolink/internal/app/orch"
	"github.com/dkeye/radiolink/internal/domain"
	"github.com/stretchr/testify/require"
)

func newLimitedController(limit int) *SignalWSController {
	hub := NewHub(app.SimplePolicy{})
	return NewSignalWSController(orch.New(hub), hub, NewRateLimiter(limit, time.Minute), Options{})
}

func accept(ctl *SignalWSController, id domain.ConnectionID) *fakeConn {
	c := &fakeConn{id: id}
	ctl.Hub.Register(c)
	ctl.Orch.Connect(id)
	return c
}

func TestHandleSignal_ReleaseSpeakIgnoresRateLimit(t *testing.T) {
	req := require.New(t)

	// Given a speaker that has used up its whole rate budget
	ctl := newLimitedController(2)
	alice := accept(ctl, "alice")
	ctl.handleSignal(alice, []byte(`{"type":"join-channel","payload":{"nickname":"Alice","channelCode":"ABC"}}`))
	ctl.handleSignal(alice, []byte(`{"type":"request-speak"}`))
	req.False(ctl.Limiter.Allow("alice"))

	ch, ok := ctl.Orch.Channels.Get("ABC")
	req.True(ok)
	_, _, held := ch.Speaker()
	req.True(held)

	// When it releases the floor
	ctl.handleSignal(alice, []byte(`{"type":"release-speak"}`))

	// Then the floor is free and the connection stays open
	_, _, held = ch.Speaker()
	req.False(held)
	req.False(alice.closed)
	req.Equal([]string{"welcome", "speaker-changed", "speaker-changed"}, alice.types())
}

func TestHandleSignal_OverLimitClosesConnection(t *testing.T) {
	req := require.New(t)

	// Given two members where alice has one frame of budget left
	ctl := newLimitedController(2)
	alice := accept(ctl, "alice")
	bob := accept(ctl, "bob")
	ctl.handleSignal(alice, []byte(`{"type":"join-channel","payload":{"nickname":"Alice","channelCode":"ABC"}}`))
	ctl.handleSignal(bob, []byte(`{"type":"join-channel","payload":{"nickname":"Bob","channelCode":"ABC"}}`))
	ctl.handleSignal(alice, []byte(`{"type":"ice-candidate","payload":{"toUserId":"bob","candidate":{"candidate":"c1"}}}`))
	req.Equal([]string{"welcome", "ice-candidate"}, bob.types())
	req.False(alice.closed)

	// When alice sends past the limit
	ctl.handleSignal(alice, []byte(`{"type":"ice-candidate","payload":{"toUserId":"bob","candidate":{"candidate":"c2"}}}`))

	// Then her connection is closed rather than the frame silently dropped
	req.True(alice.closed)
	req.Equal([]string{"welcome", "ice-candidate"}, bob.types())
}

func TestHandleSignal_PingIsNotCounted(t *testing.T) {
	req := require.New(t)
	ctl := newLimitedController(1)
	alice := accept(ctl, "alice")

	for range 5 {
		ctl.handleSignal(alice, []byte(`{"type":"ping"}`))
	}
	req.False(alice.closed)
	req.True(ctl.Limiter.Allow("alice"))
	req.Equal([]string{"pong", "pong", "pong", "pong", "pong"}, alice.types())
}
