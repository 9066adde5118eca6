package signal

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/dkeye/radiolink/internal/app"
	"github.com/dkeye/radiolink/internal/core"
	"github.com/dkeye/radiolink/internal/domain"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id domain.ConnectionID

	mu     sync.Mutex
	frames []Envelope
	err    error
	closed bool
}

func (c *fakeConn) ID() domain.ConnectionID { return c.id }

func (c *fakeConn) TrySend(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	c.frames = append(c.frames, env)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		out = append(out, f.Type)
	}
	return out
}

type fixedPolicy app.BackpressureAction

func (p fixedPolicy) OnBackPressure(domain.ConnectionID) app.BackpressureAction {
	return app.BackpressureAction(p)
}

func newHubWith(policy app.Policy, ids ...domain.ConnectionID) (*Hub, map[domain.ConnectionID]*fakeConn) {
	hub := NewHub(policy)
	conns := make(map[domain.ConnectionID]*fakeConn, len(ids))
	for _, id := range ids {
		c := &fakeConn{id: id}
		conns[id] = c
		hub.Register(c)
	}
	return hub, conns
}

func TestHub_EmitScopes(t *testing.T) {
	req := require.New(t)
	hub, conns := newHubWith(app.SimplePolicy{}, "a", "b", "c", "d")
	hub.JoinRoom("a", "ABC")
	hub.JoinRoom("b", "ABC")
	hub.JoinRoom("c", "ABC")
	hub.JoinRoom("d", "XYZ")

	hub.Emit(core.ToSelf("a"), core.UserLeft{UserID: "self"})
	hub.Emit(core.ToOthers("ABC", "a"), core.UserJoined{UserID: "a"})
	hub.Emit(core.ToChannel("ABC"), core.SpeakerFree())
	hub.Emit(core.ToConn("d"), core.Relayed{Kind: core.SignalOffer, From: "a"})

	req.Equal([]string{"user-left", "speaker-changed"}, conns["a"].types())
	req.Equal([]string{"user-joined", "speaker-changed"}, conns["b"].types())
	req.Equal([]string{"user-joined", "speaker-changed"}, conns["c"].types())
	req.Equal([]string{"offer"}, conns["d"].types())
}

func TestHub_EmitToUnknownConnIsDropped(t *testing.T) {
	hub, conns := newHubWith(app.SimplePolicy{}, "a")
	hub.Emit(core.ToConn("ghost"), core.UserLeft{UserID: "a"})
	hub.Emit(core.ToChannel("nowhere"), core.SpeakerFree())
	require.Empty(t, conns["a"].types())
}

func TestHub_LeaveAndUnregister(t *testing.T) {
	hub, conns := newHubWith(app.SimplePolicy{}, "a", "b")
	hub.JoinRoom("a", "ABC")
	hub.JoinRoom("b", "ABC")

	hub.LeaveRoom("a", "ABC")
	hub.Emit(core.ToChannel("ABC"), core.SpeakerFree())
	require.Empty(t, conns["a"].types())
	require.Len(t, conns["b"].types(), 1)

	hub.Unregister("b")
	require.Equal(t, 1, hub.Len())
	hub.Emit(core.ToChannel("ABC"), core.SpeakerFree())
	hub.Emit(core.ToConn("b"), core.SpeakerFree())
	require.Len(t, conns["b"].types(), 1)
}

func TestHub_BackpressureKicksByDefault(t *testing.T) {
	hub, conns := newHubWith(app.SimplePolicy{}, "a", "b")
	hub.JoinRoom("a", "ABC")
	hub.JoinRoom("b", "ABC")
	conns["a"].err = ErrBackpressure

	hub.Emit(core.ToChannel("ABC"), core.SpeakerFree())

	require.True(t, conns["a"].closed)
	require.False(t, conns["b"].closed)
	require.Len(t, conns["b"].types(), 1)
}

func TestHub_BackpressurePolicies(t *testing.T) {
	hub, conns := newHubWith(fixedPolicy(app.DropFrame), "a")
	conns["a"].err = ErrBackpressure
	hub.Emit(core.ToConn("a"), core.SpeakerFree())
	require.False(t, conns["a"].closed)

	// A connection that is already closing is left alone
	hub, conns = newHubWith(app.SimplePolicy{}, "a")
	conns["a"].err = ErrConnClosed
	hub.Emit(core.ToConn("a"), core.SpeakerFree())
	require.False(t, conns["a"].closed)
}
