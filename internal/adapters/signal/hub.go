package signal

import (
	"errors"
	"sync"

	"github.com/dkeye/radiolink/internal/app"
	"github.com/dkeye/radiolink/internal/core"
	"github.com/dkeye/radiolink/internal/domain"
	"github.com/rs/zerolog/log"
)

// Conn is the hub's view of a live connection.
type Conn interface {
	ID() domain.ConnectionID
	TrySend(data []byte) error
	Close()
}

// Hub is the core.Transport over live connections. It keeps room membership
// and resolves scopes to recipients.
type Hub struct {
	policy app.Policy

	mu    sync.RWMutex
	conns map[domain.ConnectionID]Conn
	rooms map[domain.ChannelCode]map[domain.ConnectionID]struct{}
}

func NewHub(policy app.Policy) *Hub {
	return &Hub{
		policy: policy,
		conns:  make(map[domain.ConnectionID]Conn),
		rooms:  make(map[domain.ChannelCode]map[domain.ConnectionID]struct{}),
	}
}

func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.ID()] = c
}

// Unregister drops the connection and any room membership it still has.
func (h *Hub) Unregister(id domain.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
	for code, room := range h.rooms {
		delete(room, id)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
}

func (h *Hub) JoinRoom(id domain.ConnectionID, code domain.ChannelCode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[code]
	if !ok {
		room = make(map[domain.ConnectionID]struct{})
		h.rooms[code] = room
	}
	room[id] = struct{}{}
}

func (h *Hub) LeaveRoom(id domain.ConnectionID, code domain.ChannelCode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[code]; ok {
		delete(room, id)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
}

func (h *Hub) Emit(scope core.Scope, ev core.Outbound) {
	data, err := EncodeOutbound(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Msg("encode outbound")
		return
	}
	recipients := h.resolve(scope)
	for _, c := range recipients {
		if err := c.TrySend(data); err != nil {
			h.onSendError(c, err)
		}
	}
	log.Debug().Str("module", "signal.hub").Str("event", string(ev.Name())).Int("sent_to", len(recipients)).Msg("emit")
}

func (h *Hub) resolve(scope core.Scope) []Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	switch scope.Kind {
	case core.ScopeSelf, core.ScopeConn:
		if c, ok := h.conns[scope.Conn]; ok {
			return []Conn{c}
		}
		return nil
	case core.ScopeChannel, core.ScopeChannelExcept:
		room := h.rooms[scope.Channel]
		out := make([]Conn, 0, len(room))
		for id := range room {
			if scope.Kind == core.ScopeChannelExcept && id == scope.Conn {
				continue
			}
			if c, ok := h.conns[id]; ok {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

func (h *Hub) onSendError(c Conn, err error) {
	if errors.Is(err, ErrConnClosed) {
		return
	}
	action := app.KickMember
	if h.policy != nil {
		action = h.policy.OnBackPressure(c.ID())
	}
	log.Warn().Err(err).Str("module", "signal.hub").Str("sid", string(c.ID())).Int("action", int(action)).Msg("send failed")
	switch action {
	case app.KickMember:
		c.Close()
	case app.DropFrame, app.NoAction:
	}
}

// Len reports the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
