// Package coretest provides an in-memory core.Transport that records deliveries.
package coretest

import (
	"sync"

	"github.com/dkeye/radiolink/internal/core"
	"github.com/dkeye/radiolink/internal/domain"
)

// Delivery is one event as received by one connection.
type Delivery struct {
	To    domain.ConnectionID
	Event core.Outbound
}

// Recorder resolves scopes against its own room table, the way a socket
// substrate would, and keeps every delivery in order.
type Recorder struct {
	mu         sync.Mutex
	rooms      map[domain.ChannelCode]map[domain.ConnectionID]struct{}
	deliveries []Delivery
}

func NewRecorder() *Recorder {
	return &Recorder{rooms: make(map[domain.ChannelCode]map[domain.ConnectionID]struct{})}
}

func (r *Recorder) Emit(scope core.Scope, ev core.Outbound) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch scope.Kind {
	case core.ScopeSelf, core.ScopeConn:
		r.deliveries = append(r.deliveries, Delivery{To: scope.Conn, Event: ev})
	case core.ScopeChannel, core.ScopeChannelExcept:
		for id := range r.rooms[scope.Channel] {
			if scope.Kind == core.ScopeChannelExcept && id == scope.Conn {
				continue
			}
			r.deliveries = append(r.deliveries, Delivery{To: id, Event: ev})
		}
	}
}

func (r *Recorder) JoinRoom(id domain.ConnectionID, code domain.ChannelCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[code]
	if !ok {
		room = make(map[domain.ConnectionID]struct{})
		r.rooms[code] = room
	}
	room[id] = struct{}{}
}

func (r *Recorder) LeaveRoom(id domain.ConnectionID, code domain.ChannelCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[code]; ok {
		delete(room, id)
		if len(room) == 0 {
			delete(r.rooms, code)
		}
	}
}

// Deliveries returns everything delivered so far.
func (r *Recorder) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Delivery(nil), r.deliveries...)
}

// For returns the events received by id, in order.
func (r *Recorder) For(id domain.ConnectionID) []core.Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.Outbound
	for _, d := range r.deliveries {
		if d.To == id {
			out = append(out, d.Event)
		}
	}
	return out
}

// Named returns every delivery of the given event name.
func (r *Recorder) Named(name core.EventName) []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Delivery
	for _, d := range r.deliveries {
		if d.Event.Name() == name {
			out = append(out, d)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = nil
}
