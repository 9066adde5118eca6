package app

import (
	"sync"

	"github.com/dkeye/radiolink/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Nickname string
	Channel  domain.ChannelCode
}

// Registry tracks live connections and, once joined, their nickname and channel.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.ConnectionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.ConnectionID]*sessionEntry),
	}
}

// Bind records a newly accepted connection.
func (r *Registry) Bind(id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		r.sessions[id] = &sessionEntry{}
	}
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Msg("bound session")
}

func (r *Registry) Connected(id domain.ConnectionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[id]
	return ok
}

// Register sets the nickname and channel of id and returns the channel it was
// in before, so the caller can leave it.
func (r *Registry) Register(id domain.ConnectionID, nickname string, code domain.ChannelCode) (prev domain.ChannelCode, hadPrev bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[id]
	if !ok {
		entry = &sessionEntry{}
		r.sessions[id] = entry
	}
	prev, hadPrev = entry.Channel, entry.Channel != ""
	entry.Nickname = nickname
	entry.Channel = code
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Str("channel", string(code)).Str("nickname", nickname).Msg("registered participant")
	return prev, hadPrev
}

// Lookup returns the participant for id if it has joined a channel.
func (r *Registry) Lookup(id domain.ConnectionID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[id]
	if !ok || entry.Channel == "" {
		return domain.Participant{}, false
	}
	return domain.Participant{ID: id, Nickname: entry.Nickname, Channel: entry.Channel}, true
}

// Remove forgets id. The returned participant is set only if id had joined.
func (r *Registry) Remove(id domain.ConnectionID) (domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[id]
	if !ok {
		return domain.Participant{}, false
	}
	delete(r.sessions, id)
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Msg("unbind session")
	if entry.Channel == "" {
		return domain.Participant{}, false
	}
	return domain.Participant{ID: id, Nickname: entry.Nickname, Channel: entry.Channel}, true
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
