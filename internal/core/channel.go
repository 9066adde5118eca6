package core

import (
	"sync"

	"github.com/dkeye/radiolink/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Channel is a threadsafe in-memory voice channel: its members and its floor.
// Every state change and the events it produces happen under one lock, so
// members observe events in the order the state changed.
type Channel struct {
	code domain.ChannelCode

	mu      sync.Mutex
	members map[domain.ConnectionID]string
	floor   Floor
	closed  bool
}

func NewChannel(code domain.ChannelCode) *Channel {
	return &Channel{
		code:    code,
		members: make(map[domain.ConnectionID]string),
	}
}

func (c *Channel) Code() domain.ChannelCode { return c.code }

// Join adds id to the channel and sends the welcome, the user-joined
// announcement and the current speaker if any. It returns the members that
// were already present. ok is false when the channel has been closed by a
// concurrent leave; the caller must look the channel up again.
func (c *Channel) Join(id domain.ConnectionID, nickname string, t Transport) (others []domain.Member, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, false
	}

	others = c.snapshotLocked(id)
	c.members[id] = nickname
	t.JoinRoom(id, c.code)

	t.Emit(ToSelf(id), Welcome{UserID: id, Users: others, ChannelCode: c.code})
	t.Emit(ToOthers(c.code, id), UserJoined{UserID: id, Nickname: nickname})
	if holder, held := c.floor.Holder(); held {
		t.Emit(ToSelf(id), SpeakerHeld(holder, c.members[holder]))
	}
	log.Info().Str("module", "core.channel").Str("channel", string(c.code)).Str("sid", string(id)).Int("members", len(c.members)).Msg("member joined")
	return others, true
}

// Leave removes id, releasing the floor if it held it. When the last member
// leaves the channel is closed and onEmpty runs before the lock is released.
func (c *Channel) Leave(id domain.ConnectionID, t Transport, onEmpty func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.members[id]; !ok {
		return
	}

	delete(c.members, id)
	t.LeaveRoom(id, c.code)
	c.forceReleaseLocked(id, t)
	t.Emit(ToOthers(c.code, id), UserLeft{UserID: id})
	log.Info().Str("module", "core.channel").Str("channel", string(c.code)).Str("sid", string(id)).Int("members", len(c.members)).Msg("member left")

	if len(c.members) == 0 {
		c.closed = true
		if onEmpty != nil {
			onEmpty()
		}
	}
}

// RequestFloor grants the floor to id if it is free and announces the new
// speaker to the whole channel. Contention is not an error.
func (c *Channel) RequestFloor(id domain.ConnectionID, t Transport) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	nickname, member := c.members[id]
	if !member || !c.floor.Request(id) {
		log.Debug().Str("module", "core.floor").Str("channel", string(c.code)).Str("sid", string(id)).Stringer("floor", c.floor.State()).Msg("floor request ignored")
		return false
	}
	t.Emit(ToChannel(c.code), SpeakerHeld(id, nickname))
	log.Info().Str("module", "core.floor").Str("channel", string(c.code)).Str("sid", string(id)).Msg("floor granted")
	return true
}

// ReleaseFloor frees the floor if id holds it.
func (c *Channel) ReleaseFloor(id domain.ConnectionID, t Transport) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forceReleaseLocked(id, t)
}

// ForceRelease is ReleaseFloor raised by the coordinator rather than the holder.
func (c *Channel) ForceRelease(id domain.ConnectionID, t Transport) bool {
	return c.ReleaseFloor(id, t)
}

func (c *Channel) forceReleaseLocked(id domain.ConnectionID, t Transport) bool {
	if !c.floor.Release(id) {
		return false
	}
	t.Emit(ToChannel(c.code), SpeakerFree())
	log.Info().Str("module", "core.floor").Str("channel", string(c.code)).Str("sid", string(id)).Msg("floor released")
	return true
}

// Snapshot lists the current members in no particular order.
func (c *Channel) Snapshot() []domain.Member {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked("")
}

func (c *Channel) snapshotLocked(except domain.ConnectionID) []domain.Member {
	return lo.MapToSlice(lo.OmitByKeys(c.members, []domain.ConnectionID{except}), func(id domain.ConnectionID, nickname string) domain.Member {
		return domain.Member{ID: id, Nickname: nickname}
	})
}

func (c *Channel) MemberCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.members)
}

// Speaker returns the floor holder and its nickname.
func (c *Channel) Speaker() (domain.ConnectionID, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	holder, held := c.floor.Holder()
	if !held {
		return "", "", false
	}
	return holder, c.members[holder], true
}
