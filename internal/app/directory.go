package app

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dkeye/radiolink/internal/core"
	"github.com/dkeye/radiolink/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type ChannelInfo struct {
	Code        domain.ChannelCode   `json:"code"`
	MemberCount int                  `json:"member_count"`
	SpeakerID   *domain.ConnectionID `json:"speaker_id"`
}

// Directory owns the live channels. A channel exists exactly while it has members.
type Directory struct {
	mu       sync.RWMutex
	channels map[domain.ChannelCode]*core.Channel
}

func NewDirectory() *Directory {
	return &Directory{channels: make(map[domain.ChannelCode]*core.Channel)}
}

func (d *Directory) GetOrCreate(code domain.ChannelCode) *core.Channel {
	code = domain.ResolveChannelCode(string(code))
	d.mu.RLock()
	ch, ok := d.channels[code]
	d.mu.RUnlock()
	if ok {
		return ch
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if ch, ok = d.channels[code]; ok {
		return ch
	}
	ch = core.NewChannel(code)
	d.channels[code] = ch
	log.Info().Str("module", "app.directory").Str("channel", string(code)).Msg("channel created")
	return ch
}

func (d *Directory) Get(code domain.ChannelCode) (*core.Channel, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ch, ok := d.channels[code]
	return ch, ok
}

// Join adds id to the channel, creating it if needed, and returns the members
// that were already there. A channel closed by a racing leave is replaced.
func (d *Directory) Join(code domain.ChannelCode, id domain.ConnectionID, nickname string, t core.Transport) (*core.Channel, []domain.Member) {
	for {
		ch := d.GetOrCreate(code)
		if others, ok := ch.Join(id, nickname, t); ok {
			return ch, others
		}
	}
}

// Leave removes id from the channel and drops the channel once it is empty.
func (d *Directory) Leave(code domain.ChannelCode, id domain.ConnectionID, t core.Transport) {
	ch, ok := d.Get(code)
	if !ok {
		return
	}
	ch.Leave(id, t, func() { d.remove(ch) })
}

func (d *Directory) remove(ch *core.Channel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cur, ok := d.channels[ch.Code()]; ok && cur == ch {
		delete(d.channels, ch.Code())
		log.Info().Str("module", "app.directory").Str("channel", string(ch.Code())).Msg("channel destroyed")
	}
}

// Snapshot lists the members of code, or nothing if the channel does not exist.
func (d *Directory) Snapshot(code domain.ChannelCode) []domain.Member {
	ch, ok := d.Get(code)
	if !ok {
		return []domain.Member{}
	}
	return ch.Snapshot()
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.channels)
}

func (d *Directory) List() []ChannelInfo {
	d.mu.RLock()
	chans := lo.Values(d.channels)
	d.mu.RUnlock()

	out := lo.Map(chans, func(ch *core.Channel, _ int) ChannelInfo {
		info := ChannelInfo{Code: ch.Code(), MemberCount: ch.MemberCount()}
		if id, _, held := ch.Speaker(); held {
			info.SpeakerID = &id
		}
		return info
	})
	slices.SortFunc(out, func(a, b ChannelInfo) int { return cmp.Compare(a.Code, b.Code) })
	return out
}
