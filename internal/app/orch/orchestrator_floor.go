package orch

import (
	"github.com/dkeye/radiolink/internal/core"
	"github.com/dkeye/radiolink/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) RequestSpeak(sid domain.ConnectionID) bool {
	ch, ok := o.channelOf(sid)
	if !ok {
		return false
	}
	return ch.RequestFloor(sid, o.Transport)
}

func (o *Orchestrator) ReleaseSpeak(sid domain.ConnectionID) bool {
	ch, ok := o.channelOf(sid)
	if !ok {
		return false
	}
	return ch.ReleaseFloor(sid, o.Transport)
}

func (o *Orchestrator) channelOf(sid domain.ConnectionID) (*core.Channel, bool) {
	p, ok := o.Registry.Lookup(sid)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("floor event before join")
		return nil, false
	}
	return o.Channels.Get(p.Channel)
}
