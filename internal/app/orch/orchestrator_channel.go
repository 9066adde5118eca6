package orch

import (
	"github.com/dkeye/radiolink/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join puts sid into the channel, leaving its previous channel first.
// Re-joining the same channel refreshes the nickname and repeats the welcome.
func (o *Orchestrator) Join(sid domain.ConnectionID, nickname, rawCode string) {
	code := domain.ResolveChannelCode(rawCode)
	prev, hadPrev := o.Registry.Register(sid, nickname, code)
	if hadPrev && prev != code {
		o.Channels.Leave(prev, sid, o.Transport)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_channel", string(prev)).Msg("left previous channel")
	}
	_, others := o.Channels.Join(code, sid, nickname, o.Transport)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("channel", string(code)).Int("others", len(others)).Msg("joined channel")
}

// Disconnect releases the floor if sid held it, leaves its channel and
// forgets the session. It is safe to call for a connection that never joined.
func (o *Orchestrator) Disconnect(sid domain.ConnectionID) {
	p, joined := o.Registry.Remove(sid)
	if !joined {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("disconnected before joining")
		return
	}
	o.Channels.Leave(p.Channel, sid, o.Transport)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("channel", string(p.Channel)).Msg("disconnected")
}
