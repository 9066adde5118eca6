package orch

import (
	"github.com/dkeye/radiolink/internal/app"
	"github.com/dkeye/radiolink/internal/core"
	"github.com/dkeye/radiolink/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator turns inbound events into registry, channel, floor and relay
// operations. It never returns errors: each operation either takes effect or
// is a no-op.
type Orchestrator struct {
	Registry  *app.Registry
	Channels  *app.Directory
	Transport core.Transport
}

func New(t core.Transport) *Orchestrator {
	return &Orchestrator{
		Registry:  app.NewRegistry(),
		Channels:  app.NewDirectory(),
		Transport: t,
	}
}

// Connect registers a freshly accepted connection.
func (o *Orchestrator) Connect(sid domain.ConnectionID) {
	o.Registry.Bind(sid)
}

// Dispatch routes one inbound event from sid.
func (o *Orchestrator) Dispatch(sid domain.ConnectionID, ev core.Inbound) {
	switch e := ev.(type) {
	case core.JoinChannel:
		o.Join(sid, e.Nickname, e.ChannelCode)
	case core.RequestSpeak:
		o.RequestSpeak(sid)
	case core.ReleaseSpeak:
		o.ReleaseSpeak(sid)
	case core.SignalRequest:
		o.Relay(e.Kind, sid, e.To, e.Payload)
	case core.Disconnect:
		o.Disconnect(sid)
	default:
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("event", string(ev.Name())).Msg("unhandled event")
	}
}
