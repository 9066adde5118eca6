package orch

import (
	"encoding/json"

	"github.com/dkeye/radiolink/internal/core"
	"github.com/dkeye/radiolink/internal/domain"
	"github.com/rs/zerolog/log"
)

// Relay forwards payload untouched to the connection to. Unknown targets and
// unknown kinds are dropped silently.
func (o *Orchestrator) Relay(kind core.SignalKind, from, to domain.ConnectionID, payload json.RawMessage) bool {
	if !kind.Valid() || !o.Registry.Connected(from) || !o.Registry.Connected(to) {
		log.Debug().Str("module", "orch.relay").Str("kind", string(kind)).Str("from", string(from)).Str("to", string(to)).Msg("relay dropped")
		return false
	}
	o.Transport.Emit(core.ToConn(to), core.Relayed{Kind: kind, From: from, Payload: payload})
	log.Debug().Str("module", "orch.relay").Str("kind", string(kind)).Str("from", string(from)).Str("to", string(to)).Msg("relayed")
	return true
}
