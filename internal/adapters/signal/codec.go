package signal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/radiolink/internal/core"
	"github.com/dkeye/radiolink/internal/domain"
)

var ErrUnknownEvent = errors.New("unknown event")

// Envelope is the frame shape in both directions: {"type": ..., "payload": {...}}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// decodeInbound parses one text frame into an inbound event.
func decodeInbound(data []byte) (core.Inbound, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return env.Inbound()
}

func (env Envelope) Inbound() (core.Inbound, error) {
	switch name := core.EventName(env.Type); name {
	case core.EventJoinChannel:
		var j core.JoinChannel
		if err := unmarshalPayload(env.Payload, &j); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return j, nil
	case core.EventRequestSpeak:
		return core.RequestSpeak{}, nil
	case core.EventReleaseSpeak:
		return core.ReleaseSpeak{}, nil
	case core.EventOffer, core.EventAnswer, core.EventICECandidate:
		return decodeSignal(core.SignalKind(name), env.Payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
}

func decodeSignal(kind core.SignalKind, raw json.RawMessage) (core.Inbound, error) {
	var fields map[string]json.RawMessage
	if err := unmarshalPayload(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	var to string
	if v, ok := fields["toUserId"]; ok {
		if err := json.Unmarshal(v, &to); err != nil {
			return nil, fmt.Errorf("decode %s toUserId: %w", kind, err)
		}
	}
	return core.SignalRequest{
		Kind:    kind,
		To:      domain.ConnectionID(to),
		Payload: fields[kind.Field()],
	}, nil
}

func unmarshalPayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// EncodeOutbound renders an outbound event as a text frame.
func EncodeOutbound(ev core.Outbound) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ev.Name(), err)
	}
	return json.Marshal(Envelope{Type: string(ev.Name()), Payload: payload})
}
