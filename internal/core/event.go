package core

import (
	"encoding/json"

	"github.com/dkeye/radiolink/internal/domain"
)

// EventName is the wire name of a signaling event.
type EventName string

const (
	EventJoinChannel    EventName = "join-channel"
	EventRequestSpeak   EventName = "request-speak"
	EventReleaseSpeak   EventName = "release-speak"
	EventOffer          EventName = "offer"
	EventAnswer         EventName = "answer"
	EventICECandidate   EventName = "ice-candidate"
	EventWelcome        EventName = "welcome"
	EventUserJoined     EventName = "user-joined"
	EventUserLeft       EventName = "user-left"
	EventSpeakerChanged EventName = "speaker-changed"
)

// SignalKind is one of the relayed negotiation message kinds.
type SignalKind string

const (
	SignalOffer        SignalKind = SignalKind(EventOffer)
	SignalAnswer       SignalKind = SignalKind(EventAnswer)
	SignalICECandidate SignalKind = SignalKind(EventICECandidate)
)

// Field is the payload field that carries the negotiation data for this kind.
func (k SignalKind) Field() string {
	switch k {
	case SignalOffer:
		return "offer"
	case SignalAnswer:
		return "answer"
	case SignalICECandidate:
		return "candidate"
	}
	return ""
}

func (k SignalKind) Valid() bool { return k.Field() != "" }

// Outbound is the closed set of events the coordinator emits.
type Outbound interface {
	Name() EventName
	outbound()
}

type Welcome struct {
	UserID      domain.ConnectionID `json:"userId"`
	Users       []domain.Member     `json:"users"`
	ChannelCode domain.ChannelCode  `json:"channelCode"`
}

type UserJoined struct {
	UserID   domain.ConnectionID `json:"userId"`
	Nickname string              `json:"nickname"`
}

type UserLeft struct {
	UserID domain.ConnectionID `json:"userId"`
}

// SpeakerChanged announces the floor holder. Both fields are null when the floor is free.
type SpeakerChanged struct {
	SpeakerID *domain.ConnectionID `json:"speakerId"`
	Nickname  *string              `json:"nickname"`
}

func SpeakerHeld(id domain.ConnectionID, nickname string) SpeakerChanged {
	return SpeakerChanged{SpeakerID: &id, Nickname: &nickname}
}

func SpeakerFree() SpeakerChanged { return SpeakerChanged{} }

// Relayed carries an opaque negotiation payload to its target.
type Relayed struct {
	Kind    SignalKind
	From    domain.ConnectionID
	Payload json.RawMessage
}

// MarshalJSON leaves the payload field out when the sender supplied none.
func (r Relayed) MarshalJSON() ([]byte, error) {
	out := map[string]any{"fromUserId": r.From}
	if len(r.Payload) > 0 {
		out[r.Kind.Field()] = r.Payload
	}
	return json.Marshal(out)
}

func (Welcome) Name() EventName        { return EventWelcome }
func (UserJoined) Name() EventName     { return EventUserJoined }
func (UserLeft) Name() EventName       { return EventUserLeft }
func (SpeakerChanged) Name() EventName { return EventSpeakerChanged }
func (r Relayed) Name() EventName      { return EventName(r.Kind) }

func (Welcome) outbound()        {}
func (UserJoined) outbound()     {}
func (UserLeft) outbound()       {}
func (SpeakerChanged) outbound() {}
func (Relayed) outbound()        {}
