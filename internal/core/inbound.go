package core

import (
	"encoding/json"

	"github.com/dkeye/radiolink/internal/domain"
)

// Inbound is the closed set of events a connection can deliver to the coordinator.
type Inbound interface {
	Name() EventName
	inbound()
}

type JoinChannel struct {
	Nickname    string `json:"nickname"`
	ChannelCode string `json:"channelCode"`
}

type RequestSpeak struct{}

type ReleaseSpeak struct{}

// SignalRequest asks for Payload to be relayed to the connection To.
type SignalRequest struct {
	Kind    SignalKind
	To      domain.ConnectionID
	Payload json.RawMessage
}

// Disconnect is raised by the transport when a connection closes.
type Disconnect struct{}

func (JoinChannel) Name() EventName     { return EventJoinChannel }
func (RequestSpeak) Name() EventName    { return EventRequestSpeak }
func (ReleaseSpeak) Name() EventName    { return EventReleaseSpeak }
func (s SignalRequest) Name() EventName { return EventName(s.Kind) }
func (Disconnect) Name() EventName      { return "disconnect" }

func (JoinChannel) inbound()   {}
func (RequestSpeak) inbound()  {}
func (ReleaseSpeak) inbound()  {}
func (SignalRequest) inbound() {}
func (Disconnect) inbound()    {}
