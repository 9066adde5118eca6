//go:generate go run go.uber.org/mock/mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks
package core

import "github.com/dkeye/radiolink/internal/domain"

type ScopeKind int

const (
	ScopeSelf ScopeKind = iota
	ScopeConn
	ScopeChannel
	ScopeChannelExcept
)

// Scope names the recipients of an outbound event. The transport resolves it.
type Scope struct {
	Kind    ScopeKind
	Conn    domain.ConnectionID
	Channel domain.ChannelCode
}

func ToSelf(id domain.ConnectionID) Scope { return Scope{Kind: ScopeSelf, Conn: id} }

func ToConn(id domain.ConnectionID) Scope { return Scope{Kind: ScopeConn, Conn: id} }

func ToChannel(code domain.ChannelCode) Scope { return Scope{Kind: ScopeChannel, Channel: code} }

// ToOthers targets every connection in the channel except the sender.
func ToOthers(code domain.ChannelCode, except domain.ConnectionID) Scope {
	return Scope{Kind: ScopeChannelExcept, Channel: code, Conn: except}
}

// Transport abstracts the event-dispatch substrate.
// Calls must not block and must not call back into the coordinator.
type Transport interface {
	Emit(scope Scope, ev Outbound)
	JoinRoom(id domain.ConnectionID, code domain.ChannelCode)
	LeaveRoom(id domain.ConnectionID, code domain.ChannelCode)
}
