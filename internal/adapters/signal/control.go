package signal

const (
	typePing = "ping"
	typePong = "pong"
)

// handlePing answers application-level keepalives for clients that cannot
// see WebSocket control frames.
func (ctl *SignalWSController) handlePing(conn Conn) {
	ctl.sendJSON(conn, Envelope{Type: typePong})
}
