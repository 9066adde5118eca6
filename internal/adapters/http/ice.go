package http

import (
	"github.com/dkeye/radiolink/internal/config"
	"github.com/pion/webrtc/v4"
)

// ICEServers converts configured servers into the RTCIceServer shape that
// browsers pass to RTCPeerConnection.
func ICEServers(servers []config.ICEServer) []webrtc.ICEServer {
	out := make([]webrtc.ICEServer, 0, len(servers))
	for _, s := range servers {
		srv := webrtc.ICEServer{URLs: s.URLs, Username: s.Username}
		if s.Credential != "" {
			srv.Credential = s.Credential
		}
		out = append(out, srv)
	}
	return out
}
