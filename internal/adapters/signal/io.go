package signal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dkeye/radiolink/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

func (ctl *SignalWSController) pongWait() time.Duration {
	return ctl.opts.PingPeriod * 10 / 9
}

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	defer c.Close()

	var tick <-chan time.Time
	if ctl.opts.PingPeriod > 0 {
		ticker := time.NewTicker(ctl.opts.PingPeriod)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(c.id)).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Str("sid", string(c.id)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(c.id)).Msg("writePump write error")
				return
			}
		case <-tick:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("sid", string(c.id)).Msg("writePump ping error")
				return
			}
		}
	}
}

// readPump owns the connection lifetime: when it returns the connection is
// disconnected from the coordinator and dropped from the hub.
func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(c.id)).Msg("readPump closing")
		ctl.Orch.Dispatch(c.id, core.Disconnect{})
		ctl.Hub.Unregister(c.id)
		if ctl.Limiter != nil {
			ctl.Limiter.Forget(c.id)
		}
		cancel()
		c.Close()
	}()

	if ctl.opts.PingPeriod > 0 {
		wait := ctl.pongWait()
		_ = c.conn.SetReadDeadline(time.Now().Add(wait))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(wait))
		})
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(c.id)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Warn().Err(err).Str("module", "signal").Str("sid", string(c.id)).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(c Conn, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(c.ID())).Msg("bad json")
		return
	}
	if env.Type == typePing {
		ctl.handlePing(c)
		return
	}
	if !ctl.admit(c, env.Type) {
		return
	}

	ev, err := env.Inbound()
	if errors.Is(err, ErrUnknownEvent) {
		log.Warn().Str("module", "signal").Str("sid", string(c.ID())).Str("type", env.Type).Msg("unknown signal")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(c.ID())).Msg("bad signal payload")
		return
	}
	ctl.Orch.Dispatch(c.ID(), ev)
}

// admit applies the rate limit. release-speak is never limited, so a holder
// can always give up the floor. Any other frame over the limit closes the
// connection instead of being dropped; the read pump then runs the regular
// disconnect cleanup.
func (ctl *SignalWSController) admit(c Conn, typ string) bool {
	if ctl.Limiter == nil || core.EventName(typ) == core.EventReleaseSpeak {
		return true
	}
	if ctl.Limiter.Allow(c.ID()) {
		return true
	}
	log.Warn().Str("module", "signal").Str("sid", string(c.ID())).Str("type", typ).Msg("rate limit exceeded, closing connection")
	c.Close()
	return false
}

func (ctl *SignalWSController) sendJSON(c Conn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
