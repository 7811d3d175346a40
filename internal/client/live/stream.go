// Package live subscribes to the backend's WebSocket channel for live order
// updates. Events are decoded and delivered on a channel; the connection is
// re-established with a fixed delay until the context is cancelled.
package live

import (
	"context"
	"net/http"
	"time"

	"github.com/dinebridge/dinebridge/internal/client/api"
	"github.com/dinebridge/dinebridge/internal/client/models"
	"github.com/dinebridge/dinebridge/internal/common"
	"github.com/dinebridge/dinebridge/internal/logging"
	"github.com/gorilla/websocket"
)

// DefaultReconnectDelay is the pause between reconnect attempts.
const DefaultReconnectDelay = 3 * time.Second

// Stream is a reconnecting subscriber for order events.
type Stream struct {
	endpoint string
	source   api.CredentialSource
	logger   logging.Logger

	dialer         *websocket.Dialer
	reconnectDelay time.Duration
}

// NewStream builds a Stream for the given ws:// or wss:// endpoint. source
// supplies the bearer credential for the handshake; it may be nil for
// unauthenticated endpoints.
func NewStream(endpoint string, source api.CredentialSource, logger logging.Logger) *Stream {
	return &Stream{
		endpoint:       endpoint,
		source:         source,
		logger:         logger.With("component", "live"),
		dialer:         websocket.DefaultDialer,
		reconnectDelay: DefaultReconnectDelay,
	}
}

// Run connects and pumps decoded events into out until ctx is cancelled.
// Connection loss triggers a reconnect after the configured delay; frames
// that fail to decode are logged and skipped. Run never closes out.
func (s *Stream) Run(ctx context.Context, out chan<- *models.OrderEvent) error {
	for {
		if err := s.consume(ctx, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn(ctx, "live connection lost, reconnecting",
				"error", err, "delay", s.reconnectDelay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.reconnectDelay):
		}
	}
}

// consume runs a single connection to exhaustion.
func (s *Stream) consume(ctx context.Context, out chan<- *models.OrderEvent) error {
	header := http.Header{}
	if s.source != nil {
		if token, ok := s.source.Token(); ok {
			header.Set(common.AuthorizationHeader, "Bearer "+token)
		}
	}

	conn, resp, err := s.dialer.DialContext(ctx, s.endpoint, header)
	if err != nil {
		return err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	s.logger.Info(ctx, "live channel connected", "endpoint", s.endpoint)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		event, err := models.DecodeOrderEvent(data)
		if err != nil {
			s.logger.Warn(ctx, "skipping malformed event", "error", err)
			continue
		}

		select {
		case out <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
