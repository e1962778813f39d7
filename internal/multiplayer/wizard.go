package multiplayer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultEventBuffer is the event channel capacity when none is configured.
const DefaultEventBuffer = 10_000

// Wizard hosts or joins a multiplayer session and reports progress to the
// UI over a bounded event channel. When the channel is full, events are
// dropped rather than blocking the transport.
type Wizard struct {
	logger   *zap.Logger
	events   chan Event
	upgrader websocket.Upgrader
}

// NewWizard creates a Wizard with an event channel of the given capacity
// (0 uses DefaultEventBuffer).
//
// Precondition: logger must be non-nil.
func NewWizard(logger *zap.Logger, eventBuffer int) *Wizard {
	if eventBuffer <= 0 {
		eventBuffer = DefaultEventBuffer
	}
	return &Wizard{
		logger: logger,
		events: make(chan Event, eventBuffer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Events returns the UI event channel.
func (w *Wizard) Events() <-chan Event { return w.events }

func (w *Wizard) publish(ev Event) {
	select {
	case w.events <- ev:
	default:
		w.logger.Warn("event channel full, dropping event",
			zap.Int("kind", int(ev.Kind)),
		)
	}
}

// Host listens on addr for joining peers, publishes the bound listen
// address as a message event, and relays every received frame as an event.
// It blocks until ctx is cancelled or the listener fails.
func (w *Wizard) Host(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		w.publish(ErrorEvent(fmt.Sprintf("listen on %s failed: %v", addr, err)))
		return fmt.Errorf("multiplayer host: listening on %s: %w", addr, err)
	}

	w.publish(MessageEvent(ln.Addr().String()))
	w.logger.Info("hosting island session",
		zap.String("addr", ln.Addr().String()),
	)

	srv := &http.Server{Handler: http.HandlerFunc(w.handlePeer)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return srv.Close()
	})
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.publish(ErrorEvent(fmt.Sprintf("host stopped: %v", err)))
			return fmt.Errorf("multiplayer host: serving: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (w *Wizard) handlePeer(rw http.ResponseWriter, r *http.Request) {
	conn, err := w.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	w.logger.Info("peer connected", zap.String("peer", conn.RemoteAddr().String()))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			w.logger.Info("peer disconnected",
				zap.String("peer", conn.RemoteAddr().String()),
				zap.Error(err),
			)
			return
		}
		w.publish(MessageEvent(fmt.Sprintf("%s %s", conn.RemoteAddr(), msg)))
	}
}

// Join dials a hosting peer at url (ws://host:port), sends an initial ping,
// and relays every received frame as an event. It blocks until ctx is
// cancelled or the connection fails.
func (w *Wizard) Join(ctx context.Context, url string) error {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		w.publish(ErrorEvent(fmt.Sprintf("connecting to %s failed: %v", url, err)))
		return fmt.Errorf("multiplayer join: dialing %s: %w", url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	w.publish(MessageEvent("connected, sending ping"))
	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		w.publish(ErrorEvent(fmt.Sprintf("send failed: %v", err)))
		return fmt.Errorf("multiplayer join: sending ping: %w", err)
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.publish(ErrorEvent(fmt.Sprintf("connection lost: %v", err)))
			return fmt.Errorf("multiplayer join: reading: %w", err)
		}
		w.publish(MessageEvent(string(msg)))
	}
}
