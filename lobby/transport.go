package lobby

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"

	"github.com/lobbychat/lobby-sdk-go/lobby/internal"

	"github.com/coder/websocket"
)

// Transport carries raw wire frames between the session and the server.
//
// Send must never block: when the outbound queue cannot accept the frame it
// fails immediately with ErrorSend. Subscribe delivers inbound frames in
// arrival order until the returned subscription is closed.
type Transport interface {
	Send(text string) error
	Subscribe(fn func(string)) *Subscription
	Close() error
}

// WSTransport is the websocket Transport implementation.
type WSTransport struct {
	cfg     Config
	logger  Logger
	conn    *internal.Conn
	writeCh chan string
	bus     *frameBus

	mu        sync.Mutex
	connected bool
	cancel    context.CancelFunc
}

// Dial opens a websocket connection and starts the transport loops. The
// returned transport is ready to carry frames for a session.
func Dial(ctx context.Context, cfg Config, logger Logger) (*WSTransport, error) {
	if logger == nil {
		logger = noopLogger{}
	}
	if cfg.URL == "" {
		return nil, NewError(ErrorInvalidConfig, "empty URL")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, WrapError(ErrorInvalidConfig, "parse URL", err)
	}

	dialCtx := ctx
	if cfg.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.HandshakeTimeout)
		defer cancel()
	}

	ws, _, err := websocket.Dial(dialCtx, u.String(), nil)
	if err != nil {
		return nil, WrapError(ErrorConnection, "dial", err)
	}

	buffer := cfg.SendBuffer
	if buffer <= 0 {
		buffer = 16
	}

	t := &WSTransport{
		cfg:     cfg,
		logger:  logger,
		conn:    internal.NewConn(ws, cfg.ReadTimeout, cfg.WriteTimeout),
		writeCh: make(chan string, buffer),
		bus:     newFrameBus(),
	}

	runCtx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.connected = true

	go t.readLoop(runCtx)
	go t.writeLoop(runCtx)
	return t, nil
}

// Send enqueues one outbound frame. It returns ErrorSend without blocking
// when the queue is full or the transport is no longer connected.
func (t *WSTransport) Send(text string) error {
	t.mu.Lock()
	connected := t.connected
	t.mu.Unlock()
	if !connected {
		return NewError(ErrorNotConnected, "transport closed")
	}

	select {
	case t.writeCh <- text:
		return nil
	default:
		return NewError(ErrorSend, "outbound queue full")
	}
}

// Subscribe registers a consumer for inbound frames.
func (t *WSTransport) Subscribe(fn func(string)) *Subscription {
	return t.bus.subscribe(fn)
}

// Close shuts down the loops and closes the websocket.
func (t *WSTransport) Close() error {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.connected = false
	t.mu.Unlock()
	return t.conn.Close(websocket.StatusNormalClosure, "client close")
}

func (t *WSTransport) readLoop(ctx context.Context) {
	for {
		text, err := t.conn.ReadText(ctx)
		if err != nil {
			if isExpectedDisconnect(ctx, err) {
				return
			}
			t.logger.Warn("read loop exit", map[string]any{"error": err.Error()})
			return
		}
		t.bus.publish(text)
	}
}

func (t *WSTransport) writeLoop(ctx context.Context) {
	for {
		select {
		case text := <-t.writeCh:
			if err := t.conn.WriteText(ctx, text); err != nil {
				t.logger.Warn("write loop exit", map[string]any{"error": err.Error()})
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func isExpectedDisconnect(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}
