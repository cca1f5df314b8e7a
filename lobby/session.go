package lobby

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Lifecycle represents where a session is in its life span.
type Lifecycle int

const (
	// LifecycleUninitialized means the session has not registered yet.
	LifecycleUninitialized Lifecycle = iota

	// LifecycleActive means the session has attempted registration and is
	// applying inbound frames.
	LifecycleActive

	// LifecycleClosed means the session's subscription has been torn down.
	LifecycleClosed
)

// String returns the string representation of a Lifecycle.
func (l Lifecycle) String() string {
	switch l {
	case LifecycleUninitialized:
		return "uninitialized"
	case LifecycleActive:
		return "active"
	case LifecycleClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the live client-side chat context bound to one connection. It
// owns the state, registers the username with the server when started, and
// applies every inbound frame in arrival order until closed.
type Session struct {
	id         string
	cfg        Config
	logger     Logger
	state      *State
	dispatcher *Dispatcher
	transport  Transport
	sub        *Subscription

	mu        sync.Mutex
	lifecycle Lifecycle
}

// NewSession creates a session on an open transport. The session does not
// consume frames yet: register render callbacks on the dispatcher first,
// then call Start, so that no state mutation goes unnotified.
func NewSession(cfg Config, transport Transport, logger Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = noopLogger{}
	}

	state := newState(cfg.Username, cfg.HistoryLimit)
	return &Session{
		id:         uuid.NewString(),
		cfg:        cfg,
		logger:     logger,
		state:      state,
		dispatcher: newDispatcher(state, logger),
		transport:  transport,
		lifecycle:  LifecycleUninitialized,
	}, nil
}

// Start attempts registration and begins applying inbound frames. The
// register frame goes out before the subscription opens, so it is always
// the first frame sent; a failed register send is logged and the session
// proceeds as if registered.
func (s *Session) Start() error {
	s.mu.Lock()
	switch s.lifecycle {
	case LifecycleActive:
		s.mu.Unlock()
		return errors.New("session already started")
	case LifecycleClosed:
		s.mu.Unlock()
		return errors.New("session closed")
	}
	s.mu.Unlock()

	s.register()

	s.sub = s.transport.Subscribe(s.dispatcher.HandleRaw)
	s.mu.Lock()
	s.lifecycle = LifecycleActive
	s.mu.Unlock()

	s.logger.Info("session active", map[string]any{
		"session": s.id,
		"user":    s.cfg.Username,
	})
	return nil
}

// register sends the registration frame fire-and-forget. There is no
// acknowledgement and no retry.
func (s *Session) register() {
	text, err := Encode(RegisterFrame{Username: s.cfg.Username})
	if err != nil {
		s.logger.Error("encode register", map[string]any{"session": s.id, "error": err.Error()})
		return
	}
	if err := s.transport.Send(text); err != nil {
		s.logger.Warn("register send failed", map[string]any{"session": s.id, "error": err.Error()})
	}
}

// ID returns the session's local identifier, used in log fields.
func (s *Session) ID() string {
	return s.id
}

// State exposes the session state for renderers. Reads are safe at any
// time; mutation stays inside the session.
func (s *Session) State() *State {
	return s.state
}

// Dispatcher exposes callback registration for renderers.
func (s *Session) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Lifecycle returns the session's position in its state machine.
func (s *Session) Lifecycle() Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle
}

// Close tears down the frame subscription. The transport stays open; its
// owner closes it when the connection ends.
func (s *Session) Close() {
	s.mu.Lock()
	if s.lifecycle == LifecycleClosed {
		s.mu.Unlock()
		return
	}
	s.lifecycle = LifecycleClosed
	s.mu.Unlock()

	if s.sub != nil {
		s.sub.Close()
	}
	s.logger.Info("session closed", map[string]any{"session": s.id})
}
