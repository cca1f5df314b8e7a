package lobby

import "sync"

// Dispatcher applies inbound frames to session state and routes the
// resulting changes to registered callbacks. Frames are applied in the
// exact order they arrive; a frame that fails to decode is dropped and
// logged without disturbing the state.
type Dispatcher struct {
	state  *State
	logger Logger

	mu             sync.RWMutex
	onRosterChange func([]User)
	onMessage      func(Message)
	onScroll       func()
	onError        func(error)
}

func newDispatcher(state *State, logger Logger) *Dispatcher {
	return &Dispatcher{state: state, logger: logger}
}

// SetOnRosterChange registers a callback fired after each roster replacement.
func (d *Dispatcher) SetOnRosterChange(fn func([]User)) {
	d.mu.Lock()
	d.onRosterChange = fn
	d.mu.Unlock()
}

// SetOnMessage registers a callback fired after each history append.
func (d *Dispatcher) SetOnMessage(fn func(Message)) {
	d.mu.Lock()
	d.onMessage = fn
	d.mu.Unlock()
}

// SetOnScroll registers the scroll-to-bottom hook. It fires synchronously
// after every message append, before the next frame is processed.
func (d *Dispatcher) SetOnScroll(fn func()) {
	d.mu.Lock()
	d.onScroll = fn
	d.mu.Unlock()
}

// SetOnError registers a callback for dropped frames.
func (d *Dispatcher) SetOnError(fn func(error)) {
	d.mu.Lock()
	d.onError = fn
	d.mu.Unlock()
}

func (d *Dispatcher) callbacks() (func([]User), func(Message), func(), func(error)) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.onRosterChange, d.onMessage, d.onScroll, d.onError
}

// HandleRaw decodes one raw wire text and applies it. Malformed input never
// propagates: the frame is dropped, logged, and reported through the error
// callback while the session keeps running.
func (d *Dispatcher) HandleRaw(text string) {
	frame, err := Decode(text)
	if err != nil {
		d.logger.Warn("dropping undecodable frame", map[string]any{"error": err.Error()})
		d.fireError(err)
		return
	}
	d.Dispatch(frame)
}

// Dispatch applies one decoded frame to the state.
func (d *Dispatcher) Dispatch(frame Frame) {
	onRosterChange, onMessage, onScroll, _ := d.callbacks()

	switch fr := frame.(type) {
	case UsersFrame:
		d.state.replaceRoster(fr.Names)
		if onRosterChange != nil {
			onRosterChange(d.state.Users())
		}
	case MessageFrame:
		msg := Message{From: fr.From, Body: fr.Body, Timestamp: fr.Timestamp}
		d.state.appendMessage(msg)
		if onMessage != nil {
			onMessage(msg)
		}
		if onScroll != nil {
			onScroll()
		}
	default:
		// The server never echoes register frames, and unknown kinds
		// are skipped without error.
		d.logger.Debug("ignoring frame", map[string]any{"type": frame.frameType()})
	}
}

func (d *Dispatcher) fireError(err error) {
	_, _, _, onError := d.callbacks()
	if onError != nil && err != nil {
		onError(err)
	}
}
