package lobby

import "strings"

// Input handling: these methods turn local UI actions into either state
// mutations or outbound frames. They mirror the input field of the chat
// view, so renderers only forward events and redraw from state.

// SetInputText replaces the input buffer, tracking what the user typed.
func (s *Session) SetInputText(text string) {
	s.state.setInputText(text)
}

// Submit sends the current input as a chat message. Whitespace-only input
// is a no-op and leaves the buffer untouched. Otherwise the trimmed text is
// sent best-effort and the buffer is cleared whether or not the send
// reached the transport.
func (s *Session) Submit() {
	trimmed := strings.TrimSpace(s.state.InputText())
	if trimmed == "" {
		return
	}

	text, err := Encode(MessageFrame{From: s.cfg.Username, Body: trimmed})
	if err != nil {
		s.logger.Error("encode message", map[string]any{"session": s.id, "error": err.Error()})
		return
	}
	if err := s.transport.Send(text); err != nil {
		// No retry and no delivery confirmation: the message simply
		// never reaches the server.
		s.logger.Warn("send failed", map[string]any{"session": s.id, "error": err.Error()})
	}
	s.state.setInputText("")
}

// KeyPress handles a key event on the input field. Enter without shift
// submits; the return value tells the renderer to suppress the key's
// default effect (no newline insertion). Every other key is a no-op.
func (s *Session) KeyPress(key string, shiftHeld bool) bool {
	if key == "Enter" && !shiftHeld {
		s.Submit()
		return true
	}
	return false
}

// ToggleEmojiPicker flips the picker open or closed.
func (s *Session) ToggleEmojiPicker() bool {
	return s.state.togglePicker()
}

// InsertEmoji appends a glyph to the input, returns focus to the field, and
// closes the picker regardless of its prior state.
func (s *Session) InsertEmoji(glyph string) {
	s.state.setInputText(s.state.InputText() + glyph)
	s.state.setInputFocused(true)
	s.state.closePicker()
}
