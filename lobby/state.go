package lobby

import (
	"strings"
	"sync"
)

// User is one roster entry. Avatar is always derived from Name and Online
// currently has no liveness signal behind it: the server only ever reports
// present participants, so every entry arrives online.
type User struct {
	Name   string
	Avatar string
	Online bool
}

// Message is one history entry. A nil Timestamp renders as "just now".
type Message struct {
	From      string
	Body      string
	Timestamp *int64
}

// IsGIF reports whether the body references an image resource by the
// protocol's suffix convention.
func (m Message) IsGIF() bool {
	return strings.HasSuffix(m.Body, ".gif")
}

// State holds everything a renderer needs to draw the session: the roster,
// the message history, the input buffer, and UI-transient flags. All
// accessors are safe for concurrent use; inbound mutations are applied in
// frame arrival order by the session's subscription.
type State struct {
	mu sync.RWMutex

	username string

	users    []User
	messages []Message

	inputText       string
	inputFocused    bool
	emojiPickerOpen bool

	historyLimit int
}

func newState(username string, historyLimit int) *State {
	return &State{username: username, historyLimit: historyLimit}
}

// Username returns the local display name. It never changes after the
// session is created.
func (s *State) Username() string {
	return s.username
}

// IsSelf reports whether a message sender is the local user.
func (s *State) IsSelf(from string) bool {
	return from == s.username
}

// Users returns a snapshot of the roster in server order.
func (s *State) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// OnlineCount returns the number of online roster entries.
func (s *State) OnlineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.Online {
			n++
		}
	}
	return n
}

// Messages returns a snapshot of the history in arrival order.
func (s *State) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// InputText returns the current contents of the input buffer.
func (s *State) InputText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputText
}

// InputFocused reports whether the input field should hold focus.
func (s *State) InputFocused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputFocused
}

// EmojiPickerOpen reports whether the emoji picker is showing.
func (s *State) EmojiPickerOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emojiPickerOpen
}

// replaceRoster discards the previous roster entirely and rebuilds it from
// the given names. Duplicate names collapse to the first occurrence so that
// no two entries share a name.
func (s *State) replaceRoster(names []string) {
	users := make([]User, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		users = append(users, User{
			Name:   name,
			Avatar: AvatarURL(name),
			Online: true,
		})
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
}

// appendMessage adds one message to the history. History is append-only;
// when a limit is configured the oldest entries are evicted to stay within
// it.
func (s *State) appendMessage(m Message) {
	s.mu.Lock()
	s.messages = append(s.messages, m)
	if s.historyLimit > 0 && len(s.messages) > s.historyLimit {
		drop := len(s.messages) - s.historyLimit
		s.messages = append(s.messages[:0:0], s.messages[drop:]...)
	}
	s.mu.Unlock()
}

func (s *State) setInputText(text string) {
	s.mu.Lock()
	s.inputText = text
	s.mu.Unlock()
}

func (s *State) setInputFocused(focused bool) {
	s.mu.Lock()
	s.inputFocused = focused
	s.mu.Unlock()
}

func (s *State) togglePicker() bool {
	s.mu.Lock()
	s.emojiPickerOpen = !s.emojiPickerOpen
	open := s.emojiPickerOpen
	s.mu.Unlock()
	return open
}

func (s *State) closePicker() {
	s.mu.Lock()
	s.emojiPickerOpen = false
	s.mu.Unlock()
}
