package lobby

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceRosterDiscardsPrevious(t *testing.T) {
	s := newState("alice", 0)
	s.replaceRoster([]string{"old", "stale"})
	s.replaceRoster([]string{"a", "b"})

	users := s.Users()
	require.Len(t, users, 2)
	assert.Equal(t, User{Name: "a", Avatar: AvatarURL("a"), Online: true}, users[0])
	assert.Equal(t, User{Name: "b", Avatar: AvatarURL("b"), Online: true}, users[1])
	assert.Equal(t, 2, s.OnlineCount())
}

func TestReplaceRosterDeduplicatesNames(t *testing.T) {
	s := newState("alice", 0)
	s.replaceRoster([]string{"a", "b", "a"})

	users := s.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "a", users[0].Name)
	assert.Equal(t, "b", users[1].Name)
}

func TestHistoryAppendOnly(t *testing.T) {
	s := newState("alice", 0)
	for i := 0; i < 5; i++ {
		s.appendMessage(Message{From: "a", Body: fmt.Sprintf("msg %d", i)})
	}

	msgs := s.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, "msg 0", msgs[0].Body)
	assert.Equal(t, "msg 4", msgs[4].Body)
}

func TestHistoryLimitEvictsOldest(t *testing.T) {
	s := newState("alice", 3)
	for i := 0; i < 5; i++ {
		s.appendMessage(Message{From: "a", Body: fmt.Sprintf("msg %d", i)})
	}

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "msg 2", msgs[0].Body)
	assert.Equal(t, "msg 4", msgs[2].Body)
}

func TestIsSelf(t *testing.T) {
	s := newState("alice", 0)
	assert.True(t, s.IsSelf("alice"))
	assert.False(t, s.IsSelf("bob"))
}

func TestMessageIsGIF(t *testing.T) {
	assert.True(t, Message{Body: "https://cdn.example/cat.gif"}.IsGIF())
	assert.False(t, Message{Body: "hello"}.IsGIF())
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t, "https://avatars.dicebear.com/api/adventurer-neutral/alice.svg", AvatarURL("alice"))
	assert.Equal(t, "https://avatars.dicebear.com/api/adventurer-neutral/mr%20big.svg", AvatarURL("mr big"))
	assert.Equal(t, "https://avatars.dicebear.com/api/adventurer-neutral/a%2Fb.svg", AvatarURL("a/b"))
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := newState("alice", 0)
	s.replaceRoster([]string{"a"})
	s.appendMessage(Message{From: "a", Body: "hi"})

	users := s.Users()
	users[0].Name = "mutated"
	assert.Equal(t, "a", s.Users()[0].Name)

	msgs := s.Messages()
	msgs[0].Body = "mutated"
	assert.Equal(t, "hi", s.Messages()[0].Body)
}
