package lobby

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *State) {
	t.Helper()
	state := newState("alice", 0)
	return newDispatcher(state, noopLogger{}), state
}

func TestDispatchUsersReplacesRoster(t *testing.T) {
	d, state := newTestDispatcher(t)
	state.replaceRoster([]string{"leftover"})

	var notified []User
	d.SetOnRosterChange(func(users []User) { notified = users })

	d.Dispatch(UsersFrame{Names: []string{"a", "b"}})

	users := state.Users()
	require.Len(t, users, 2)
	assert.Equal(t, User{Name: "a", Avatar: AvatarURL("a"), Online: true}, users[0])
	assert.Equal(t, User{Name: "b", Avatar: AvatarURL("b"), Online: true}, users[1])
	assert.Equal(t, users, notified)
}

func TestDispatchMessageAppendsAndScrolls(t *testing.T) {
	d, state := newTestDispatcher(t)

	var order []string
	d.SetOnMessage(func(Message) { order = append(order, "message") })
	d.SetOnScroll(func() { order = append(order, "scroll") })

	ts := int64(100)
	d.Dispatch(MessageFrame{From: "a", Body: "hi", Timestamp: &ts})

	msgs := state.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "a", msgs[0].From)
	assert.Equal(t, "hi", msgs[0].Body)
	require.NotNil(t, msgs[0].Timestamp)
	assert.Equal(t, int64(100), *msgs[0].Timestamp)

	// Scroll fires synchronously after the append notification.
	assert.Equal(t, []string{"message", "scroll"}, order)
}

func TestHandleRawAppliesFramesInOrder(t *testing.T) {
	d, state := newTestDispatcher(t)

	users, err := Encode(UsersFrame{Names: []string{"a"}})
	require.NoError(t, err)
	msg, err := Encode(MessageFrame{From: "a", Body: "hi"})
	require.NoError(t, err)

	d.HandleRaw(users)
	d.HandleRaw(msg)
	d.HandleRaw(msg)

	assert.Len(t, state.Users(), 1)
	assert.Len(t, state.Messages(), 2)
}

func TestHandleRawDropsMalformedFrame(t *testing.T) {
	d, state := newTestDispatcher(t)
	state.replaceRoster([]string{"a"})
	state.appendMessage(Message{From: "a", Body: "hi"})

	var gotErr error
	d.SetOnError(func(err error) { gotErr = err })

	d.HandleRaw(`{"messageType"`)

	require.Error(t, gotErr)
	assert.True(t, IsProtocolError(gotErr))
	assert.Len(t, state.Users(), 1)
	assert.Len(t, state.Messages(), 1)
}

func TestCallbackRegistrationIsSafeDuringDispatch(t *testing.T) {
	d, state := newTestDispatcher(t)

	text, err := Encode(UsersFrame{Names: []string{"a", "b"}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			d.HandleRaw(text)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			d.SetOnRosterChange(func([]User) {})
			d.SetOnError(func(error) {})
		}
	}()
	wg.Wait()

	assert.Len(t, state.Users(), 2)
}

func TestDispatchIgnoresUnknownKinds(t *testing.T) {
	d, state := newTestDispatcher(t)

	var errCalled bool
	d.SetOnError(func(error) { errCalled = true })

	d.HandleRaw(`{"messageType":"presence","data":"x"}`)
	d.Dispatch(RegisterFrame{Username: "bob"})

	assert.Empty(t, state.Users())
	assert.Empty(t, state.Messages())
	assert.False(t, errCalled)
}
