package lobby

import "sync"

// frameBus fans inbound raw frames out to subscribers. Delivery is
// synchronous and in publish order, so subscribers observe frames exactly
// as the transport received them.
type frameBus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*Subscription
}

// Subscription is one registered frame consumer. Closing it stops delivery
// deterministically; frames published afterwards are never observed.
type Subscription struct {
	bus *frameBus
	id  int
	fn  func(string)

	once sync.Once
}

func newFrameBus() *frameBus {
	return &frameBus{subs: make(map[int]*Subscription)}
}

func (b *frameBus) subscribe(fn func(string)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub := &Subscription{bus: b, id: b.nextID, fn: fn}
	b.subs[sub.id] = sub
	return sub
}

// publish delivers one frame to every current subscriber. The subscriber
// list is snapshotted first so a callback may close its own subscription
// without deadlocking; callbacks run outside the lock, in publish order
// from the single reading goroutine.
func (b *frameBus) publish(text string) {
	b.mu.Lock()
	subs := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		sub.fn(text)
	}
}

// Close cancels the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s.id)
		s.bus.mu.Unlock()
	})
}
