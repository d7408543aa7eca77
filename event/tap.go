package event

import (
	"context"
	"sync"

	"github.com/spetersoncode/reduce"
)

// Tap is a middleware that emits an ActionDispatched event to ch for every
// action passing through it, after the rest of the chain has handled it.
// Thunks are not reported; the actions they dispatch are.
func Tap(ch chan<- Event) reduce.Middleware {
	return func(api reduce.MiddlewareAPI) func(next reduce.DispatchFunc) reduce.DispatchFunc {
		return func(next reduce.DispatchFunc) reduce.DispatchFunc {
			return func(ctx context.Context, cmd reduce.Command) any {
				result := next(ctx, cmd)
				if a, ok := cmd.(reduce.Action); ok {
					Emit(ch, Event{Type: ActionDispatched, Action: &a})
				}
				return result
			}
		}
	}
}

// Broadcaster fans events from one channel out to any number of subscribers.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewBroadcaster creates a Broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{})}
}

// Run forwards every event from in to the current subscribers until in is
// closed or ctx is done. Slow subscribers miss events rather than block.
func (b *Broadcaster) Run(ctx context.Context, in <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-in:
			if !ok {
				return
			}
			b.Publish(e)
		}
	}
}

// Publish delivers e to every current subscriber without blocking.
func (b *Broadcaster) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a channel receiving published events until ctx is done,
// at which point it is closed.
func (b *Broadcaster) Subscribe(ctx context.Context) <-chan Event {
	ch := NewChannel()

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}
