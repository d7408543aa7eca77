package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Source is a store whose state can be observed.
// *store.Store satisfies it.
type Source[S any] interface {
	GetState() S
	Subscribe(listener func()) (unsubscribe func())
}

// Watch streams the state of src until ctx is done.
//
// The first event is a StateSnapshot of the current state. Every later state
// change produces one StateDelta holding the patches from the previously
// emitted state. States are converted to their JSON shape before diffing, so
// the snapshot and the patches are exactly what a JSON client would see.
// Emission never blocks the store: when the consumer falls behind, events are
// dropped. The channel is closed once ctx is done.
func Watch[S any](ctx context.Context, src Source[S], opts ...Option) <-chan Event {
	o := ApplyOptions(opts...)
	ch := NewChannel()

	var (
		mu     sync.Mutex
		closed bool
		prev   any
	)

	mu.Lock()
	defer mu.Unlock()

	unsubscribe := src.Subscribe(func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		next, err := JSONShape(src.GetState())
		if err != nil {
			o.Logger.WarnContext(ctx, "state not encodable, delta skipped", "error", err)
			return
		}
		EmitDelta(ch, Diff(prev, next)...)
		prev = next
	})

	snapshot, err := JSONShape(src.GetState())
	if err != nil {
		o.Logger.WarnContext(ctx, "state not encodable, snapshot skipped", "error", err)
	} else {
		EmitSnapshot(ch, snapshot)
	}
	prev = snapshot

	go func() {
		<-ctx.Done()
		unsubscribe()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch
}

// JSONShape converts v to the value a JSON decoder would produce for its encoding:
// maps become map[string]any, slices []any, numbers float64.
func JSONShape(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	var shaped any
	if err := json.Unmarshal(data, &shaped); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return shaped, nil
}
