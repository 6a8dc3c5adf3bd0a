// Package dedup suppresses duplicate webhook deliveries. Slack redelivers
// events on slow or non-200 responses, so every delivery id is checked
// against a window of recently processed ids before any side effect runs.
package dedup

import (
	"context"
	"sync"
)

// Window records processed event ids. Seen marks the id as processed and
// reports whether it had been recorded before.
type Window interface {
	Seen(ctx context.Context, eventID string) (bool, error)
}

// memoryWindow is a fixed-capacity FIFO set. Once full, recording a new id
// evicts the oldest. This is an approximation: a redelivery arriving after
// capacity-many other events slips through.
type memoryWindow struct {
	mu    sync.Mutex
	set   map[string]struct{}
	order []string
	head  int
	size  int
}

func NewMemoryWindow(capacity int) Window {
	if capacity <= 0 {
		capacity = 1000
	}
	return &memoryWindow{
		set:   make(map[string]struct{}, capacity),
		order: make([]string, capacity),
	}
}

func (w *memoryWindow) Seen(_ context.Context, eventID string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.set[eventID]; ok {
		return true, nil
	}

	if w.size == len(w.order) {
		oldest := w.order[w.head]
		delete(w.set, oldest)
	} else {
		w.size++
	}
	w.order[w.head] = eventID
	w.head = (w.head + 1) % len(w.order)
	w.set[eventID] = struct{}{}
	return false, nil
}
