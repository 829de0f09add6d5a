package location

import "sync"

// IDAllocator hands out monotonically increasing location IDs. It replaces a
// process-wide counter: one allocator is threaded through loading, building
// and saving, and tests reset or seed it explicitly.
//
// The zero value is not ready for use; call NewIDAllocator.
type IDAllocator struct {
	mu   sync.Mutex
	next int
}

// NewIDAllocator returns an allocator whose first ID is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns the next ID and advances the counter.
func (a *IDAllocator) Next() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next++
	return id
}

// Peek returns the ID that Next would hand out, without advancing.
func (a *IDAllocator) Peek() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}

// Reset restarts the counter at 1.
func (a *IDAllocator) Reset() {
	a.Seed(1)
}

// Seed makes next the next ID handed out. Values below 1 are clamped to 1.
func (a *IDAllocator) Seed(next int) {
	if next < 1 {
		next = 1
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next = next
}

// Observe records an ID that was assigned elsewhere (e.g. read from a file),
// so that later calls to Next never collide with it.
func (a *IDAllocator) Observe(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id >= a.next {
		a.next = id + 1
	}
}
