package anim

import (
	"sync"
	"time"
)

// FrameID identifies a requested frame callback.
type FrameID uint64

// FrameCallback receives the frame timestamp, measured from an arbitrary
// monotonic origin chosen by the host.
type FrameCallback func(ts time.Duration)

// Scheduler hands out one-shot frame callbacks.
type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a Scheduler the host flushes once per device frame.
// It is safe for concurrent use.
type FrameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]FrameCallback
	order   []FrameID
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameID]FrameCallback)}
}

func (q *FrameQueue) RequestFrame(cb FrameCallback) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending[q.next] = cb
	q.order = append(q.order, q.next)
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, id)
}

// Flush runs every callback requested before the call, in request order.
// Callbacks requested while flushing wait for the next Flush.
// It returns the number of callbacks run.
func (q *FrameQueue) Flush(ts time.Duration) int {
	q.mu.Lock()
	batch := q.order
	q.order = nil
	q.mu.Unlock()

	ran := 0
	for _, id := range batch {
		q.mu.Lock()
		cb, ok := q.pending[id]
		delete(q.pending, id)
		q.mu.Unlock()
		if !ok {
			continue
		}
		cb(ts)
		ran++
	}
	return ran
}

// Pending returns how many callbacks are waiting.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
