package anim

import (
	"testing"
	"time"
)

func TestFrameQueueRunsInOrder(t *testing.T) {
	q := NewFrameQueue()
	var got []int
	for i := 0; i < 3; i++ {
		q.RequestFrame(func(time.Duration) { got = append(got, i) })
	}

	if n := q.Flush(16 * time.Millisecond); n != 3 {
		t.Fatalf("Flush() ran %d callbacks, want 3", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v", got)
		}
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() = %d after flush", q.Pending())
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	id := q.RequestFrame(func(time.Duration) { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(id)

	if n := q.Flush(0); n != 0 || ran {
		t.Errorf("cancelled callback ran (n=%d)", n)
	}
}

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	q := NewFrameQueue()
	calls := 0
	var cb FrameCallback
	cb = func(time.Duration) {
		calls++
		q.RequestFrame(cb)
	}
	q.RequestFrame(cb)

	q.Flush(0)
	q.Flush(0)
	if calls != 2 {
		t.Errorf("self-rescheduling callback ran %d times over two flushes, want 2", calls)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", q.Pending())
	}
}

func TestFrameQueueCancelDuringFlush(t *testing.T) {
	q := NewFrameQueue()
	var second FrameID
	secondRan := false
	q.RequestFrame(func(time.Duration) { q.CancelFrame(second) })
	second = q.RequestFrame(func(time.Duration) { secondRan = true })

	q.Flush(0)
	if secondRan {
		t.Error("callback cancelled earlier in the same flush still ran")
	}
}

func TestPumpUsesClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)
	q := NewFrameQueue()
	p := NewPump(q, clock)

	var got time.Duration
	q.RequestFrame(func(ts time.Duration) { got = ts })
	clock.Advance(250 * time.Millisecond)
	p.Tick()

	if got != 250*time.Millisecond {
		t.Errorf("timestamp = %v, want 250ms", got)
	}
}
