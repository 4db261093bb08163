package anim

import (
	"math"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

func TestLoopStartStop(t *testing.T) {
	q := NewFrameQueue()
	var elapsed []float64
	l := NewLoop(q, func(e float64) { elapsed = append(elapsed, e) })

	if l.Running() {
		t.Fatal("new loop is running")
	}
	l.Start()
	if !l.Running() || q.Pending() != 1 {
		t.Fatalf("after Start: running=%v pending=%d", l.Running(), q.Pending())
	}

	for i := 0; i < 5; i++ {
		q.Flush(time.Second + time.Duration(i)*frame)
	}
	if l.Frames() != 5 || len(elapsed) != 5 {
		t.Fatalf("ran %d frames, want 5", l.Frames())
	}
	if elapsed[0] != 0 {
		t.Errorf("first frame elapsed = %v, want 0", elapsed[0])
	}
	if want := (4 * frame).Seconds(); math.Abs(elapsed[4]-want) > 1e-9 {
		t.Errorf("fifth frame elapsed = %v, want %v", elapsed[4], want)
	}

	l.Stop()
	if l.Running() || q.Pending() != 0 {
		t.Fatalf("after Stop: running=%v pending=%d", l.Running(), q.Pending())
	}
	q.Flush(2 * time.Second)
	if l.Frames() != 5 {
		t.Errorf("frame ran after Stop")
	}
}

func TestLoopStopIsIdempotent(t *testing.T) {
	q := NewFrameQueue()
	l := NewLoop(q, func(float64) {})

	l.Stop()
	l.Start()
	l.Stop()
	l.Stop()
	if l.State() != Stopped || q.Pending() != 0 {
		t.Errorf("state=%v pending=%d", l.State(), q.Pending())
	}
}

func TestLoopRestartKeepsSingleChain(t *testing.T) {
	q := NewFrameQueue()
	calls := 0
	l := NewLoop(q, func(float64) { calls++ })

	l.Start()
	l.Start()
	l.Start()
	if q.Pending() != 1 {
		t.Fatalf("Pending() = %d after repeated Start, want 1", q.Pending())
	}
	q.Flush(0)
	q.Flush(frame)
	if calls != 2 {
		t.Errorf("two flushes ran %d frames, want 2", calls)
	}
}

// leakyScheduler ignores cancellation, like a host that already dequeued the callback.
type leakyScheduler struct {
	cbs []FrameCallback
}

func (s *leakyScheduler) RequestFrame(cb FrameCallback) FrameID {
	s.cbs = append(s.cbs, cb)
	return FrameID(len(s.cbs))
}

func (s *leakyScheduler) CancelFrame(FrameID) {}

func TestLoopIgnoresStaleCallbacks(t *testing.T) {
	s := &leakyScheduler{}
	calls := 0
	l := NewLoop(s, func(float64) { calls++ })

	l.Start()
	stale := s.cbs[0]
	l.Stop()
	stale(0)
	if calls != 0 {
		t.Fatalf("stale callback ran the frame after Stop")
	}

	l.Start()
	stale(frame)
	if calls != 0 {
		t.Fatalf("callback from a previous run ran the frame")
	}
	s.cbs[len(s.cbs)-1](frame)
	if calls != 1 {
		t.Errorf("current callback ran %d frames, want 1", calls)
	}
}

func TestLoopStopFromFrame(t *testing.T) {
	q := NewFrameQueue()
	var l *Loop
	l = NewLoop(q, func(float64) { l.Stop() })

	l.Start()
	q.Flush(0)
	if l.Running() || q.Pending() != 0 {
		t.Errorf("loop kept going after stopping itself: running=%v pending=%d", l.Running(), q.Pending())
	}
}

func TestLoopStopFromEarlierCallbackInSameFlush(t *testing.T) {
	q := NewFrameQueue()
	ran := 0
	l := NewLoop(q, func(float64) { ran++ })

	q.RequestFrame(func(time.Duration) { l.Stop() })
	l.Start()
	q.Flush(0)

	if ran != 0 || l.Frames() != 0 {
		t.Errorf("frame ran after Stop in the same flush: ran=%d frames=%d", ran, l.Frames())
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() = %d after stop", q.Pending())
	}
}

func TestLoopElapsedSurvivesRestart(t *testing.T) {
	q := NewFrameQueue()
	var last float64
	l := NewLoop(q, func(e float64) { last = e })

	l.Start()
	q.Flush(10 * time.Second)
	q.Flush(11 * time.Second)
	l.Stop()

	l.Start()
	q.Flush(15 * time.Second)
	if last != 5 {
		t.Errorf("elapsed after restart = %v, want 5", last)
	}

	l.Reset()
	q.Flush(20 * time.Second)
	if last != 0 {
		t.Errorf("elapsed after Reset = %v, want 0", last)
	}
}

func TestLoopElapsedNeverGoesBack(t *testing.T) {
	q := NewFrameQueue()
	var got []float64
	l := NewLoop(q, func(e float64) { got = append(got, e) })

	l.Start()
	for _, ts := range []time.Duration{5 * time.Second, 6 * time.Second, 5500 * time.Millisecond, 7 * time.Second} {
		q.Flush(ts)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("elapsed went back: %v", got)
		}
	}
}
