package render

import (
	"sync/atomic"
	"testing"
	"time"
)

const testInterval = 5 * time.Millisecond

func TestInvalidateCoalesces(t *testing.T) {
	var paints int64
	s := NewScheduler(testInterval, func() { atomic.AddInt64(&paints, 1) })

	for i := 0; i < 20; i++ {
		s.Invalidate()
	}
	time.Sleep(10 * testInterval)

	if got := atomic.LoadInt64(&paints); got != 1 {
		t.Errorf("paints = %d, want 1 (burst must coalesce)", got)
	}
}

func TestInvalidateAfterFireRepaints(t *testing.T) {
	var paints int64
	s := NewScheduler(testInterval, func() { atomic.AddInt64(&paints, 1) })

	s.Invalidate()
	time.Sleep(10 * testInterval)
	s.Invalidate()
	time.Sleep(10 * testInterval)

	if got := atomic.LoadInt64(&paints); got != 2 {
		t.Errorf("paints = %d, want 2", got)
	}
}

func TestStopSuppressesPaint(t *testing.T) {
	var paints int64
	s := NewScheduler(testInterval, func() { atomic.AddInt64(&paints, 1) })

	s.Invalidate()
	s.Stop()
	time.Sleep(10 * testInterval)

	if got := atomic.LoadInt64(&paints); got != 0 {
		t.Errorf("paints = %d, want 0 after Stop", got)
	}

	s.Invalidate()
	time.Sleep(10 * testInterval)
	if got := atomic.LoadInt64(&paints); got != 0 {
		t.Errorf("paints = %d, want 0 (stopped scheduler never repaints)", got)
	}
}

func TestDispatchCarriesPaint(t *testing.T) {
	painted := make(chan struct{})
	s := NewScheduler(testInterval, func() { close(painted) })

	dispatched := int64(0)
	s.SetDispatch(func(f func()) {
		atomic.AddInt64(&dispatched, 1)
		f()
	})

	s.Invalidate()
	select {
	case <-painted:
	case <-time.After(time.Second):
		t.Fatal("paint never ran")
	}
	if atomic.LoadInt64(&dispatched) != 1 {
		t.Errorf("dispatched = %d, want 1", dispatched)
	}
}
