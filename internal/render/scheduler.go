package render

import (
	"sync"
	"time"
)

// FrameInterval approximates one display refresh at 60 Hz.
const FrameInterval = time.Second / 60

// Scheduler coalesces dirty marks into at most one pending repaint per
// refresh interval. Any number of Invalidate calls inside one interval
// produce a single paint, and that paint always sees the final state
// after the last mutation.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	paint    func()
	dispatch func(func())
	timer    *time.Timer
	dirty    bool
	pending  bool
	stopped  bool
}

// NewScheduler creates a scheduler that invokes paint on the next tick
// after an invalidation. Paint runs on the timer goroutine unless a
// dispatch function is installed with SetDispatch.
func NewScheduler(interval time.Duration, paint func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		paint:    paint,
		dispatch: func(f func()) { f() },
	}
}

// SetDispatch routes paint execution through fn, typically the UI
// toolkit's main-thread hop.
func (s *Scheduler) SetDispatch(fn func(func())) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.dispatch = fn
	}
}

// Invalidate marks the frame dirty and arms the tick if none is pending.
func (s *Scheduler) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	if s.pending || s.stopped {
		return
	}
	s.pending = true
	s.timer = time.AfterFunc(s.interval, s.fire)
}

// Stop cancels any pending repaint; it is not re-issued afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	s.pending = false
	if s.stopped || !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	paint := s.paint
	dispatch := s.dispatch
	s.mu.Unlock()

	dispatch(paint)
}
