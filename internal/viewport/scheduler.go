package viewport

import (
	"sync"
	"time"
)

// Scheduler defers viewport operations under the zoom guard.
//
// The contract replaces ad hoc timer calls with an explicitly cancellable
// abstraction so Teardown can cancel all outstanding tasks
// deterministically instead of relying on liveness checks inside each
// callback. Implemented by TimerScheduler (production) and
// testutil.ManualScheduler (tests and the conformance harness).
type Scheduler interface {
	// After schedules fn to run once after d. The returned cancel removes
	// the task if it hasn't fired yet; calling it after firing is a no-op.
	After(d time.Duration, fn func()) (cancel func())

	// CancelAll removes every pending task.
	CancelAll()
}

// TimerScheduler runs deferred tasks on real timers.
type TimerScheduler struct {
	mu     sync.Mutex
	nextID int
	timers map[int]*time.Timer
}

// NewTimerScheduler creates an empty timer-backed scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[int]*time.Timer)}
}

// After schedules fn on a one-shot timer.
func (s *TimerScheduler) After(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t, ok := s.timers[id]; ok {
			t.Stop()
			delete(s.timers, id)
		}
	}
}

// CancelAll stops every pending timer.
//
// A timer whose callback has already started cannot be stopped; such a
// callback finds the controller torn down and no-ops at the guard.
func (s *TimerScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Pending reports tasks not yet fired. Used by tests.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
