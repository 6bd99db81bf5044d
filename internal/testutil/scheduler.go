package testutil

import (
	"sync"
	"time"
)

// ManualScheduler implements the viewport scheduler contract without real
// timers. Deferred tasks accumulate until the test (or harness step) fires
// them explicitly, making guard-retry ordering fully deterministic.
type ManualScheduler struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]deferredTask
}

type deferredTask struct {
	id    int
	delay time.Duration
	fn    func()
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]deferredTask)}
}

// After registers fn to run when the test fires pending tasks.
// The returned cancel removes the task if it hasn't fired yet.
func (s *ManualScheduler) After(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.tasks[id] = deferredTask{id: id, delay: d, fn: fn}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.tasks, id)
	}
}

// CancelAll drops every pending task.
func (s *ManualScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[int]deferredTask)
}

// Pending reports how many tasks are waiting to fire.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Fire runs every task registered so far, in registration order.
// Tasks registered by a firing task (a rescheduled guard retry) stay
// pending for the next Fire call, mirroring one timer tick.
func (s *ManualScheduler) Fire() int {
	s.mu.Lock()
	snapshot := make([]deferredTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		snapshot = append(snapshot, t)
	}
	s.tasks = make(map[int]deferredTask)
	s.mu.Unlock()

	// Registration order, not map order.
	for i := 1; i < len(snapshot); i++ {
		for j := i; j > 0 && snapshot[j-1].id > snapshot[j].id; j-- {
			snapshot[j-1], snapshot[j] = snapshot[j], snapshot[j-1]
		}
	}
	for _, t := range snapshot {
		t.fn()
	}
	return len(snapshot)
}

// FireUntilIdle fires repeatedly until no tasks remain, bounded to avoid
// spinning forever on a self-rescheduling task. Returns total tasks fired.
func (s *ManualScheduler) FireUntilIdle(maxRounds int) int {
	total := 0
	for round := 0; round < maxRounds; round++ {
		n := s.Fire()
		total += n
		if n == 0 {
			break
		}
	}
	return total
}
