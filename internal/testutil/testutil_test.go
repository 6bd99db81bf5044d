package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceHandleGenerator_NumbersPerKind(t *testing.T) {
	g := NewSequenceHandleGenerator()

	assert.Equal(t, "marker-1", g.Next("marker"))
	assert.Equal(t, "marker-2", g.Next("marker"))
	assert.Equal(t, "layer-1", g.Next("layer"), "kinds count independently")
	assert.Equal(t, "marker-3", g.Next("marker"))
}

func TestManualScheduler_FireRunsInRegistrationOrder(t *testing.T) {
	s := NewManualScheduler()

	var order []int
	for i := 1; i <= 5; i++ {
		i := i
		s.After(time.Duration(6-i)*time.Second, func() { order = append(order, i) })
	}
	require.Equal(t, 5, s.Pending())

	fired := s.Fire()
	assert.Equal(t, 5, fired)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, order, "delay never reorders manual firing")
	assert.Zero(t, s.Pending())
}

func TestManualScheduler_CancelRemovesTask(t *testing.T) {
	s := NewManualScheduler()

	ran := false
	cancel := s.After(time.Second, func() { ran = true })
	cancel()
	cancel() // cancel after cancel is a no-op

	assert.Zero(t, s.Pending())
	s.Fire()
	assert.False(t, ran)
}

func TestManualScheduler_RescheduledTaskWaitsForNextFire(t *testing.T) {
	s := NewManualScheduler()

	var rounds int
	var reschedule func()
	reschedule = func() {
		rounds++
		if rounds < 3 {
			s.After(time.Second, reschedule)
		}
	}
	s.After(time.Second, reschedule)

	assert.Equal(t, 1, s.Fire(), "one tick fires one round")
	assert.Equal(t, 1, rounds)
	assert.Equal(t, 1, s.Pending(), "rescheduled task parks for the next tick")
}

func TestManualScheduler_FireUntilIdle(t *testing.T) {
	s := NewManualScheduler()

	var rounds int
	var reschedule func()
	reschedule = func() {
		rounds++
		if rounds < 3 {
			s.After(time.Second, reschedule)
		}
	}
	s.After(time.Second, reschedule)

	total := s.FireUntilIdle(10)
	assert.Equal(t, 3, total)
	assert.Zero(t, s.Pending())

	// Bounded: a task that always reschedules stops at maxRounds.
	var forever func()
	forever = func() { s.After(time.Second, forever) }
	s.After(time.Second, forever)
	assert.Equal(t, 2, s.FireUntilIdle(2))
	s.CancelAll()
}
