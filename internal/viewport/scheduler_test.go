package viewport

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerScheduler_FiresTask(t *testing.T) {
	s := NewTimerScheduler()

	var wg sync.WaitGroup
	wg.Add(1)
	fired := atomic.Bool{}
	s.After(time.Millisecond, func() {
		fired.Store(true)
		wg.Done()
	})

	wg.Wait()
	assert.True(t, fired.Load())
	assert.Zero(t, s.Pending(), "fired task removes itself")
}

func TestTimerScheduler_CancelPreventsFiring(t *testing.T) {
	s := NewTimerScheduler()

	fired := atomic.Bool{}
	cancel := s.After(50*time.Millisecond, func() { fired.Store(true) })
	cancel()

	require.Zero(t, s.Pending())
	time.Sleep(80 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestTimerScheduler_CancelAll(t *testing.T) {
	s := NewTimerScheduler()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		s.After(50*time.Millisecond, func() { fired.Add(1) })
	}
	require.Equal(t, 5, s.Pending())

	s.CancelAll()
	assert.Zero(t, s.Pending())

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, fired.Load(), "cancelled tasks never fire")
}

func TestTimerScheduler_CancelAfterFireIsNoOp(t *testing.T) {
	s := NewTimerScheduler()

	var wg sync.WaitGroup
	wg.Add(1)
	cancel := s.After(time.Millisecond, func() { wg.Done() })
	wg.Wait()

	assert.NotPanics(t, func() { cancel() })
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "zooming", StateZooming.String())
	assert.Equal(t, "unknown", State(42).String())
}
