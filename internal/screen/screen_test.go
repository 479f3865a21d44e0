package screen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestErrorTrackerThreshold(t *testing.T) {
	tracker := NewErrorTracker(3)

	require.False(t, tracker.Failure())
	require.False(t, tracker.Failure())
	require.True(t, tracker.Failure())

	// Counter restarted after signalling
	require.False(t, tracker.Failure())

	tracker.Success()
	require.Equal(t, 0, tracker.Failures())
}

func TestErrorTrackerSuccessResets(t *testing.T) {
	tracker := NewErrorTracker(3)

	tracker.Failure()
	tracker.Failure()
	tracker.Success()

	require.False(t, tracker.Failure())
	require.False(t, tracker.Failure())
	require.True(t, tracker.Failure())
}

func TestDebouncerRunsTrailingCallOnly(t *testing.T) {
	debouncer := NewDebouncer(30 * time.Millisecond)

	runs := make(chan string, 2)
	debouncer.Do(func() { runs <- "ab" })
	debouncer.Do(func() { runs <- "abc" })

	require.Equal(t, "abc", <-runs)
	select {
	case extra := <-runs:
		t.Fatalf("unexpected extra debounced run: %q", extra)
	default:
	}
}

func TestDebouncerStop(t *testing.T) {
	debouncer := NewDebouncer(20 * time.Millisecond)

	ran := make(chan struct{}, 1)
	debouncer.Do(func() { ran <- struct{}{} })
	debouncer.Stop()

	time.Sleep(60 * time.Millisecond)
	select {
	case <-ran:
		t.Fatal("debounced call ran after Stop")
	default:
	}
}

func TestGuardRejectsConcurrentBegin(t *testing.T) {
	var guard Guard

	require.NoError(t, guard.Begin())
	require.ErrorIs(t, guard.Begin(), ErrBusy)

	guard.End()
	require.NoError(t, guard.Begin())
}
