package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunNow(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var runs atomic.Int32
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	ran, err := s.RunNow(context.Background(), "counter")
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int32(1), runs.Load())

	_, err = s.RunNow(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestScheduler_OverlapSkipped(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	var runs atomic.Int32
	s.AddJob("slow", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		close(started)
		<-release
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		ran, err := s.RunNow(context.Background(), "slow")
		assert.NoError(t, err)
		assert.True(t, ran)
	}()
	<-started

	// Second trigger while the first run is in flight must be skipped.
	ran, err := s.RunNow(context.Background(), "slow")
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, int32(1), runs.Load())

	close(release)
	<-done
}

func TestScheduler_StartStopStatus(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	executed := make(chan struct{}, 1)
	s.AddJob("sweep", time.Hour, func(ctx context.Context) error {
		select {
		case executed <- struct{}{}:
		default:
		}
		return nil
	})

	statuses := s.Status()
	require.Len(t, statuses, 1)
	assert.Equal(t, "sweep", statuses[0].Name)
	assert.False(t, statuses[0].Running)
	assert.Nil(t, statuses[0].LastRun)

	require.NoError(t, s.StartJob("sweep"))

	// Jobs run once immediately on start.
	select {
	case <-executed:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run after start")
	}

	statuses = s.Status()
	assert.True(t, statuses[0].Running)

	require.NoError(t, s.StopJob("sweep"))
	statuses = s.Status()
	assert.False(t, statuses[0].Running)
	assert.NotNil(t, statuses[0].LastRun)

	assert.ErrorIs(t, s.StartJob("missing"), ErrJobNotFound)
	assert.ErrorIs(t, s.StopJob("missing"), ErrJobNotFound)
}

func TestScheduler_StartJobIdempotent(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var runs atomic.Int32
	s.AddJob("idem", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	require.NoError(t, s.StartJob("idem"))
	require.NoError(t, s.StartJob("idem"))

	// Give the single loop its immediate first run.
	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, int32(1), runs.Load())
}
