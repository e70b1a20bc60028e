package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal(msg)
	}
}

func TestSessionFetchesImmediately(t *testing.T) {
	clock := clockwork.NewFakeClock()
	snap := &Snapshot{GeneratedAt: time.Now().UTC()}
	fetched := make(chan struct{}, 1)

	s := NewSession(func(ctx context.Context) (*Snapshot, error) {
		fetched <- struct{}{}
		return snap, nil
	}, 30*time.Second, WithClock(clock))

	require.Nil(t, s.Snapshot())
	require.True(t, s.Stale())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	waitFor(t, fetched, "no fetch before first tick")
	require.Eventually(t, func() bool { return s.Snapshot() == snap }, time.Second, 10*time.Millisecond)
	require.False(t, s.Stale())
}

func TestSessionPollsOnCadence(t *testing.T) {
	clock := clockwork.NewFakeClock()
	interval := 30 * time.Second
	fetched := make(chan struct{}, 8)

	s := NewSession(func(ctx context.Context) (*Snapshot, error) {
		fetched <- struct{}{}
		return &Snapshot{}, nil
	}, interval, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	waitFor(t, fetched, "no immediate fetch")

	// The loop must be blocked on the ticker before we advance
	clock.BlockUntil(1)
	clock.Advance(interval)
	waitFor(t, fetched, "no fetch after first interval")

	clock.BlockUntil(1)
	clock.Advance(interval)
	waitFor(t, fetched, "no fetch after second interval")
}

func TestSessionKeepsLastGoodSnapshotOnFailure(t *testing.T) {
	clock := clockwork.NewFakeClock()
	interval := 30 * time.Second
	good := &Snapshot{GeneratedAt: time.Now().UTC()}
	fetched := make(chan struct{}, 8)
	var calls atomic.Int64

	s := NewSession(func(ctx context.Context) (*Snapshot, error) {
		defer func() { fetched <- struct{}{} }()
		if calls.Add(1) == 1 {
			return good, nil
		}
		return nil, errors.New("store unreachable")
	}, interval, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	waitFor(t, fetched, "no immediate fetch")
	require.Eventually(t, func() bool { return s.Snapshot() == good }, time.Second, 10*time.Millisecond)

	clock.BlockUntil(1)
	clock.Advance(interval)
	waitFor(t, fetched, "no fetch after interval")

	// Failed poll never clears the displayed data
	require.Equal(t, good, s.Snapshot())
	require.False(t, s.Stale())

	clock.BlockUntil(1)
	clock.Advance(interval)
	waitFor(t, fetched, "no fetch after second interval")

	// Two missed cycles since the last success
	require.Equal(t, good, s.Snapshot())
	require.True(t, s.Stale())
}

func TestSessionSkipsTicksWhileFetchInFlight(t *testing.T) {
	clock := clockwork.NewFakeClock()
	interval := 30 * time.Second
	started := make(chan struct{}, 8)
	release := make(chan struct{})
	var starts atomic.Int64

	s := NewSession(func(ctx context.Context) (*Snapshot, error) {
		starts.Add(1)
		started <- struct{}{}
		<-release
		return &Snapshot{}, nil
	}, interval, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	waitFor(t, started, "no immediate fetch")

	// Ticks arriving while the first fetch is still running must not
	// start a second one
	clock.BlockUntil(1)
	clock.Advance(interval)
	clock.BlockUntil(1)
	clock.Advance(interval)

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int64(1), starts.Load())

	close(release)
	require.Eventually(t, func() bool { return s.Snapshot() != nil }, time.Second, 10*time.Millisecond)
}

func TestSessionStopsOnCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	fetched := make(chan struct{}, 1)

	s := NewSession(func(ctx context.Context) (*Snapshot, error) {
		fetched <- struct{}{}
		return &Snapshot{}, nil
	}, 30*time.Second, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	waitFor(t, fetched, "no immediate fetch")
	cancel()
	waitFor(t, done, "run did not return after cancel")
}
