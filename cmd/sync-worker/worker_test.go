package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/familytree/gallery-api/internal/domain/image"
)

type blockingSyncer struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *blockingSyncer) SyncImages(ctx context.Context) (*image.SyncResult, error) {
	s.calls.Add(1)
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &image.SyncResult{Errors: []string{}}, nil
}

func TestWorkerCoalescesRequests(t *testing.T) {
	s := &blockingSyncer{release: make(chan struct{})}
	w := newWorker(s)
	finished := make(chan struct{}, 10)
	w.done = func(*image.SyncResult, error) { finished <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.run(ctx)

	w.request()
	waitFor(t, func() bool { return s.calls.Load() == 1 })

	// first pass is still running; these collapse into a single follow-up
	for i := 0; i < 5; i++ {
		w.request()
	}

	close(s.release)
	for i := 0; i < 2; i++ {
		select {
		case <-finished:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for pass %d", i+1)
		}
	}

	select {
	case <-finished:
		t.Fatal("expected exactly two passes")
	case <-time.After(100 * time.Millisecond):
	}
	if got := s.calls.Load(); got != 2 {
		t.Errorf("expected 2 sync calls, got %d", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
