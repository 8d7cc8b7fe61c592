package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLocalSerializesSameKey(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "image-1")
			if err != nil {
				t.Error(err)
				return
			}
			defer release()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxInside)
	}
	if len(l.slots) != 0 {
		t.Errorf("expected slots to be released, %d left", len(l.slots))
	}
}

func TestLocalDifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocal()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	releaseA, err := l.Acquire(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	defer releaseA()

	releaseB, err := l.Acquire(ctx, "b")
	if err != nil {
		t.Fatalf("expected independent key to be free, got %v", err)
	}
	releaseB()
}

func TestLocalAcquireHonorsContext(t *testing.T) {
	l := NewLocal()

	release, err := l.Acquire(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := l.Acquire(ctx, "a"); !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired, got %v", err)
	}
}

func TestLocalReleaseIsIdempotent(t *testing.T) {
	l := NewLocal()
	release, _ := l.Acquire(context.Background(), "a")
	release()
	release()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	again, err := l.Acquire(ctx, "a")
	if err != nil {
		t.Fatalf("expected lock to be free, got %v", err)
	}
	again()
}

func TestNewFallsBackToLocal(t *testing.T) {
	if _, ok := New(nil, time.Second).(*Local); !ok {
		t.Fatal("expected Local locker without redis client")
	}
}
