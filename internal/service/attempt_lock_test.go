package service

import (
	"budaya_backend/internal/util"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLocalAttemptLockerSerializes(t *testing.T) {
	l := NewLocalAttemptLocker()
	ctx := context.Background()
	opts := LockOptions{Wait: 5 * time.Second}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, 1, opts)
			if err != nil {
				t.Errorf("Lock: %v", err)
				return
			}
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxSeen)
	}
	if len(l.locks) != 0 {
		t.Fatalf("lock entries leaked: %d", len(l.locks))
	}
}

func TestLocalAttemptLockerIndependentKeys(t *testing.T) {
	l := NewLocalAttemptLocker()
	ctx := context.Background()

	unlock1, err := l.Lock(ctx, 1, LockOptions{})
	if err != nil {
		t.Fatalf("Lock 1: %v", err)
	}
	defer unlock1()

	unlock2, err := l.Lock(ctx, 2, LockOptions{Wait: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("Lock 2 should not wait for attempt 1: %v", err)
	}
	unlock2()
}

func TestLocalAttemptLockerTimeoutAndCancel(t *testing.T) {
	l := NewLocalAttemptLocker()

	unlock, err := l.Lock(context.Background(), 9, LockOptions{})
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	_, err = l.Lock(context.Background(), 9, LockOptions{Wait: 20 * time.Millisecond})
	if !errors.Is(err, util.ErrAttemptBusy) {
		t.Fatalf("err = %v, want ErrAttemptBusy", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Lock(ctx, 9, LockOptions{Wait: time.Second})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	unlock()
	unlock()

	again, err := l.Lock(context.Background(), 9, LockOptions{Wait: time.Second})
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	again()
	if len(l.locks) != 0 {
		t.Fatalf("lock entries leaked: %d", len(l.locks))
	}
}

func TestAttemptLockKey(t *testing.T) {
	if got := attemptLockKey(42); got != "quiz:attempt:lock:42" {
		t.Fatalf("attemptLockKey = %q", got)
	}
}
