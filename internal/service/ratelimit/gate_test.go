package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestFirstAcquireNeverWaits(t *testing.T) {
	g := New(10 * time.Second)
	if wait := g.TryAcquire(); wait != 0 {
		t.Fatalf("first acquire should not wait, got %v", wait)
	}
}

func TestTryAcquireRemainingWait(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	g := New(10*time.Second, WithClock(func() time.Time { return now }))

	g.RecordAttempt(now)

	now = now.Add(3 * time.Second)
	if wait := g.TryAcquire(); wait != 7*time.Second {
		t.Fatalf("want 7s wait, got %v", wait)
	}

	now = now.Add(8 * time.Second)
	if wait := g.TryAcquire(); wait != 0 {
		t.Fatalf("interval elapsed, want 0, got %v", wait)
	}
}

func TestRecordAttemptAlwaysAdvances(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	g := New(10*time.Second, WithClock(func() time.Time { return now }))

	// Attempts are recorded regardless of fetch outcome, so a second
	// back-to-back caller always sees the full interval.
	g.RecordAttempt(now)
	g.RecordAttempt(now.Add(time.Second))
	now = now.Add(time.Second)
	if wait := g.TryAcquire(); wait != 10*time.Second {
		t.Fatalf("want full interval, got %v", wait)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	g := New(time.Hour)
	g.RecordAttempt(time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := g.Wait(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestExclusiveSerializesFetchWindows(t *testing.T) {
	const interval = 50 * time.Millisecond
	g := New(interval, WithExclusive())

	var mu sync.Mutex
	var starts []time.Time

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := g.Wait(context.Background()); err != nil {
				t.Errorf("wait: %v", err)
				return
			}
			mu.Lock()
			starts = append(starts, time.Now())
			mu.Unlock()
			g.RecordAttempt(time.Now())
		}()
	}
	wg.Wait()

	if len(starts) != 2 {
		t.Fatalf("want 2 fetch starts, got %d", len(starts))
	}
	gap := starts[1].Sub(starts[0])
	if gap < 0 {
		gap = -gap
	}
	if gap < interval {
		t.Fatalf("exclusive gate let fetches start %v apart, want >= %v", gap, interval)
	}
}

func TestExclusiveWaitCancelReleasesWindow(t *testing.T) {
	const interval = 100 * time.Millisecond
	g := New(interval, WithExclusive())

	// One complete cycle so the gate is hot.
	if _, err := g.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	g.RecordAttempt(time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := g.Wait(ctx); err == nil {
		t.Fatal("expected context error")
	}

	// The canceled wait must have released the window; otherwise this
	// blocks on the mutex forever and the test times out.
	waited, err := g.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait after cancel: %v", err)
	}
	if waited <= 0 {
		t.Fatalf("gate should still be hot, waited=%v", waited)
	}
	g.RecordAttempt(time.Now())
}

func TestWaitZeroWhenIdle(t *testing.T) {
	g := New(10 * time.Second)
	waited, err := g.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if waited != 0 {
		t.Fatalf("idle gate should not wait, got %v", waited)
	}
}
