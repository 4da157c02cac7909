package xsema_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"code.vectorforge.dev/hpq/internal/xsema"
)

func TestWaitBlocksUntilPost(t *testing.T) {
	s := xsema.New()
	done := make(chan struct{})

	go func() {
		if err := s.Wait(context.Background()); err != nil {
			t.Errorf("Wait: %v", err)
		}
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("Wait returned before Post")
	case <-time.After(20 * time.Millisecond):
	}

	s.Post()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Wait did not unblock after Post")
	}
}

func TestOverPostingIsHarmless(t *testing.T) {
	s := xsema.New()
	for range 10 {
		s.Post()
	}
	for i := range 10 {
		if err := s.Wait(context.Background()); err != nil {
			t.Fatalf("Wait(%d): %v", i, err)
		}
	}
}

func TestWaitRespectsContextCancellation(t *testing.T) {
	s := xsema.New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := s.Wait(ctx); err == nil {
		t.Fatalf("Wait on an empty semaphore with a timeout should have returned an error")
	}
}

func TestManyWaitersOnePostWakesExactlyOne(t *testing.T) {
	s := xsema.New()
	const waiters = 8
	acquired := make(chan int, waiters)

	var wg sync.WaitGroup
	for i := range waiters {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := s.Wait(context.Background()); err == nil {
				acquired <- id
			}
		}(i)
	}

	s.Post()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("no waiter acquired the single posted permit")
	}

	select {
	case id := <-acquired:
		t.Fatalf("waiter %d also acquired after a single Post", id)
	case <-time.After(20 * time.Millisecond):
	}

	// Release the remaining waiters so the test doesn't leak goroutines.
	for range waiters - 1 {
		s.Post()
	}
	wg.Wait()
	close(acquired)
}
