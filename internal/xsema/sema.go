// Package xsema provides a lock-free counting semaphore tuned for one
// pattern: a producer posts once per item, a consumer tries to acquire a
// permit without blocking first and only parks on the semaphore if that
// fails. Unlike [golang.org/x/sync/semaphore.Weighted], which panics if a
// Release would push the available weight above the capacity given to
// NewWeighted, Post here never fails: callers may post more times than
// there are waiters, and the excess is simply a higher permit count,
// exactly the "over-posting is harmless" contract [code.vectorforge.dev/hpq]'s
// BlockingQueue needs.
package xsema

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Sema is a counting semaphore. The zero value is not usable; use [New].
type Sema struct {
	count atomix.Int64
	gen   atomix.Pointer[chan struct{}]
}

// New creates a semaphore with zero permits available.
func New() *Sema {
	s := &Sema{}
	ch := make(chan struct{})
	s.gen.StoreRelaxed(&ch)
	return s
}

// Post adds one permit and wakes every goroutine currently parked in
// [Sema.Wait]. It never blocks and never fails.
func (s *Sema) Post() {
	s.count.AddAcqRel(1)

	newCh := make(chan struct{})
	sw := spin.Wait{}
	for {
		old := s.gen.LoadAcquire()
		if s.gen.CompareAndSwapAcqRel(old, &newCh) {
			close(*old)
			return
		}
		sw.Once()
	}
}

// tryAcquire attempts to consume one permit without blocking.
func (s *Sema) tryAcquire() bool {
	sw := spin.Wait{}
	for {
		c := s.count.LoadAcquire()
		if c <= 0 {
			return false
		}
		if s.count.CompareAndSwapAcqRel(c, c-1) {
			return true
		}
		sw.Once()
	}
}

// Wait blocks until a permit is available or ctx is done. Spurious wakeups
// (a permit the wake was for gets taken by a different waiter first) are
// expected and handled by retrying: Wait only returns nil once it has
// actually consumed a permit.
func (s *Sema) Wait(ctx context.Context) error {
	for {
		if s.tryAcquire() {
			return nil
		}

		ch := *s.gen.LoadAcquire()

		// Re-check: a Post may have landed between the failed tryAcquire
		// above and capturing ch. Without this, we could park on a
		// channel that will never close because the permit already
		// arrived on the previous generation.
		if s.tryAcquire() {
			return nil
		}

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
