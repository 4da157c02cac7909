// Package hpq provides an unbounded, lock-free multi-producer
// multi-consumer FIFO queue, built on the hazard-pointer safe memory
// reclamation subsystem in [code.vectorforge.dev/hpq/hazard].
//
// # Quick Start
//
//	q := hpq.New[Event]()
//
//	ctx := hazard.Acquire(hazard.Default())
//	defer ctx.Release()
//
//	v := Event{ID: 1}
//	q.Enqueue(ctx, &v)
//
//	got, err := q.DequeueTry(ctx)
//	if err == nil {
//	    fmt.Println(got)
//	}
//
// Every goroutine that touches a Queue must first acquire a hazard
// [hazard.Context], once, and release it on the way out — see the hazard
// package's documentation for why Go cannot do this implicitly.
//
// # Algorithm
//
// Queue is a Michael–Scott lock-free FIFO: a singly linked list with a
// sentinel node, atomic head/tail pointers, and a helper compare-and-swap
// that lets any thread finish a lagging tail advance. Every dereference of
// head, tail, or a node's next pointer is protected by a hazard pointer, so
// a node unlinked by one producer/consumer is never freed while another
// goroutine is still dereferencing it — see the hazard package.
//
// # Blocking Dequeue
//
// [BlockingQueue] adds a counting semaphore so a consumer can block until
// an element is available, instead of busy-polling [Queue.DequeueTry]:
//
//	bq := hpq.NewBlocking[Event]()
//	go func() {
//	    ctx := hazard.Acquire(hazard.Default())
//	    defer ctx.Release()
//	    bq.Enqueue(ctx, &v)
//	}()
//
//	ctx := hazard.Acquire(hazard.Default())
//	defer ctx.Release()
//	got, err := bq.DequeueWait(ctx, context.Background())
//
// # Error Handling
//
// DequeueTry returns [ErrWouldBlock] and DequeueWait returns the context's
// own error (ctx.Err()) rather than a bare bool, for ecosystem consistency with
// [code.hybscloud.com/iox]. ErrWouldBlock on DequeueTry is a normal
// outcome (queue observed empty), not a failure.
//
// # Non-goals
//
// No priority ordering, no bounded capacity or backpressure signaling, no
// fairness among blocked waiters, no durability, no cross-process sharing.
// The reclamation subsystem only delays destructor execution of unlinked
// queue nodes — it does not manage any other resource.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomics with explicit
// memory ordering and [code.hybscloud.com/spin] for CPU pause instructions
// in CAS retry loops, the same stack the hazard package itself is built on.
package hpq
