//go:build !race

// This file contains examples that use atomix concurrency primitives and
// the hazard-pointer protocol. These trigger false positives with Go's
// race detector because atomix atomic operations and the hazard "publish,
// fence, re-read" protocol appear as ordinary memory accesses to the
// detector, which cannot see the happens-before relationship they
// establish. The examples are correct; they're excluded from race testing.

package hpq_test

import (
	"context"
	"fmt"
	"sync"

	"code.vectorforge.dev/hpq"
	"code.vectorforge.dev/hpq/hazard"
)

// ExampleNew demonstrates basic single-goroutine enqueue/dequeue.
func ExampleNew() {
	q := hpq.New[int]()
	ctx := hazard.Acquire(nil)
	defer ctx.Release()

	for i := 1; i <= 5; i++ {
		v := i * 10
		q.Enqueue(ctx, &v)
	}

	for range 5 {
		v, _ := q.DequeueTry(ctx)
		fmt.Println(v)
	}

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleQueue_DequeueTry demonstrates the non-blocking empty-queue case.
func ExampleQueue_DequeueTry() {
	q := hpq.New[string]()
	ctx := hazard.Acquire(nil)
	defer ctx.Release()

	_, err := q.DequeueTry(ctx)
	fmt.Println(hpq.IsWouldBlock(err))

	// Output:
	// true
}

// ExampleNewBlocking demonstrates multiple producers feeding a single
// blocking consumer.
func ExampleNewBlocking() {
	reg := hazard.NewRegistry()
	bq := hpq.NewBlocking[string](hpq.WithRegistry(reg))

	var wg sync.WaitGroup
	for p := range 3 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ctx := hazard.Acquire(reg)
			defer ctx.Release()
			msg := fmt.Sprintf("msg from producer %d", id)
			bq.Enqueue(ctx, &msg)
		}(p)
	}
	wg.Wait()

	ctx := hazard.Acquire(reg)
	defer ctx.Release()

	count := 0
	for count < 3 {
		if _, err := bq.DequeueWait(ctx, context.Background()); err == nil {
			count++
		}
	}
	fmt.Println(count)

	// Output:
	// 3
}
