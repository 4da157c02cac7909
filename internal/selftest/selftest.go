// Package selftest holds reusable producer/consumer drivers for the
// end-to-end scenarios used by this module's own tests. It is internal
// because it is a test collaborator, not a public API.
package selftest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"code.vectorforge.dev/hpq"
	"code.vectorforge.dev/hpq/hazard"
)

func withContext(reg *hazard.Registry, f func(ctx *hazard.Context)) {
	ctx := hazard.Acquire(reg)
	defer ctx.Release()
	f(ctx)
}

// RunSingleProducerConsumer enqueues 1..n on one goroutine and
// DequeueWaits n times on another, returning the values received in order
// and their sum.
func RunSingleProducerConsumer(reg *hazard.Registry, n int) (received []int, sum int64, err error) {
	q := hpq.NewBlocking[int](hpq.WithRegistry(reg))

	go withContext(reg, func(ctx *hazard.Context) {
		for i := 1; i <= n; i++ {
			v := i
			q.Enqueue(ctx, &v)
		}
	})

	withContext(reg, func(ctx *hazard.Context) {
		received = make([]int, 0, n)
		for i := 0; i < n; i++ {
			v, derr := q.DequeueWait(ctx, context.Background())
			if derr != nil {
				err = derr
				return
			}
			received = append(received, v)
			sum += int64(v)
		}
	})
	return received, sum, err
}

// RunFanInFanOut runs `producers` goroutines, each enqueuing 1..n followed
// by a 0 sentinel onto its own dedicated BlockingQueue, paired one-to-one
// with `producers` consumer goroutines that drain until they see the
// sentinel. It returns the sum of each consumer's last non-zero value.
func RunFanInFanOut(reg *hazard.Registry, producers, n int) int64 {
	var wg sync.WaitGroup
	lastValues := make([]int64, producers)

	for i := 0; i < producers; i++ {
		q := hpq.NewBlocking[int](hpq.WithRegistry(reg))

		wg.Add(2)
		go func() {
			defer wg.Done()
			withContext(reg, func(ctx *hazard.Context) {
				for v := 1; v <= n; v++ {
					val := v
					q.Enqueue(ctx, &val)
				}
				sentinel := 0
				q.Enqueue(ctx, &sentinel)
			})
		}()

		idx := i
		go func() {
			defer wg.Done()
			withContext(reg, func(ctx *hazard.Context) {
				var last int64
				for {
					v, err := q.DequeueWait(ctx, context.Background())
					if err != nil {
						return
					}
					if v == 0 {
						lastValues[idx] = last
						return
					}
					last = int64(v)
				}
			})
		}()
	}

	wg.Wait()

	var sum int64
	for _, v := range lastValues {
		sum += v
	}
	return sum
}

// RunEmptyThenOne asserts DequeueTry on an empty queue returns
// ErrWouldBlock, then that enqueuing one value makes the next DequeueTry
// succeed with it.
func RunEmptyThenOne(reg *hazard.Registry) error {
	q := hpq.New[int](hpq.WithRegistry(reg))
	var result error

	withContext(reg, func(ctx *hazard.Context) {
		if _, err := q.DequeueTry(ctx); !hpq.IsWouldBlock(err) {
			result = fmt.Errorf("expected ErrWouldBlock on empty queue, got %v", err)
			return
		}
		v := 42
		q.Enqueue(ctx, &v)
		got, err := q.DequeueTry(ctx)
		if err != nil {
			result = fmt.Errorf("expected success after enqueue, got %v", err)
			return
		}
		if got != 42 {
			result = fmt.Errorf("expected 42, got %d", got)
		}
	})
	return result
}

// RunPingPong bounces a value between two BlockingQueues: on each of
// `iterations` round trips, A enqueues its own running counter on qAB, B
// DequeueWaits it and enqueues counter+1 on qBA, and A DequeueWaits that
// reply purely to stay in lockstep with B before its next send (the reply's
// value is not fed back into A's counter — qBA is a dedicated
// single-producer/single-consumer queue, so the last value A drains from it
// is necessarily the last value B put there, which would make finalA and
// finalB the same number if A's counter tracked it). It returns A's own
// final counter value and B's final echoed value, which differ by exactly
// one.
func RunPingPong(reg *hazard.Registry, qAB, qBA *hpq.BlockingQueue[int], iterations int) (finalA, finalB int, err error) {
	var wg sync.WaitGroup
	var errA, errB error
	wg.Add(2)

	go func() {
		defer wg.Done()
		withContext(reg, func(ctx *hazard.Context) {
			n := 0
			for i := 0; i < iterations; i++ {
				n++
				vv := n
				qAB.Enqueue(ctx, &vv)
				if _, derr := qBA.DequeueWait(ctx, context.Background()); derr != nil {
					errA = derr
					return
				}
			}
			finalA = n
		})
	}()

	go func() {
		defer wg.Done()
		withContext(reg, func(ctx *hazard.Context) {
			for i := 0; i < iterations; i++ {
				got, derr := qAB.DequeueWait(ctx, context.Background())
				if derr != nil {
					errB = derr
					return
				}
				n := got + 1
				qBA.Enqueue(ctx, &n)
				finalB = n
			}
		})
	}()

	wg.Wait()
	if errA != nil {
		return 0, 0, errA
	}
	if errB != nil {
		return 0, 0, errB
	}
	return finalA, finalB, nil
}

// RunBoundedRetentionStress runs a single producer and single consumer
// against q for duration, sampling the registry's resident retired-item
// count, and returns the peak observed.
func RunBoundedRetentionStress(reg *hazard.Registry, duration time.Duration) (peakRetired int) {
	q := hpq.New[int](hpq.WithRegistry(reg))
	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		withContext(reg, func(ctx *hazard.Context) {
			v := 1
			for {
				select {
				case <-stop:
					return
				default:
					q.Enqueue(ctx, &v)
				}
			}
		})
	}()
	go func() {
		defer wg.Done()
		withContext(reg, func(ctx *hazard.Context) {
			for {
				select {
				case <-stop:
					return
				default:
					q.DequeueTry(ctx)
				}
			}
		})
	}()

	deadline := time.After(duration)
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-deadline:
			break loop
		case <-ticker.C:
			if n := reg.RetiredLen(); n > peakRetired {
				peakRetired = n
			}
		}
	}
	close(stop)
	wg.Wait()
	return peakRetired
}
