package hpq

import (
	"context"

	"code.vectorforge.dev/hpq/hazard"
	"code.vectorforge.dev/hpq/internal/xsema"
)

// BlockingQueue wraps a [Queue] with a counting semaphore, so a consumer
// can wait for an element instead of busy-polling DequeueTry. Enqueue still
// never fails or blocks; only DequeueWait can block.
type BlockingQueue[T any] struct {
	q    *Queue[T]
	sema *xsema.Sema
}

// NewBlocking creates an empty BlockingQueue.
func NewBlocking[T any](opts ...Option) *BlockingQueue[T] {
	return &BlockingQueue[T]{
		q:    New[T](opts...),
		sema: xsema.New(),
	}
}

// Enqueue appends v and posts the semaphore, waking every parked
// DequeueWait call; one of them takes the new permit and the rest park
// again. See [Queue.Enqueue].
func (bq *BlockingQueue[T]) Enqueue(ctx *hazard.Context, v *T) {
	bq.q.Enqueue(ctx, v)
	bq.sema.Post()
}

// DequeueTry removes and returns the head element without blocking. See
// [Queue.DequeueTry].
func (bq *BlockingQueue[T]) DequeueTry(ctx *hazard.Context) (T, error) {
	return bq.q.DequeueTry(ctx)
}

// DequeueWait removes and returns the head element, blocking until one is
// available or goCtx is done. The semaphore permit count can run ahead of
// what's actually dequeuable by any one caller in a multi-consumer race (two
// consumers both wake for one posted item, one loses the DequeueTry race);
// losers simply loop back onto the semaphore, which is the over-posting
// tolerance [code.vectorforge.dev/hpq/internal/xsema] is built for.
func (bq *BlockingQueue[T]) DequeueWait(ctx *hazard.Context, goCtx context.Context) (T, error) {
	for {
		if v, err := bq.q.DequeueTry(ctx); err == nil {
			return v, nil
		}
		if err := bq.sema.Wait(goCtx); err != nil {
			var zero T
			return zero, err
		}
	}
}
