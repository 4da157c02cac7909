package hpq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"

	"code.vectorforge.dev/hpq/hazard"
)

// queueNode is a Michael–Scott queue node. Exactly one node at all times is
// the sentinel (head's current target); nodes are never freed directly,
// only retired through the hazard registry.
type queueNode[T any] struct {
	value T
	next  atomix.Pointer[queueNode[T]]
}

// Queue is an unbounded, lock-free multi-producer multi-consumer FIFO
// queue. Every dereference of head, tail, or a node's next pointer is
// protected by a hazard pointer from [code.vectorforge.dev/hpq/hazard], so
// a node unlinked by one goroutine is never freed while another goroutine
// is still dereferencing it.
//
// Every goroutine calling Enqueue or DequeueTry must first have acquired a
// [hazard.Context] (once, at goroutine entry) from the same Registry this
// Queue was built on (see [WithRegistry]; the default is [hazard.Default]).
type Queue[T any] struct {
	_        pad
	head     atomix.Pointer[queueNode[T]]
	_        pad
	tail     atomix.Pointer[queueNode[T]]
	_        pad
	registry *hazard.Registry
}

// New creates an empty Queue with a freshly allocated sentinel node.
func New[T any](opts ...Option) *Queue[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	q := &Queue[T]{registry: o.resolve()}
	sentinel := &queueNode[T]{}
	q.head.StoreRelaxed(sentinel)
	q.tail.StoreRelaxed(sentinel)
	return q
}

// Enqueue appends v to the tail of the queue. It never reports failure:
// the queue itself has no capacity limit and no backpressure signal.
func (q *Queue[T]) Enqueue(ctx *hazard.Context, v *T) {
	node := &queueNode[T]{value: *v}

	g := hazard.NewGroup(ctx, 1)
	defer g.Release()
	th := hazard.NewHandle[queueNode[T]](g)

	sw := spin.Wait{}
	for {
		tail := th.SafeLoad(&q.tail)
		next := tail.next.LoadAcquire()
		if next != nil {
			// tail is lagging: help it catch up and retry.
			q.tail.CompareAndSwapAcqRel(tail, next)
			sw.Once()
			continue
		}

		if tail.next.CompareAndSwapAcqRel(nil, node) {
			// Best effort: advance tail. A future operation completes this
			// if it fails.
			q.tail.CompareAndSwapAcqRel(tail, node)
			return
		}
		sw.Once()
	}
}

// DequeueTry removes and returns the element at the head of the queue.
// It returns (zero-value, [ErrWouldBlock]) if the queue was observed empty
// at some point during the call — a normal outcome, not a failure.
func (q *Queue[T]) DequeueTry(ctx *hazard.Context) (T, error) {
	g := hazard.NewGroup(ctx, 2)
	defer g.Release()
	hh := hazard.NewHandle[queueNode[T]](g)
	nh := hazard.NewHandle[queueNode[T]](g)

	sw := spin.Wait{}
	for {
		head := hh.SafeLoad(&q.head)
		next := nh.SafeLoad(&head.next)

		if q.head.LoadAcquire() != head {
			sw.Once()
			continue
		}

		tail := q.tail.LoadAcquire()
		if head == tail {
			if next == nil {
				var zero T
				return zero, ErrWouldBlock
			}
			// tail is lagging: help it catch up and retry.
			q.tail.CompareAndSwapAcqRel(tail, next)
			sw.Once()
			continue
		}

		value := next.value
		if q.head.CompareAndSwapAcqRel(head, next) {
			hh.Retire(func(n *queueNode[T]) {
				var zero T
				n.value = zero // drop references for GC, mirrors ring-buffer Dequeue's slot clear
			})
			return value, nil
		}
		sw.Once()
	}
}
