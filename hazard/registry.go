package hazard

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// DefaultBucketSize is the number of hazard slots per bucket used when a
// Registry is not given an explicit [BucketSize] option.
const DefaultBucketSize = 2

// DefaultFlushSize is the number of retired items a record accumulates
// before a scan is triggered opportunistically, used when a Registry is
// not given an explicit [FlushSize] option.
const DefaultFlushSize = 16

// Registry is a process-wide (or, for isolated tests, arena-wide) hazard
// pointer authority. It owns the intrusive free lists of records and
// buckets; both lists only grow for the life of the Registry, never shrink.
//
// Most callers never construct a Registry directly — use [Default]. A
// Registry is only constructed explicitly to isolate a test or to tune
// [BucketSize] / [FlushSize] for a workload that needs it.
type Registry struct {
	_          pad
	recordHead atomix.Pointer[record]
	_          pad
	bucketHead atomix.Pointer[bucket]
	_          pad
	bucketSize int
	flushSize  int
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// BucketSize sets the number of hazard slots per bucket.
func BucketSize(n int) Option {
	if n < 1 {
		panic("hazard: bucket size must be >= 1")
	}
	return func(r *Registry) { r.bucketSize = n }
}

// FlushSize sets how many retired items a record accumulates before a scan
// is triggered opportunistically.
func FlushSize(n int) Option {
	if n < 1 {
		panic("hazard: flush size must be >= 1")
	}
	return func(r *Registry) { r.flushSize = n }
}

// NewRegistry creates an isolated Registry. Most callers should use
// [Default] instead; NewRegistry exists for tests and for workloads that
// need non-default tunables.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{bucketSize: DefaultBucketSize, flushSize: DefaultFlushSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the package-wide Registry, lazily constructed with
// [DefaultBucketSize] and [DefaultFlushSize]. It lives for the process
// lifetime and is never torn down, matching the "process teardown is the
// only path that frees records or buckets" contract — in Go, records and
// buckets are reclaimed by the garbage collector once the Registry itself
// becomes unreachable, which for Default never happens.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = NewRegistry() })
	return defaultReg
}

// acquireRecord returns a free record, allocating one if none is free.
func (reg *Registry) acquireRecord() *record {
	for cur := reg.recordHead.LoadAcquire(); cur != nil; cur = cur.next.LoadRelaxed() {
		if !cur.active.LoadRelaxed() && cur.active.CompareAndSwapRelaxed(false, true) {
			return cur
		}
	}

	rec := newRecord(reg)
	for {
		head := reg.recordHead.LoadRelaxed()
		rec.next.StoreRelaxed(head)
		if reg.recordHead.CompareAndSwapRelaxed(head, rec) {
			return rec
		}
	}
}

// releaseRecord returns rec to the free pool. The caller must have no
// hazard groups open on rec (bucketsInUse == 0).
func (reg *Registry) releaseRecord(rec *record) {
	if rec.bucketsInUse != 0 {
		panic("hazard: record released with hazard groups still open")
	}

	for _, b := range rec.buckets {
		b.active.StoreRelaxed(false)
	}
	rec.buckets = rec.buckets[:0]

	if len(rec.retired) != 0 {
		reg.flushRetired(rec)
	}

	rec.active.StoreRelease(false)
}

// acquireBucket returns a free bucket, allocating one if none is free.
func (reg *Registry) acquireBucket() *bucket {
	for cur := reg.bucketHead.LoadAcquire(); cur != nil; cur = cur.next.LoadRelaxed() {
		if !cur.active.LoadRelaxed() && cur.active.CompareAndSwapRelaxed(false, true) {
			return cur
		}
	}

	b := newBucket(reg.bucketSize)
	for {
		head := reg.bucketHead.LoadRelaxed()
		b.next.StoreRelaxed(head)
		if reg.bucketHead.CompareAndSwapRelaxed(head, b) {
			return b
		}
	}
}

// flushRetired scans every bucket's hazard slots (regardless of whether the
// owning record or bucket is currently active — an inactive bucket may
// still hold a stale value from before it was freed back to the pool, and
// over-protecting is always safe) and destroys every retired item in rec
// whose address was not observed.
func (reg *Registry) flushRetired(rec *record) {
	clear(rec.scanned)

	// Orders the retirements already appended to rec against the scan
	// below, and orders the scan against any other goroutine's hazard
	// slot publication.
	atomix.FenceSeqCst()

	any := false
	for b := reg.bucketHead.LoadAcquire(); b != nil; b = b.next.LoadRelaxed() {
		for i := range b.slots {
			if p := b.slots[i].LoadRelaxed(); p != nil {
				rec.scanned[p] = struct{}{}
				any = true
			}
		}
	}
	atomix.FenceAcquire()

	kept := rec.retired[:0]
	for _, item := range rec.retired {
		if any {
			if _, stillHazardous := rec.scanned[item.addr]; stillHazardous {
				kept = append(kept, item)
				continue
			}
		}
		item.run()
	}
	rec.retired = kept
}

// RetiredLen returns a best-effort snapshot of the total number of retired
// items currently resident across every record, for stress tests asserting
// a bound on reclamation lag. It is not synchronized against concurrent
// retire/flush activity and is meant for sampling, not exact accounting.
func (reg *Registry) RetiredLen() int {
	n := 0
	for cur := reg.recordHead.LoadAcquire(); cur != nil; cur = cur.next.LoadRelaxed() {
		n += len(cur.retired)
	}
	return n
}

// Close unconditionally destroys every remaining retired item across every
// record ever allocated by reg and drops reg's references to its records
// and buckets, letting the garbage collector reclaim them. Close is for
// registries created by [NewRegistry] in tests; the package default
// Registry is never closed.
func (reg *Registry) Close() {
	for cur := reg.recordHead.LoadRelaxed(); cur != nil; cur = cur.next.LoadRelaxed() {
		for _, item := range cur.retired {
			item.run()
		}
		cur.retired = nil
	}
	reg.recordHead.StoreRelaxed(nil)
	reg.bucketHead.StoreRelaxed(nil)
}
