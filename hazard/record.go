package hazard

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// retiredItem is a retired object awaiting proof that no hazard slot still
// references it. destroy is the type-erased destructor thunk captured at
// retire time; Go has no multiple-inheritance address adjustment to
// replicate the original void*->T*->U* double static_cast, so the closure
// simply closes over the concrete pointer it was given.
type retiredItem struct {
	addr    unsafe.Pointer
	destroy func()
}

func (it retiredItem) run() {
	if it.destroy == nil {
		return
	}
	defer func() { recover() }() // a destructor may not abort reclamation of siblings
	it.destroy()
}

// record is per-goroutine hazard-pointer state: the ordered sequence of
// buckets this goroutine has reserved, how many of those buckets are
// currently claimed by nested groups, a retired list, and scratch space
// used by scans. Records are never freed; they are returned to the
// registry's free pool by clearing active to false.
type record struct {
	_            alignPad
	next         atomix.Pointer[record]
	_            alignPad
	active       atomix.Bool
	_            alignPad
	registry     *Registry
	buckets      []*bucket
	bucketsInUse int
	retired      []retiredItem
	scanned      map[unsafe.Pointer]struct{}
}

func newRecord(reg *Registry) *record {
	r := &record{registry: reg, scanned: make(map[unsafe.Pointer]struct{}, reg.flushSize)}
	r.active.StoreRelaxed(true)
	return r
}

// ensureBuckets grows r.buckets, acquiring fresh buckets from the registry,
// until it holds at least n of them.
func (r *record) ensureBuckets(n int) {
	for len(r.buckets) < n {
		r.buckets = append(r.buckets, r.registry.acquireBucket())
	}
}

// slot returns the hazard slot at the given absolute offset within the
// groups currently open on this record.
func (r *record) slot(startBucket, offset int) *atomix.UnsafePointer {
	bs := r.registry.bucketSize
	b := r.buckets[startBucket+offset/bs]
	return &b.slots[offset%bs]
}

func (r *record) addRetired(addr unsafe.Pointer, destroy func()) {
	if addr == nil {
		return
	}
	r.retired = append(r.retired, retiredItem{addr: addr, destroy: destroy})
	if len(r.retired) >= r.registry.flushSize {
		r.registry.flushRetired(r)
	}
}
