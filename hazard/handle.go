package hazard

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// Handle is a hazard pointer over exactly one slot within an enclosing
// [Group]. It caches at most one published address at a time. A Handle
// must not outlive the Group it was created from.
type Handle[T any] struct {
	ref *slotRef
	ptr *T
}

// NewHandle claims the next free slot in g.
func NewHandle[T any](g *Group) *Handle[T] {
	return &Handle[T]{ref: g.nextSlot()}
}

func (h *Handle[T]) slot() *atomix.UnsafePointer {
	return h.ref.rec.slot(h.ref.start, h.ref.offset)
}

// SafeLoad atomically loads src, publishes the candidate into this
// handle's slot, and re-validates it against src. This is the
// "validate-after-publish" protocol: if the re-read matches what was
// published, the returned pointer is guaranteed live for as long as this
// handle continues to publish it.
func (h *Handle[T]) SafeLoad(src *atomix.Pointer[T]) *T {
	slot := h.slot()
	p := src.LoadRelaxed()
	for {
		slot.StoreRelease(unsafe.Pointer(p))
		atomix.FenceSeqCst()
		q := src.LoadAcquire()
		if p == q {
			h.ptr = q
			return q
		}
		p = q
	}
}

// Reset publishes p into this handle's slot and fences, then caches p.
// Use this only when the caller has some other reason to already trust
// that p is alive; to move a live protection from one handle to another,
// use [Handle.Swap] instead.
func (h *Handle[T]) Reset(p *T) {
	h.slot().StoreRelease(unsafe.Pointer(p))
	atomix.FenceSeqCst()
	h.ptr = p
}

// ResetWithoutFence publishes p into this handle's slot without a fence.
// Unsafe unless the caller has established ordering by other means.
func (h *Handle[T]) ResetWithoutFence(p *T) {
	h.slot().StoreRelease(unsafe.Pointer(p))
	h.ptr = p
}

// Clear releases whatever this handle is protecting, without fencing
// (clearing your own protection needs no publish-then-validate step).
func (h *Handle[T]) Clear() {
	h.slot().StoreRelease(nil)
	h.ptr = nil
}

// ResetDummyPointer sets the cached pointer to p without publishing it to
// the hazard slot. Used to seed traversal at a root that is externally
// guaranteed never to be retired.
func (h *Handle[T]) ResetDummyPointer(p *T) {
	h.Clear()
	h.ptr = p
}

// Get returns the currently cached pointer, or nil.
func (h *Handle[T]) Get() *T {
	return h.ptr
}

// Retire takes ownership of the currently cached pointer for deferred
// deletion: the slot is cleared, and (addr, destroy) is appended to the
// owning record's retired list. destroy may be nil. If the retired list
// reaches the registry's flush threshold, a scan runs inline.
func (h *Handle[T]) Retire(destroy func(*T)) {
	obj := h.ptr
	h.Clear()
	if obj == nil {
		return
	}
	var thunk func()
	if destroy != nil {
		thunk = func() { destroy(obj) }
	}
	h.ref.rec.addRetired(unsafe.Pointer(obj), thunk)
}

// Swap exchanges published slot identities (not slot contents) and cached
// pointers between h and other. Both handles must originate from the same
// Group. This moves a live protection between handles without an
// unprotected window.
func (h *Handle[T]) Swap(other *Handle[T]) {
	h.ref, other.ref = other.ref, h.ref
	h.ptr, other.ptr = other.ptr, h.ptr
}
