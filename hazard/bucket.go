package hazard

import "code.hybscloud.com/atomix"

// bucket is a fixed-size array of hazard slots plus the intrusive free-list
// link. Buckets are never freed; they are returned to the free pool by
// clearing active to false. A freshly acquired bucket's slots are not
// cleared — they are overwritten before use by their new owner, and stale
// values in an active-but-unused bucket only over-protect, never
// under-protect.
type bucket struct {
	_      alignPad
	slots  []atomix.UnsafePointer
	_      alignPad
	active atomix.Bool
	_      alignPad
	next   atomix.Pointer[bucket]
}

func newBucket(size int) *bucket {
	b := &bucket{slots: make([]atomix.UnsafePointer, size)}
	b.active.StoreRelaxed(true)
	return b
}
