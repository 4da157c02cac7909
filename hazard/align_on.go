//go:build !hazardnoalign

package hazard

// alignPad is cache-line-sized padding, included by default. Build with
// the hazardnoalign tag to drop it on memory-constrained targets where the
// false-sharing cost is acceptable.
type alignPad = pad
