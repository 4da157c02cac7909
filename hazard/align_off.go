//go:build hazardnoalign

package hazard

// alignPad is the zero-size variant selected by the hazardnoalign build tag.
type alignPad = [0]byte
