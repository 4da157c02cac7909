//go:build hazarddebug

package hazard

import "fmt"

const debugEnabled = true

// checkScoping panics if a Group is released with a bucketsInUse count
// other than start+numBuckets: releasing a hazard group with the wrong
// accounting is a programming error that debug builds must detect.
func checkScoping(got, want int) {
	if got != want {
		panic(fmt.Sprintf("hazard: group released with buckets_in_use=%d, want %d (unbalanced hazard group nesting)", got, want))
	}
}
