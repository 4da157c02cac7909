// Package hazard implements a process-wide hazard-pointer safe memory
// reclamation (SMR) subsystem: a way to let one goroutine read a pointer
// that another goroutine may concurrently unlink and retire, without a
// global lock and without freeing memory out from under the reader.
//
// # Model
//
// A [Registry] owns two intrusive, never-shrinking free lists: hazard
// records (one per participating goroutine) and hazard buckets (fixed-size
// groups of hazard slots). A goroutine that wants to touch shared,
// concurrently-retired data first calls [Acquire] to get a [Context] bound
// to its own hazard record:
//
//	ctx := hazard.Acquire(hazard.Default())
//	defer ctx.Release()
//
// Within that context, an operation reserves a [Group] of N hazard slots
// for the duration of one pointer-chasing step:
//
//	g := hazard.NewGroup(ctx, 2)
//	defer g.Release()
//
//	h0 := hazard.NewHandle[node](g)
//	h1 := hazard.NewHandle[node](g)
//
// [Handle.SafeLoad] publishes a candidate pointer into the handle's slot
// and re-validates it against the source, the standard "protect, fence,
// re-read" pattern:
//
//	n := h0.SafeLoad(&someAtomicPointer)
//
// Once a goroutine has unlinked an object so that no other goroutine can
// newly observe it, it calls [Handle.Retire] to hand it to the registry for
// deferred destruction. The registry reclaims it only once a scan proves no
// hazard slot anywhere in the process still references its address.
//
// # Scoping
//
// Records and buckets are never freed mid-process; they are returned to
// their free list by clearing an active flag, and reused by the next
// goroutine that asks. This avoids needing a second SMR layer just to
// reclaim the SMR's own bookkeeping. Groups nest and must be released in
// LIFO order; handles must not outlive their group.
//
// # Tunables
//
// [BucketSize] controls how many hazard slots live in one bucket (default
// [DefaultBucketSize]). [FlushSize] controls how many retired items
// accumulate in one record before a scan is triggered opportunistically
// (default [DefaultFlushSize]). Both are set at [NewRegistry] time.
//
// Build tag hazarddebug enables scoping assertions (a [Group] released with
// the wrong bucket accounting panics instead of silently corrupting the
// record). Build tag hazardnoalign disables the cache-line padding of
// hazard records and buckets that is on by default.
package hazard
