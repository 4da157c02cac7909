package hazard

// Group is a stack-scoped reservation of n hazard slots within the
// enclosing [Context]'s record. Groups nest: a new group's slots begin
// immediately after the topmost group's slots, and groups must be released
// in LIFO order.
//
// A Group is not safe for concurrent use — like the record it borrows
// from, it is single-goroutine state.
type Group struct {
	ctx     *Context
	start   int
	n       int
	created int
}

// NewGroup reserves n hazard slots within ctx's record.
func NewGroup(ctx *Context, n int) *Group {
	rec := ctx.record
	numBuckets := (n + ctx.registry.bucketSize - 1) / ctx.registry.bucketSize
	rec.ensureBuckets(rec.bucketsInUse + numBuckets)

	g := &Group{ctx: ctx, start: rec.bucketsInUse, n: n}
	if n > 0 {
		rec.bucketsInUse = g.start + numBuckets
	}
	return g
}

func (g *Group) numBuckets() int {
	return (g.n + g.ctx.registry.bucketSize - 1) / g.ctx.registry.bucketSize
}

// nextSlot hands out the next of this group's n hazard slots, for
// [NewHandle] to claim.
func (g *Group) nextSlot() *slotRef {
	if g.created >= g.n {
		panic("hazard: group exhausted: more handles created than reserved slots")
	}
	offset := g.created
	g.created++
	return &slotRef{rec: g.ctx.record, start: g.start, offset: offset}
}

// Release gives this group's slots back to the record. Debug builds
// (hazarddebug build tag) verify the group was not corrupted by
// non-LIFO nesting.
func (g *Group) Release() {
	if g.n == 0 {
		return
	}
	if debugEnabled {
		checkScoping(g.ctx.record.bucketsInUse, g.start+g.numBuckets())
	}
	g.ctx.record.bucketsInUse = g.start
}

// slotRef locates one hazard slot; resolved lazily since the backing
// bucket slice can grow between group creation and handle creation.
type slotRef struct {
	rec    *record
	start  int
	offset int
}
