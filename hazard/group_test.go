package hazard_test

import (
	"testing"

	"code.vectorforge.dev/hpq/hazard"
)

func TestGroupNestingLIFO(t *testing.T) {
	reg := hazard.NewRegistry(hazard.BucketSize(2))
	defer reg.Close()
	ctx := hazard.Acquire(reg)
	defer ctx.Release()

	outer := hazard.NewGroup(ctx, 2)
	hazard.NewHandle[int](outer)
	hazard.NewHandle[int](outer)

	inner := hazard.NewGroup(ctx, 3)
	hazard.NewHandle[int](inner)
	hazard.NewHandle[int](inner)
	hazard.NewHandle[int](inner)
	inner.Release()

	outer.Release()
}

func TestGroupExhaustedPanics(t *testing.T) {
	reg := hazard.NewRegistry()
	defer reg.Close()
	ctx := hazard.Acquire(reg)
	defer ctx.Release()

	g := hazard.NewGroup(ctx, 1)
	defer g.Release()
	hazard.NewHandle[int](g)

	defer func() {
		if recover() == nil {
			t.Fatalf("NewHandle past group capacity did not panic")
		}
	}()
	hazard.NewHandle[int](g)
}
