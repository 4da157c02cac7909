//go:build !race

package hpq_test

import (
	"testing"
	"time"

	"code.vectorforge.dev/hpq"
	"code.vectorforge.dev/hpq/hazard"
	"code.vectorforge.dev/hpq/internal/selftest"
)

func TestScenarioSingleProducerConsumer(t *testing.T) {
	reg := hazard.NewRegistry()
	defer reg.Close()

	const n = 1000
	received, sum, err := selftest.RunSingleProducerConsumer(reg, n)
	if err != nil {
		t.Fatalf("RunSingleProducerConsumer: %v", err)
	}
	if len(received) != n {
		t.Fatalf("received %d values, want %d", len(received), n)
	}
	for i, v := range received {
		if v != i+1 {
			t.Fatalf("received[%d] = %d, want %d", i, v, i+1)
		}
	}
	if sum != 500500 {
		t.Fatalf("sum = %d, want 500500", sum)
	}
}

func TestScenarioFanInFanOut(t *testing.T) {
	reg := hazard.NewRegistry()
	defer reg.Close()

	const producers = 16
	const n = 1000
	sum := selftest.RunFanInFanOut(reg, producers, n)
	if want := int64(producers * n); sum != want {
		t.Fatalf("sum of last values = %d, want %d", sum, want)
	}
}

func TestScenarioEmptyThenOne(t *testing.T) {
	reg := hazard.NewRegistry()
	defer reg.Close()
	if err := selftest.RunEmptyThenOne(reg); err != nil {
		t.Fatal(err)
	}
}

func TestScenarioPingPong(t *testing.T) {
	reg := hazard.NewRegistry()
	defer reg.Close()

	qAB := hpq.NewBlocking[int](hpq.WithRegistry(reg))
	qBA := hpq.NewBlocking[int](hpq.WithRegistry(reg))

	const iterations = 2000
	finalA, finalB, err := selftest.RunPingPong(reg, qAB, qBA, iterations)
	if err != nil {
		t.Fatalf("RunPingPong: %v", err)
	}
	if finalA != iterations {
		t.Fatalf("finalA = %d, want %d", finalA, iterations)
	}
	if finalB != iterations+1 {
		t.Fatalf("finalB = %d, want %d", finalB, iterations+1)
	}
}

func TestScenarioBoundedRetentionStress(t *testing.T) {
	if testing.Short() {
		t.Skip("stress test; skipped in -short")
	}
	reg := hazard.NewRegistry(hazard.FlushSize(1))
	defer reg.Close()

	peak := selftest.RunBoundedRetentionStress(reg, 200*time.Millisecond)

	// Two threads (producer, consumer), each using at most 2 hazard slots
	// per operation (DequeueTry's head/next handles).
	const threads = 2
	const hazardSlotsPerOp = 2
	if bound := threads * (1 + hazardSlotsPerOp); peak > bound {
		t.Fatalf("peak retained items = %d, want <= %d", peak, bound)
	}
}
