package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	vals1 := make([]float64, 3)
	vals2 := make([]float64, 3)

	for i := 0; i < 3; i++ {
		vals1[i] = rng1.ForSubsystem(SubsystemProcess(0)).Float64()
	}
	for i := 0; i < 3; i++ {
		vals2[i] = rng2.ForSubsystem(SubsystemProcess(0)).Float64()
	}

	for i := 0; i < 3; i++ {
		if vals1[i] != vals2[i] {
			t.Errorf("Value %d: got %v and %v, want identical", i, vals1[i], vals2[i])
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from subsystem A doesn't affect subsystem B
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	// Exhaust some draws from workload on A only
	for i := 0; i < 100; i++ {
		rngA.ForSubsystem(SubsystemWorkload).Float64()
	}

	// process_0 streams must still agree
	for i := 0; i < 5; i++ {
		a := rngA.ForSubsystem(SubsystemProcess(0)).Float64()
		b := rngB.ForSubsystem(SubsystemProcess(0)).Float64()
		if a != b {
			t.Errorf("Draw %d: process_0 stream diverged after workload draws: %v vs %v", i, a, b)
		}
	}
}

func TestPartitionedRNG_CachesInstances(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7))
	first := rng.ForSubsystem(SubsystemProcess(3))
	second := rng.ForSubsystem(SubsystemProcess(3))
	if first != second {
		t.Error("ForSubsystem returned different instances for the same name")
	}
}

func TestPartitionedRNG_DistinctProcessStreams(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	// Different process indices should produce different streams.
	// Compare a handful of draws; identical prefixes would mean the
	// subsystem mixing is broken.
	a := rng.ForSubsystem(SubsystemProcess(0))
	b := rng.ForSubsystem(SubsystemProcess(1))

	same := true
	for i := 0; i < 10; i++ {
		if a.Int63() != b.Int63() {
			same = false
			break
		}
	}
	if same {
		t.Error("process_0 and process_1 streams are identical")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(99))
	if rng.Key() != 99 {
		t.Errorf("Key() = %d, want 99", rng.Key())
	}
}
