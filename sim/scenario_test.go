package sim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig(seed *int64) *SystemConfig {
	return &SystemConfig{
		TotalFrames: 64,
		PageSize:    4,
		CPUQuantum:  2,
		Seed:        seed,
		Processes: []ProcessSpec{
			{PID: "P1", ArrivalTime: 0, BurstTime: 8, PagesCount: 12},
			{PID: "P2", ArrivalTime: 3, BurstTime: 5, PagesCount: 6},
			{PID: "P3", ArrivalTime: 5, BurstTime: 2, PagesCount: 20},
		},
	}
}

func TestSimulateBaseline(t *testing.T) {
	cfg := testConfig(nil)
	res := SimulateBaseline(cfg)

	// the worked example: quantum 2 finishes all bursts at tick 15
	assert.Equal(t, 15, res.TotalTime)
	assert.Equal(t, 6, res.ContextSwitches)
	assert.InDelta(t, 100.0, res.CPUUtilization, 1e-12)
	assert.Equal(t, map[string]int{"P1": 6, "P2": 7, "P3": 3}, res.WaitingTimes)
	assert.Equal(t, map[string]int{"P1": 14, "P2": 12, "P3": 5}, res.TurnaroundTimes)

	// every process runs at the fixed quantum, no memory estimates
	assert.Equal(t, map[string]int{"P1": 2, "P2": 2, "P3": 2}, res.InferredQuanta)
	assert.Empty(t, res.MemoryEstimates)

	assert.Len(t, res.CPUSeries, res.TotalTime)
	assert.Len(t, res.Trace, 16) // 8 slices, one running + one stopped each

	assert.InDelta(t, 16.0/3.0, res.Meta["avg_wait"].(float64), 1e-9)
	assert.InDelta(t, 31.0/3.0, res.Meta["avg_turnaround"].(float64), 1e-9)
}

func TestSimulateMemoryAware_QuantaWithinAdaptiveRange(t *testing.T) {
	cfg := testConfig(int64Ptr(42))
	res := SimulateMemoryAware(cfg, DefaultMemoryAwareOptions())

	// with k=1 the effective quantum lives in [baseQ, 2*baseQ]
	for pid, q := range res.InferredQuanta {
		assert.GreaterOrEqual(t, q, cfg.CPUQuantum, pid)
		assert.LessOrEqual(t, q, 2*cfg.CPUQuantum, pid)
	}

	// memory estimates stay inside the configured MB bounds
	assert.Len(t, res.MemoryEstimates, 3)
	for pid, mb := range res.MemoryEstimates {
		assert.GreaterOrEqual(t, mb, 8, pid)
		assert.LessOrEqual(t, mb, 320, pid)
	}
}

func TestSimulateMemoryAware_BurstsStillConserved(t *testing.T) {
	cfg := testConfig(int64Ptr(7))
	res := SimulateMemoryAware(cfg, DefaultMemoryAwareOptions())

	// adapting quanta must never change the amount of work done
	for _, p := range cfg.Processes {
		assert.Equal(t, res.WaitingTimes[p.PID]+p.BurstTime, res.TurnaroundTimes[p.PID], p.PID)
	}
	assert.Len(t, res.CPUSeries, res.TotalTime)
}

func TestSimulateMemoryAware_MetadataDiagnostics(t *testing.T) {
	cfg := testConfig(int64Ptr(42))
	res := SimulateMemoryAware(cfg, DefaultMemoryAwareOptions())

	quanta, ok := res.Meta["memory_quanta"].(map[string]int)
	assert.True(t, ok, "memory_quanta missing from metadata")
	assert.Equal(t, res.InferredQuanta, quanta)

	estimates, ok := res.Meta["memory_estimates"].(map[string]int)
	assert.True(t, ok, "memory_estimates missing from metadata")
	assert.Equal(t, res.MemoryEstimates, estimates)

	signals, ok := res.Meta["mem_signals"].(map[string]float64)
	assert.True(t, ok, "mem_signals missing from metadata")
	assert.Len(t, signals, 3)
	for pid, sig := range signals {
		assert.GreaterOrEqual(t, sig, 0.0, pid)
		assert.LessOrEqual(t, sig, 1.0, pid)
	}
}

func TestSimulateMemoryAware_SeededRunsAreIdentical(t *testing.T) {
	// BDD: same seed + same configuration => byte-identical result
	run := func() []byte {
		res := SimulateMemoryAware(testConfig(int64Ptr(42)), DefaultMemoryAwareOptions())
		data, err := json.Marshal(res)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return data
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}

func TestSimulateMemoryAware_DifferentSeedsMayDiverge(t *testing.T) {
	resA := SimulateMemoryAware(testConfig(int64Ptr(1)), DefaultMemoryAwareOptions())
	resB := SimulateMemoryAware(testConfig(int64Ptr(2)), DefaultMemoryAwareOptions())

	// Quanta depend on per-seed page streams; equality of every derived
	// field across two seeds would mean the seed is ignored. Compare the
	// raw signals, which are continuous and collide only by accident.
	assert.NotEqual(t, resA.Meta["mem_signals"], resB.Meta["mem_signals"])
}

func TestSimulateMemoryAware_PerturbationOff(t *testing.T) {
	cfg := testConfig(int64Ptr(42))
	opts := DefaultMemoryAwareOptions()
	opts.PerturbWorkload = false

	res := SimulateMemoryAware(cfg, opts)

	// without perturbation the configured page counts are honored
	assert.Len(t, res.InferredQuanta, 3)
	for _, p := range cfg.Processes {
		assert.Contains(t, res.InferredQuanta, p.PID)
	}
}

func TestCompareSchedulers(t *testing.T) {
	cfg := testConfig(int64Ptr(42))
	bundle := CompareSchedulers(cfg, DefaultMemoryAwareOptions())

	assert.NotNil(t, bundle.Baseline)
	assert.NotNil(t, bundle.MemoryAware)

	// both scenarios schedule the same total work
	assert.Empty(t, bundle.Baseline.MemoryEstimates)
	assert.NotEmpty(t, bundle.MemoryAware.MemoryEstimates)
	for _, p := range cfg.Processes {
		assert.Equal(t,
			bundle.Baseline.WaitingTimes[p.PID]+p.BurstTime,
			bundle.Baseline.TurnaroundTimes[p.PID], p.PID)
		assert.Equal(t,
			bundle.MemoryAware.WaitingTimes[p.PID]+p.BurstTime,
			bundle.MemoryAware.TurnaroundTimes[p.PID], p.PID)
	}
}
