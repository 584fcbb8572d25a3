// Scenario drivers: baseline (fixed quantum), memory-aware (adaptive
// quantum frozen after a stabilization phase), and compare (both).

package sim

import (
	"github.com/sirupsen/logrus"
)

// perturbedPatterns is the pool the memory-aware driver draws per-process
// access patterns from, in the fixed order that pins seeded runs.
var perturbedPatterns = []AccessPattern{PatternLocality, PatternRandom, PatternSequential}

// Page-count draw range used when a process does not specify a usable
// pages_count. Small counts produce no fault-rate variation, so the range
// starts above the window-trivial sizes.
const (
	perturbPagesMin = 4
	perturbPagesMax = 24
)

// MemoryAwareOptions tunes the memory-aware scenario driver.
type MemoryAwareOptions struct {
	// Rounds is the number of adaptation rounds run before the
	// per-process quanta are frozen.
	Rounds int
	// PerturbWorkload, when set, draws a page count in
	// [perturbPagesMin, perturbPagesMax] for processes whose configured
	// pages_count is <= 1 and draws each process's access pattern from
	// perturbedPatterns. When unset, configured page counts (floored at 1)
	// and the model's default pattern are honored.
	PerturbWorkload bool
}

// DefaultMemoryAwareOptions matches the behavior of the reference system:
// 16 adaptation rounds with workload perturbation on.
func DefaultMemoryAwareOptions() MemoryAwareOptions {
	return MemoryAwareOptions{Rounds: 16, PerturbWorkload: true}
}

// SimulateBaseline runs Round-Robin with the same fixed quantum for every
// process. Memory estimates are empty: the baseline never consults the
// memory model.
func SimulateBaseline(cfg *SystemConfig) *SimulationResult {
	pids := cfg.PIDs()
	bursts := make(map[string]int, len(pids))
	arrivals := make(map[string]int, len(pids))
	quanta := make(map[string]int, len(pids))
	for _, p := range cfg.Processes {
		bursts[p.PID] = p.BurstTime
		arrivals[p.PID] = p.ArrivalTime
		quanta[p.PID] = cfg.CPUQuantum
	}

	timeline := SimulateRoundRobin(pids, bursts, quanta, arrivals)
	return buildResult(pids, bursts, arrivals, quanta, map[string]int{}, timeline, nil)
}

// SimulateMemoryAware adapts each process's quantum from its memory signal.
// The model runs opts.Rounds adaptation rounds (observe a run of the current
// effective quantum, fold the fault rate into the EMA, renormalize globally),
// then the per-process quanta and memory estimates are frozen and a single
// Round-Robin simulation runs with them. Quanta never change mid-simulation.
func SimulateMemoryAware(cfg *SystemConfig, opts MemoryAwareOptions) *SimulationResult {
	pids := cfg.PIDs()
	bursts := make(map[string]int, len(pids))
	arrivals := make(map[string]int, len(pids))
	for _, p := range cfg.Processes {
		bursts[p.PID] = p.BurstTime
		arrivals[p.PID] = p.ArrivalTime
	}
	baseQ := cfg.CPUQuantum

	mmCfg := DefaultMemoryModelConfig()
	mmCfg.BaseQuantum = baseQ
	mmCfg.Seed = cfg.Seed
	mm := NewMemoryModel(mmCfg)

	workloadRand := mm.WorkloadRand()
	for _, p := range cfg.Processes {
		pages := p.PagesCount
		pattern := AccessPattern("")
		if opts.PerturbWorkload {
			if pages <= 1 {
				pages = perturbPagesMin + workloadRand.Intn(perturbPagesMax-perturbPagesMin+1)
			}
			pattern = perturbedPatterns[workloadRand.Intn(len(perturbedPatterns))]
		}
		mm.CreateProcess(p.PID, p.ArrivalTime, p.BurstTime, pages, pattern)
	}

	rounds := clampMinInt(opts.Rounds, 1)
	for r := 0; r < rounds; r++ {
		for _, pid := range pids {
			q := mm.EffectiveQuantum(pid, baseQ)
			obs := mm.ObserveRun(pid, clampMinInt(q, 1))
			mm.UpdateSignal(pid, obs)
		}
		mm.RecomputeNormalization()
		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			for _, pid := range pids {
				p := mm.Process(pid)
				logrus.Debugf("round=%d pid=%s ema=%.4f signal=%.4f q=%d",
					r, pid, p.EMA, p.MemSignal, mm.EffectiveQuantum(pid, baseQ))
			}
		}
	}

	quanta := make(map[string]int, len(pids))
	memEstimates := make(map[string]int, len(pids))
	signals := make(map[string]float64, len(pids))
	for _, pid := range pids {
		quanta[pid] = mm.EffectiveQuantum(pid, baseQ)
		memEstimates[pid] = mm.EstimatedMemoryMB(pid)
		signals[pid] = mm.Process(pid).MemSignal
	}

	timeline := SimulateRoundRobin(pids, bursts, quanta, arrivals)
	return buildResult(pids, bursts, arrivals, quanta, memEstimates, timeline, signals)
}

// CompareSchedulers runs both scenarios against the same configuration.
func CompareSchedulers(cfg *SystemConfig, opts MemoryAwareOptions) *CompareBundle {
	return &CompareBundle{
		Baseline:    SimulateBaseline(cfg),
		MemoryAware: SimulateMemoryAware(cfg, opts),
	}
}

// buildResult derives metrics, series and trace from a timeline and
// assembles the result structure. signals is nil for the baseline scenario;
// when present the frozen quanta, memory estimates and raw signals are
// attached to the metadata for diagnostic visibility.
func buildResult(pids []string, bursts, arrivals, quanta, memEstimates map[string]int, timeline []Slice, signals map[string]float64) *SimulationResult {
	metrics := ComputeMetrics(pids, bursts, arrivals, timeline)
	series := BuildCPUSeries(timeline, metrics.TotalTime)

	meta := map[string]any{
		"avg_wait":       meanOfIntMap(metrics.Waiting),
		"avg_turnaround": meanOfIntMap(metrics.Turnaround),
	}
	if signals != nil {
		meta["memory_quanta"] = quanta
		meta["memory_estimates"] = memEstimates
		meta["mem_signals"] = signals
	}

	return &SimulationResult{
		TurnaroundTimes: metrics.Turnaround,
		WaitingTimes:    metrics.Waiting,
		CPUUtilization:  UtilizationFromSeries(series),
		TotalTime:       metrics.TotalTime,
		ContextSwitches: ContextSwitches(timeline),
		Trace:           GenerateTrace(timeline),
		InferredQuanta:  quanta,
		MemoryEstimates: memEstimates,
		CPUSeries:       series,
		Meta:            meta,
	}
}
