package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// MemoryModelConfig groups the parameters of the memory-pressure model.
type MemoryModelConfig struct {
	PageSizeMB          int     // simulated page size in MB
	MinMemoryMB         int     // lower bound for estimated process memory
	MaxMemoryMB         int     // upper bound for estimated process memory
	AccessesPerTimeUnit int     // page references simulated per tick of run time
	WindowAccessCount   int     // sliding window capacity (references, not pages)
	EMABeta             float64 // EMA smoothing factor in [0,1]
	BaseQuantum         int     // base quantum fed into the adaptive formula
	Sensitivity         float64 // k: how strongly the memory signal stretches the quantum
	AccessPattern       AccessPattern
	HotspotFrac         float64
	HotspotProb         float64
	Seed                *int64  // nil = time-derived, runs may diverge
	NormalizationEps    float64 // guard against dividing by a near-zero max EMA
}

// DefaultMemoryModelConfig returns the standard model parameters.
func DefaultMemoryModelConfig() MemoryModelConfig {
	return MemoryModelConfig{
		PageSizeMB:          4,
		MinMemoryMB:         8,
		MaxMemoryMB:         320,
		AccessesPerTimeUnit: 1,
		WindowAccessCount:   50,
		EMABeta:             0.85,
		BaseQuantum:         2,
		Sensitivity:         1.0,
		AccessPattern:       PatternLocality,
		HotspotFrac:         0.2,
		HotspotProb:         0.8,
		NormalizationEps:    1e-9,
	}
}

// SliceObservation is the outcome of one observed run of a process.
// Produced by ObserveRun, consumed once by UpdateSignal.
type SliceObservation struct {
	RunTime        int // run length simulated, in ticks
	Accesses       int // page references simulated
	PageFaults     int // references to pages not resident in the window
	WorkingSetSize int // distinct pages in the window after the run
}

// pageWindow is a fixed-capacity ring of the most recent page references.
// The oldest reference is evicted on overflow.
type pageWindow struct {
	buf  []int
	head int
	size int
}

func newPageWindow(capacity int) *pageWindow {
	return &pageWindow{buf: make([]int, clampMinInt(capacity, 1))}
}

func (w *pageWindow) full() bool { return w.size == len(w.buf) }
func (w *pageWindow) len() int   { return w.size }

func (w *pageWindow) push(page int) {
	w.buf[(w.head+w.size)%len(w.buf)] = page
	w.size++
}

func (w *pageWindow) popOldest() int {
	page := w.buf[w.head]
	w.head = (w.head + 1) % len(w.buf)
	w.size--
	return page
}

// ProcessState is owned exclusively by the MemoryModel that created it.
// One instance per simulated process per run; never shared across runs.
type ProcessState struct {
	PID        string
	Arrival    int
	Burst      int
	Remaining  int
	PagesCount int

	generator PageGenerator
	window    *pageWindow
	// refCounts maps page number -> reference count within the window.
	// Entries are removed once the count reaches zero, so presence in the
	// map is an O(1) residency test.
	refCounts map[int]int

	EMA       float64
	MemSignal float64 // 0 until the first normalization
	LastObs   *SliceObservation
}

// WorkingSetSize returns the number of distinct pages in the window.
func (p *ProcessState) WorkingSetSize() int {
	return len(p.refCounts)
}

// MemoryModel tracks per-process page-fault pressure and turns it into a
// normalized memory signal. All operations are synchronous; the model is
// not safe for concurrent use. Each simulation run owns its own instance.
type MemoryModel struct {
	cfg       MemoryModelConfig
	rng       *PartitionedRNG
	processes map[string]*ProcessState
	order     []string // creation order, for deterministic iteration

	// normalizationStale is set by every mutation and cleared by
	// RecomputeNormalization, so a burst of updates costs one global pass.
	normalizationStale bool
}

// NewMemoryModel creates a model with its own partitioned random source.
func NewMemoryModel(cfg MemoryModelConfig) *MemoryModel {
	key := NewTimeDerivedKey()
	if cfg.Seed != nil {
		key = NewSimulationKey(*cfg.Seed)
	}
	return &MemoryModel{
		cfg:       cfg,
		rng:       NewPartitionedRNG(key),
		processes: make(map[string]*ProcessState),
	}
}

// Config returns the model's configuration.
func (m *MemoryModel) Config() MemoryModelConfig { return m.cfg }

// WorkloadRand returns the RNG subsystem for workload-level draws
// (page-count and pattern selection by the memory-aware driver).
func (m *MemoryModel) WorkloadRand() *rand.Rand {
	return m.rng.ForSubsystem(SubsystemWorkload)
}

// PIDs returns process ids in creation order.
func (m *MemoryModel) PIDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Process returns the state owned by the model for pid, or nil.
func (m *MemoryModel) Process(pid string) *ProcessState {
	return m.processes[pid]
}

// CreateProcess registers a process and its page-access generator.
// The generator's random source is derived from the model's seed and the
// process's creation index, so a seeded model reproduces every stream
// regardless of how draws interleave across processes.
func (m *MemoryModel) CreateProcess(pid string, arrival, burst, pagesCount int, pattern AccessPattern) *ProcessState {
	if pattern == "" {
		pattern = m.cfg.AccessPattern
	}
	procRand := m.rng.ForSubsystem(SubsystemProcess(len(m.order)))
	gen := NewPageGenerator(pagesCount, procRand, pattern, m.cfg.HotspotFrac, m.cfg.HotspotProb)

	proc := &ProcessState{
		PID:        pid,
		Arrival:    arrival,
		Burst:      burst,
		Remaining:  burst,
		PagesCount: clampMinInt(pagesCount, 1),
		generator:  gen,
		window:     newPageWindow(m.cfg.WindowAccessCount),
		refCounts:  make(map[int]int),
	}

	m.processes[pid] = proc
	m.order = append(m.order, pid)
	m.normalizationStale = true
	return proc
}

// ObserveRun simulates max(1, accessesPerTimeUnit*runTime) page references
// for pid and returns the resulting observation. A reference faults iff its
// page is not currently resident in the sliding window; at capacity the
// oldest reference is evicted before the new one is admitted. Runs in time
// proportional to the number of simulated accesses.
func (m *MemoryModel) ObserveRun(pid string, runTime int) SliceObservation {
	proc := m.processes[pid]
	accesses := clampMinInt(m.cfg.AccessesPerTimeUnit*runTime, 1)

	faults := 0
	for i := 0; i < accesses; i++ {
		page := proc.generator.Next()

		if proc.refCounts[page] == 0 {
			faults++
		}

		if proc.window.full() {
			oldest := proc.window.popOldest()
			if proc.refCounts[oldest] <= 1 {
				delete(proc.refCounts, oldest)
			} else {
				proc.refCounts[oldest]--
			}
		}

		proc.window.push(page)
		proc.refCounts[page]++
	}

	obs := SliceObservation{
		RunTime:        runTime,
		Accesses:       accesses,
		PageFaults:     faults,
		WorkingSetSize: len(proc.refCounts),
	}
	proc.LastObs = &obs
	m.normalizationStale = true

	logrus.Debugf("observe pid=%s run=%d accesses=%d faults=%d ws=%d",
		pid, runTime, accesses, faults, obs.WorkingSetSize)
	return obs
}

// UpdateSignal folds an observation's fault rate into the process EMA.
func (m *MemoryModel) UpdateSignal(pid string, obs SliceObservation) {
	proc := m.processes[pid]
	observed := 0.0
	if obs.Accesses > 0 {
		observed = float64(obs.PageFaults) / float64(obs.Accesses)
	}
	proc.EMA = m.cfg.EMABeta*proc.EMA + (1.0-m.cfg.EMABeta)*observed
	m.normalizationStale = true
}

// RecomputeNormalization rescales every process signal against the current
// population-maximum EMA. No-op if nothing changed since the last call.
// One process's update can shift every other process's signal.
func (m *MemoryModel) RecomputeNormalization() {
	if !m.normalizationStale {
		return
	}

	maxEMA := 0.0
	for _, p := range m.processes {
		if p.EMA > maxEMA {
			maxEMA = p.EMA
		}
	}

	for _, p := range m.processes {
		if maxEMA > m.cfg.NormalizationEps {
			p.MemSignal = p.EMA / maxEMA
		} else {
			p.MemSignal = 0.0
		}
	}
	m.normalizationStale = false
}

// EstimatedMemoryMB maps pid's memory signal onto the configured MB range.
func (m *MemoryModel) EstimatedMemoryMB(pid string) int {
	sig := m.processes[pid].MemSignal
	return roundToInt(float64(m.cfg.MinMemoryMB) + sig*float64(m.cfg.MaxMemoryMB-m.cfg.MinMemoryMB))
}

// EffectiveQuantum stretches baseQ by the process's memory signal.
// Never returns less than 1.
func (m *MemoryModel) EffectiveQuantum(pid string, baseQ int) int {
	sig := m.processes[pid].MemSignal
	return clampMinInt(roundToInt(float64(baseQ)*(1.0+m.cfg.Sensitivity*sig)), 1)
}
