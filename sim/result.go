package sim

import (
	"fmt"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// SimulationResult is the complete outcome of one scenario run, shaped for
// direct serialization by callers.
type SimulationResult struct {
	TurnaroundTimes map[string]int `json:"turnaround_times"`
	WaitingTimes    map[string]int `json:"waiting_times"`
	// CPUUtilization is derived from the occupancy series (busy-tick
	// fraction), not from the raw burst-sum formula.
	CPUUtilization  float64        `json:"cpu_utilization"`
	TotalTime       int            `json:"total_time"`
	ContextSwitches int            `json:"context_switches"`
	Trace           []trace.Entry  `json:"trace"`
	InferredQuanta  map[string]int `json:"inferred_quanta"`
	// MemoryEstimates is empty for the baseline scenario.
	MemoryEstimates map[string]int `json:"memory_estimates"`
	CPUSeries       []CPUSample    `json:"cpu_series"`
	Meta            map[string]any `json:"meta,omitempty"`
}

// PrintSummary displays the aggregate figures of a result.
func (r *SimulationResult) PrintSummary() {
	fmt.Println("=== Simulation Result ===")
	fmt.Printf("Total Time        : %d ticks\n", r.TotalTime)
	fmt.Printf("CPU Utilization   : %.2f%%\n", r.CPUUtilization)
	fmt.Printf("Context Switches  : %d\n", r.ContextSwitches)
	fmt.Printf("Average Waiting   : %.2f ticks\n", meanOfIntMap(r.WaitingTimes))
	fmt.Printf("Average Turnaround: %.2f ticks\n", meanOfIntMap(r.TurnaroundTimes))
}

// CompareBundle pairs both scenario results for the same configuration.
type CompareBundle struct {
	Baseline    *SimulationResult `json:"baseline"`
	MemoryAware *SimulationResult `json:"memory_aware"`
}
