package sim

import "fmt"

// ProcessSpec describes one process in a workload.
type ProcessSpec struct {
	PID         string `yaml:"pid" json:"pid"`
	ArrivalTime int    `yaml:"arrival_time" json:"arrival_time"`
	BurstTime   int    `yaml:"burst_time" json:"burst_time"`
	// Priority is carried through for callers but unused by the engine.
	Priority   int `yaml:"priority" json:"priority"`
	PagesCount int `yaml:"pages_count" json:"pages_count"`
}

// SystemConfig is the validated configuration a simulation run consumes.
type SystemConfig struct {
	TotalFrames     int           `yaml:"total_frames" json:"total_frames"`
	PageSize        int           `yaml:"page_size" json:"page_size"`
	CPUQuantum      int           `yaml:"cpu_quantum" json:"cpu_quantum"`
	MemoryThreshold *int          `yaml:"memory_threshold" json:"memory_threshold,omitempty"`
	CPUIdleGap      *int          `yaml:"cpu_idle_gap" json:"cpu_idle_gap,omitempty"`
	Seed            *int64        `yaml:"seed" json:"seed,omitempty"`
	Processes       []ProcessSpec `yaml:"processes" json:"processes"`
}

// PIDs returns the process ids in configuration order.
func (c *SystemConfig) PIDs() []string {
	out := make([]string, len(c.Processes))
	for i, p := range c.Processes {
		out[i] = p.PID
	}
	return out
}

// Validate fails fast on malformed configuration. The engine itself assumes
// validated input, so every rejection happens here at the boundary.
func (c *SystemConfig) Validate() error {
	if c.CPUQuantum < 1 {
		return fmt.Errorf("config: cpu_quantum must be >= 1, got %d", c.CPUQuantum)
	}
	if c.TotalFrames < 0 {
		return fmt.Errorf("config: total_frames must be >= 0, got %d", c.TotalFrames)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config: page_size must be >= 1, got %d", c.PageSize)
	}
	if len(c.Processes) == 0 {
		return fmt.Errorf("config: at least one process is required")
	}

	seen := make(map[string]bool, len(c.Processes))
	for i, p := range c.Processes {
		if p.PID == "" {
			return fmt.Errorf("config: process %d has an empty pid", i)
		}
		if seen[p.PID] {
			return fmt.Errorf("config: duplicate pid %q", p.PID)
		}
		seen[p.PID] = true
		if p.ArrivalTime < 0 {
			return fmt.Errorf("config: process %q has negative arrival_time %d", p.PID, p.ArrivalTime)
		}
		if p.BurstTime < 0 {
			return fmt.Errorf("config: process %q has negative burst_time %d", p.PID, p.BurstTime)
		}
	}
	return nil
}
