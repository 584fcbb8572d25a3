package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/sched-sim/sched-sim/sim"
)

// workloadDoc is the on-disk workload shape. Both the flat form
// (system fields at top level) and the nested form (a `system:` section)
// are accepted; the process list may live at either level.
type workloadDoc struct {
	System *systemSection `yaml:"system"`

	TotalFrames     *int   `yaml:"total_frames"`
	PageSize        *int   `yaml:"page_size"`
	CPUQuantum      *int   `yaml:"cpu_quantum"`
	MemoryThreshold *int   `yaml:"memory_threshold"`
	CPUIdleGap      *int   `yaml:"cpu_idle_gap"`
	Seed            *int64 `yaml:"seed"`

	Processes []sim.ProcessSpec `yaml:"processes"`
}

// systemSection mirrors the system fields of the nested form.
type systemSection struct {
	TotalFrames     int               `yaml:"total_frames"`
	PageSize        int               `yaml:"page_size"`
	CPUQuantum      int               `yaml:"cpu_quantum"`
	MemoryThreshold *int              `yaml:"memory_threshold"`
	CPUIdleGap      *int              `yaml:"cpu_idle_gap"`
	Seed            *int64            `yaml:"seed"`
	Processes       []sim.ProcessSpec `yaml:"processes"`
}

// LoadWorkload reads and flattens a workload YAML file into a SystemConfig.
// Parsing is strict: unknown fields are an error, so typos surface instead
// of silently falling back to defaults. Validation is the caller's job.
func LoadWorkload(path string) (*sim.SystemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload: %w", err)
	}
	return parseWorkload(data)
}

func parseWorkload(data []byte) (*sim.SystemConfig, error) {
	var doc workloadDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing workload: %w", err)
	}

	cfg := &sim.SystemConfig{Processes: doc.Processes}

	if doc.System != nil {
		cfg.TotalFrames = doc.System.TotalFrames
		cfg.PageSize = doc.System.PageSize
		cfg.CPUQuantum = doc.System.CPUQuantum
		cfg.MemoryThreshold = doc.System.MemoryThreshold
		cfg.CPUIdleGap = doc.System.CPUIdleGap
		cfg.Seed = doc.System.Seed
		if len(cfg.Processes) == 0 {
			cfg.Processes = doc.System.Processes
		}
		return cfg, nil
	}

	if doc.TotalFrames != nil {
		cfg.TotalFrames = *doc.TotalFrames
	}
	if doc.PageSize != nil {
		cfg.PageSize = *doc.PageSize
	}
	if doc.CPUQuantum != nil {
		cfg.CPUQuantum = *doc.CPUQuantum
	}
	cfg.MemoryThreshold = doc.MemoryThreshold
	cfg.CPUIdleGap = doc.CPUIdleGap
	cfg.Seed = doc.Seed
	return cfg, nil
}
