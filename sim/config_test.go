package sim

import (
	"strings"
	"testing"
)

func validConfig() *SystemConfig {
	return &SystemConfig{
		TotalFrames: 64,
		PageSize:    4,
		CPUQuantum:  2,
		Processes: []ProcessSpec{
			{PID: "P1", ArrivalTime: 0, BurstTime: 5},
			{PID: "P2", ArrivalTime: 1, BurstTime: 3},
		},
	}
}

func TestSystemConfig_ValidateAccepts(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestSystemConfig_ValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SystemConfig)
		wantSub string
	}{
		{"zero quantum", func(c *SystemConfig) { c.CPUQuantum = 0 }, "cpu_quantum"},
		{"negative quantum", func(c *SystemConfig) { c.CPUQuantum = -3 }, "cpu_quantum"},
		{"negative frames", func(c *SystemConfig) { c.TotalFrames = -1 }, "total_frames"},
		{"zero page size", func(c *SystemConfig) { c.PageSize = 0 }, "page_size"},
		{"no processes", func(c *SystemConfig) { c.Processes = nil }, "at least one process"},
		{"empty pid", func(c *SystemConfig) { c.Processes[0].PID = "" }, "empty pid"},
		{"duplicate pid", func(c *SystemConfig) { c.Processes[1].PID = "P1" }, "duplicate pid"},
		{"negative arrival", func(c *SystemConfig) { c.Processes[0].ArrivalTime = -1 }, "arrival_time"},
		{"negative burst", func(c *SystemConfig) { c.Processes[1].BurstTime = -2 }, "burst_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestSystemConfig_PIDsPreserveOrder(t *testing.T) {
	cfg := validConfig()
	got := cfg.PIDs()
	want := []string{"P1", "P2"}
	if len(got) != len(want) {
		t.Fatalf("got %d pids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pid %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
