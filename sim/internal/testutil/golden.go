// Package testutil provides shared test infrastructure for the scheduling
// simulator. It consolidates golden dataset types and assertion helpers used
// across sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single hand-traced baseline scenario.
type GoldenTestCase struct {
	Name      string          `json:"name"`
	Quantum   int             `json:"quantum"`
	Processes []GoldenProcess `json:"processes"`
	Metrics   GoldenMetrics   `json:"metrics"`
}

// GoldenProcess is one process of a golden scenario.
type GoldenProcess struct {
	PID     string `json:"pid"`
	Arrival int    `json:"arrival"`
	Burst   int    `json:"burst"`
}

// GoldenMetrics represents the expected metrics from a golden test case,
// derived by hand-tracing the Round-Robin schedule.
type GoldenMetrics struct {
	TotalTime       int            `json:"total_time"`
	ContextSwitches int            `json:"context_switches"`
	CPUUtilization  float64        `json:"cpu_utilization"`
	Waiting         map[string]int `json:"waiting"`
	Turnaround      map[string]int `json:"turnaround"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
