package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/sched-sim/sched-sim/sim"
)

// sampleWorkload returns a small three-process workload whose baseline
// schedule is easy to verify by hand.
func sampleWorkload() *sim.SystemConfig {
	seed := int64(42)
	return &sim.SystemConfig{
		TotalFrames: 64,
		PageSize:    4,
		CPUQuantum:  2,
		Seed:        &seed,
		Processes: []sim.ProcessSpec{
			{PID: "P1", ArrivalTime: 0, BurstTime: 8, PagesCount: 12},
			{PID: "P2", ArrivalTime: 3, BurstTime: 5, PagesCount: 6},
			{PID: "P3", ArrivalTime: 5, BurstTime: 2, PagesCount: 20},
		},
	}
}

// initCmd writes a sample workload YAML to stdout.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Emit a sample workload YAML",
	Long:  "Write a small, valid workload configuration to stdout as a starting point for `sched-sim run --workload`.",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := yaml.Marshal(sampleWorkload())
		if err != nil {
			logrus.Fatalf("Failed to marshal sample workload: %v", err)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			logrus.Fatalf("Failed to write sample workload: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
