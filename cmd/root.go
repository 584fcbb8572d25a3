package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/sched-sim/sched-sim/sim"
)

var (
	// CLI flags
	workloadPath string // Path to the workload YAML file
	scenario     string // Scenario to run (baseline, memory-aware, compare)
	quantum      int    // Base CPU quantum override
	seed         int64  // Seed for reproducible memory-aware runs
	rounds       int    // Adaptation rounds before quanta freeze
	perturb      bool   // Randomize page counts / access patterns per process
	outputPath   string // Where to write the JSON result ("" = stdout)
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sched-sim",
	Short: "Discrete-event simulator for memory-aware Round-Robin scheduling",
}

// runCmd executes a scheduling scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if workloadPath == "" {
			logrus.Fatalf("Workload file not provided. Run `sched-sim init > workload.yaml` for a starting point.")
		}

		cfg, err := LoadWorkload(workloadPath)
		if err != nil {
			logrus.Fatalf("Failed to load workload %s: %v", workloadPath, err)
		}

		// CLI overrides beat YAML values only when explicitly set
		if cmd.Flags().Changed("quantum") {
			cfg.CPUQuantum = quantum
		}
		if cmd.Flags().Changed("seed") {
			s := seed
			cfg.Seed = &s
		}

		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}

		opts := sim.DefaultMemoryAwareOptions()
		opts.Rounds = rounds
		opts.PerturbWorkload = perturb

		logrus.Infof("Starting %s simulation: %d processes, quantum=%d",
			scenario, len(cfg.Processes), cfg.CPUQuantum)
		startTime := time.Now()

		var out any
		switch scenario {
		case "baseline":
			out = sim.SimulateBaseline(cfg)
		case "memory-aware":
			out = sim.SimulateMemoryAware(cfg, opts)
		case "compare":
			out = sim.CompareSchedulers(cfg, opts)
		default:
			logrus.Fatalf("Unknown scenario %q (want baseline, memory-aware or compare)", scenario)
		}

		if err := writeResult(out, outputPath); err != nil {
			logrus.Fatalf("Failed to write result: %v", err)
		}
		if outputPath != "" {
			printSummary(out)
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// writeResult serializes the scenario output as indented JSON to path,
// or to stdout when path is empty.
func writeResult(out any, path string) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// printSummary displays aggregate figures on stdout when the JSON result
// went to a file instead.
func printSummary(out any) {
	switch v := out.(type) {
	case *sim.SimulationResult:
		v.PrintSummary()
	case *sim.CompareBundle:
		fmt.Println("--- baseline ---")
		v.Baseline.PrintSummary()
		fmt.Println("--- memory-aware ---")
		v.MemoryAware.PrintSummary()
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&workloadPath, "workload", "", "Path to workload YAML (system config + process list)")
	runCmd.Flags().StringVar(&scenario, "scenario", "compare", "Scenario to run (baseline, memory-aware, compare)")
	runCmd.Flags().IntVar(&quantum, "quantum", 2, "Base CPU quantum (overrides the workload file when set)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible memory-aware runs (unseeded when omitted)")
	runCmd.Flags().IntVar(&rounds, "rounds", 16, "Adaptation rounds before per-process quanta are frozen")
	runCmd.Flags().BoolVar(&perturb, "perturb", true, "Randomize page counts and access patterns per process")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the JSON result to this file instead of stdout")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
}
