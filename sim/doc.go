// Package sim provides the core engine for Round-Robin CPU scheduling
// simulation under a synthetic memory-pressure signal.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - memmodel.go: page-access observation, sliding-window working set,
//     EMA fault-rate signal and its global normalization
//   - timeline.go: the integer Round-Robin simulation over a FIFO ready queue
//   - scenario.go: the baseline / memory-aware / compare drivers
//
// # Structure
//
// The engine is single-threaded and synchronous; every call returns a
// complete result. Each run owns its MemoryModel and process states, so
// independent runs may execute in parallel without coordination as long as
// each carries its own seed.
//
// Determinism is controlled by the seeding policy in rng.go: a configured
// seed derives every per-process random stream through a PartitionedRNG, so
// identical seed and configuration reproduce identical output. Without a
// seed, streams are time-derived and runs may diverge.
//
// Sub-packages:
//   - sim/trace/: pure-data execution trace records and their ordering
//   - sim/internal/testutil/: golden dataset loading for tests
package sim
