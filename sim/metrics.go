// Derives scheduling metrics from an execution timeline:
// waiting/turnaround time, context switches, CPU occupancy and utilization.

package sim

import (
	"github.com/sched-sim/sched-sim/sim/trace"
)

// ScheduleMetrics aggregates per-process and system-wide statistics
// derived from one timeline. Useful for evaluating scheduling policies
// and debugging behavior over time.
type ScheduleMetrics struct {
	Waiting    map[string]int // per-process waiting time (ticks)
	Turnaround map[string]int // per-process turnaround time (ticks)
	// CPUUtilization here is the raw burst-sum figure; the reported value
	// is recomputed from the occupancy series by UtilizationFromSeries.
	CPUUtilization float64
	TotalTime      int // max end tick across all slices, 0 if none
}

// ContextSwitches counts adjacent-slice process changes in emission order.
// Empty and single-slice timelines have no switches.
func ContextSwitches(timeline []Slice) int {
	if len(timeline) == 0 {
		return 0
	}
	switches := 0
	prev := timeline[0].PID
	for _, s := range timeline[1:] {
		if s.PID != prev {
			switches++
		}
		prev = s.PID
	}
	return switches
}

// ComputeMetrics derives waiting/turnaround/total time from a timeline.
// Completion is the max end tick across a process's slices; a process with
// no slices gets waiting = turnaround = 0. Both figures are floored at zero.
func ComputeMetrics(pids []string, bursts, arrivals map[string]int, timeline []Slice) ScheduleMetrics {
	m := ScheduleMetrics{
		Waiting:    make(map[string]int, len(pids)),
		Turnaround: make(map[string]int, len(pids)),
	}
	for _, pid := range pids {
		m.Waiting[pid] = 0
		m.Turnaround[pid] = 0
	}
	if len(timeline) == 0 {
		return m
	}

	completion := make(map[string]int, len(pids))
	maxEnd := 0
	for _, s := range timeline {
		if s.End > completion[s.PID] {
			completion[s.PID] = s.End
		}
		if s.End > maxEnd {
			maxEnd = s.End
		}
	}
	m.TotalTime = maxEnd

	totalBurst := 0
	for _, pid := range pids {
		totalBurst += bursts[pid]
	}

	for _, pid := range pids {
		comp, ok := completion[pid]
		if !ok {
			continue
		}
		tat := comp - clampNonNegativeInt(arrivals[pid])
		m.Turnaround[pid] = clampNonNegativeInt(tat)
		m.Waiting[pid] = clampNonNegativeInt(tat - bursts[pid])
	}

	if m.TotalTime > 0 {
		m.CPUUtilization = float64(totalBurst) / float64(m.TotalTime) * 100.0
	}
	return m
}

// CPUSample is one tick of the CPU occupancy series.
type CPUSample struct {
	Time int `json:"time"`
	CPU  int `json:"cpu"` // 0 or 100
}

// BuildCPUSeries produces one sample per integer tick in [0, totalTime).
// A tick is busy if any slice's half-open interval covers it. Slices with
// non-positive duration are skipped; intervals are clamped to the series
// bounds.
func BuildCPUSeries(timeline []Slice, totalTime int) []CPUSample {
	if len(timeline) == 0 || totalTime <= 0 {
		return nil
	}

	occupied := make([]bool, totalTime)
	for _, s := range timeline {
		if s.End <= s.Start {
			continue
		}
		start := clampNonNegativeInt(s.Start)
		end := s.End
		if end > totalTime {
			end = totalTime
		}
		for t := start; t < end; t++ {
			occupied[t] = true
		}
	}

	series := make([]CPUSample, totalTime)
	for t := 0; t < totalTime; t++ {
		cpu := 0
		if occupied[t] {
			cpu = 100
		}
		series[t] = CPUSample{Time: t, CPU: cpu}
	}
	return series
}

// UtilizationFromSeries returns the busy-tick fraction of the series as a
// percentage. This is the authoritative utilization figure for reporting.
func UtilizationFromSeries(series []CPUSample) float64 {
	if len(series) == 0 {
		return 0.0
	}
	busy := 0
	for _, s := range series {
		if s.CPU > 0 {
			busy++
		}
	}
	return float64(busy) / float64(len(series)) * 100.0
}

// GenerateTrace emits a running event at the start and a stopped event at
// the end of every positive-duration slice, ordered so that stopped events
// precede running events at equal timestamps.
func GenerateTrace(timeline []Slice) []trace.Entry {
	entries := make([]trace.Entry, 0, 2*len(timeline))
	for _, s := range timeline {
		if s.Start >= s.End {
			continue
		}
		entries = append(entries,
			trace.Entry{Time: s.Start, Event: trace.EventRunning, PID: s.PID},
			trace.Entry{Time: s.End, Event: trace.EventStopped, PID: s.PID},
		)
	}
	trace.Order(entries)
	return entries
}
