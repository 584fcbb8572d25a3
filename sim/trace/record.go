// Package trace provides execution-trace records for timeline visualization.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// EventType labels what happened to a process at a trace timestamp.
type EventType string

const (
	// EventRunning marks the start of an execution slice.
	EventRunning EventType = "running"
	// EventStopped marks the end of an execution slice.
	EventStopped EventType = "stopped"
)

// Entry captures a single scheduling event on the timeline.
type Entry struct {
	Time  int       `json:"time"`
	Event EventType `json:"event"`
	PID   string    `json:"pid"`
}
