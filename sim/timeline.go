// Implements the integer Round-Robin timeline simulation over a FIFO ready queue.

package sim

import (
	"fmt"
	"sort"
	"strings"
)

// Slice is one contiguous, uninterrupted execution interval assigned to a
// single process. Intervals are half-open: [Start, End), End > Start always.
type Slice struct {
	PID   string `json:"pid"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// readyQueue is a FIFO queue of process ids with an O(1) membership test.
// Membership matters because an id must never be queued twice: a process
// re-enqueued after its slice and also picked up by an arrival scan would
// otherwise run back-to-back.
type readyQueue struct {
	queue  []string
	queued map[string]bool
}

func newReadyQueue() *readyQueue {
	return &readyQueue{queued: make(map[string]bool)}
}

// Enqueue adds pid to the back of the queue; no-op if already queued.
func (rq *readyQueue) Enqueue(pid string) {
	if rq.queued[pid] {
		return
	}
	rq.queue = append(rq.queue, pid)
	rq.queued[pid] = true
}

// Dequeue removes and returns the head of the queue.
// Returns "" if the queue is empty.
func (rq *readyQueue) Dequeue() string {
	if len(rq.queue) == 0 {
		return ""
	}
	pid := rq.queue[0]
	rq.queue = rq.queue[1:]
	delete(rq.queued, pid)
	return pid
}

// Len returns the number of queued ids.
func (rq *readyQueue) Len() int {
	return len(rq.queue)
}

// Contains reports whether pid is currently queued.
func (rq *readyQueue) Contains(pid string) bool {
	return rq.queued[pid]
}

func (rq *readyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, pid := range rq.queue {
		sb.WriteString(fmt.Sprint(pid))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// pendingArrival pairs a process with its admission time.
type pendingArrival struct {
	time int
	pid  string
}

// SimulateRoundRobin produces the execution timeline for the given processes
// under per-process quanta. Bursts are clamped to >= 0, arrivals to >= 0 and
// quanta to >= 1 before simulation. Simultaneous arrivals are admitted in
// lexicographic pid order. The returned slices all have End > Start and are
// emitted in non-decreasing Start order.
//
// Deterministic given deterministic quanta: no random draws occur here.
// Terminates because every dequeued process with remaining burst consumes at
// least one tick of it.
func SimulateRoundRobin(pids []string, bursts, quanta, arrivals map[string]int) []Slice {
	rem := make(map[string]int, len(pids))
	arr := make(map[string]int, len(pids))
	qmap := make(map[string]int, len(pids))
	for _, pid := range pids {
		rem[pid] = clampNonNegativeInt(bursts[pid])
		arr[pid] = clampNonNegativeInt(arrivals[pid])
		qmap[pid] = clampMinInt(quanta[pid], 1)
	}

	future := make([]pendingArrival, 0, len(pids))
	for _, pid := range pids {
		future = append(future, pendingArrival{time: arr[pid], pid: pid})
	}
	sort.Slice(future, func(i, j int) bool {
		if future[i].time != future[j].time {
			return future[i].time < future[j].time
		}
		return future[i].pid < future[j].pid
	})

	futureIdx := 0
	now := 0
	ready := newReadyQueue()
	var timeline []Slice

	// admit every pending arrival with time <= t and remaining work
	pushArrivalsUpTo := func(t int) {
		for futureIdx < len(future) && future[futureIdx].time <= t {
			pid := future[futureIdx].pid
			if rem[pid] > 0 {
				ready.Enqueue(pid)
			}
			futureIdx++
		}
	}

	pushArrivalsUpTo(now)

	// nothing ready yet: jump straight to the first arrival
	if ready.Len() == 0 && futureIdx < len(future) {
		now = future[futureIdx].time
		pushArrivalsUpTo(now)
	}

	for ready.Len() > 0 {
		pid := ready.Dequeue()
		if rem[pid] <= 0 {
			// finished entry left over from a defensive re-admission
			pushArrivalsUpTo(now)
			if ready.Len() == 0 && futureIdx < len(future) {
				if future[futureIdx].time > now {
					now = future[futureIdx].time
				}
				pushArrivalsUpTo(now)
			}
			continue
		}

		use := qmap[pid]
		if rem[pid] < use {
			use = rem[pid]
		}
		use = clampMinInt(use, 1)

		timeline = append(timeline, Slice{PID: pid, Start: now, End: now + use})

		rem[pid] -= use
		now += use

		pushArrivalsUpTo(now)

		if rem[pid] > 0 {
			ready.Enqueue(pid)
		}

		if ready.Len() == 0 {
			// defensive re-admission: catch any arrived process the
			// arrival cursor may have skipped while it was finished
			for _, p := range pids {
				if rem[p] > 0 && arr[p] <= now {
					ready.Enqueue(p)
				}
			}
			if ready.Len() == 0 && futureIdx < len(future) {
				if future[futureIdx].time > now {
					now = future[futureIdx].time
				}
				pushArrivalsUpTo(now)
			}
		}
	}

	return timeline
}
