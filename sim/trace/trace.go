package trace

import "sort"

// eventOrder ranks events sharing a timestamp: stopped closes before
// running opens, so a process ending exactly when another begins is shown
// closing first and consumers never see two processes open at once.
func eventOrder(e EventType) int {
	if e == EventStopped {
		return 0
	}
	return 1
}

// Order sorts entries in place ascending by (time, stopped-before-running, pid).
func Order(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Time != entries[j].Time {
			return entries[i].Time < entries[j].Time
		}
		oi, oj := eventOrder(entries[i].Event), eventOrder(entries[j].Event)
		if oi != oj {
			return oi < oj
		}
		return entries[i].PID < entries[j].PID
	})
}
