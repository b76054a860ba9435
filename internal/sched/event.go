// internal/sched/event.go

package sched

// EventKind represents the type of timeline event: a process receiving
// (Start) or giving up (End) the processor.
type EventKind int

const (
	EventStart EventKind = iota
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "Start"
	case EventEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Event is one timeline entry, emitted in the order the switches happen.
// An End for the outgoing process always precedes the Start of its successor.
type Event struct {
	Time int
	Kind EventKind
	PID  ProcessID
}

// Segment is one uninterrupted stretch of execution.
type Segment struct {
	PID   ProcessID
	Start int
	End   int
}

// Len returns the number of ticks the segment covers.
func (s Segment) Len() int { return s.End - s.Start }

// Segments pairs each Start with the following End of the same process.
// A Start with no End yet is dropped.
func Segments(events []Event) []Segment {
	open := make(map[ProcessID]int)
	var segs []Segment
	for _, ev := range events {
		switch ev.Kind {
		case EventStart:
			open[ev.PID] = ev.Time
		case EventEnd:
			start, ok := open[ev.PID]
			if !ok {
				continue
			}
			delete(open, ev.PID)
			segs = append(segs, Segment{PID: ev.PID, Start: start, End: ev.Time})
		}
	}
	return segs
}
