package sched

import (
	"fmt"
	"strings"
)

// Policy selects how the ready queue is ordered and who runs next.
// PriorityHigh runs the largest priority value first, PriorityLow the smallest.
type Policy int

const (
	ShortestJobFirst Policy = iota
	PriorityHigh
	PriorityLow
	RoundRobin
)

// Policies lists every supported policy in display order.
var Policies = []Policy{ShortestJobFirst, PriorityHigh, PriorityLow, RoundRobin}

func (p Policy) String() string {
	switch p {
	case ShortestJobFirst:
		return "SJF"
	case PriorityHigh:
		return "PH"
	case PriorityLow:
		return "PL"
	case RoundRobin:
		return "RR"
	default:
		return "Unknown"
	}
}

// Describe returns a human readable name for listings.
func (p Policy) Describe() string {
	switch p {
	case ShortestJobFirst:
		return "Shortest job first (burst ascending)"
	case PriorityHigh:
		return "Priority, highest value first"
	case PriorityLow:
		return "Priority, lowest value first"
	case RoundRobin:
		return "Round robin (FIFO, time quantum)"
	default:
		return "Unknown"
	}
}

// ParsePolicy accepts the short codes (sjf, ph, pl, rr) and the long names,
// ignoring case, dashes and underscores.
func ParsePolicy(s string) (Policy, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	switch norm {
	case "sjf", "shortestjobfirst":
		return ShortestJobFirst, nil
	case "ph", "priorityhigh":
		return PriorityHigh, nil
	case "pl", "prioritylow":
		return PriorityLow, nil
	case "rr", "roundrobin":
		return RoundRobin, nil
	}
	return 0, &ConfigurationError{Field: "policy", Value: s, Reason: "expected one of sjf, ph, pl, rr"}
}

// ordering is the per-policy part of the engine.
type ordering interface {
	// insert places p in q and reports whether it landed at the head.
	insert(q *readyQueue, p *Process) bool
	// next picks the index of the process to run after the one that was at pos
	// (-1 if none was running). removed tells whether that process has already
	// been taken out of q. q is never empty.
	next(q *readyQueue, pos int, removed bool) int
	// sliceExpired reports whether a time slice ends at tick now.
	sliceExpired(now, quantum, ready int) bool
}

func (p Policy) ordering() (ordering, error) {
	switch p {
	case ShortestJobFirst:
		return sortedOrdering{before: func(a, b *Process) bool { return a.Burst < b.Burst }}, nil
	case PriorityHigh:
		return sortedOrdering{before: func(a, b *Process) bool { return a.Priority > b.Priority }}, nil
	case PriorityLow:
		return sortedOrdering{before: func(a, b *Process) bool { return a.Priority < b.Priority }}, nil
	case RoundRobin:
		return roundRobin{}, nil
	}
	return nil, &ConfigurationError{Field: "policy", Value: fmt.Sprint(int(p)), Reason: "unknown policy"}
}

// sortedOrdering keeps the queue sorted by before; equal keys keep arrival order.
type sortedOrdering struct {
	before func(a, b *Process) bool
}

func (o sortedOrdering) insert(q *readyQueue, p *Process) bool {
	dest := 0
	for dest < q.size() && !o.before(p, q.at(dest)) {
		dest++
	}
	q.insertAt(dest, p)
	return dest == 0
}

func (sortedOrdering) next(*readyQueue, int, bool) int { return 0 }

func (sortedOrdering) sliceExpired(int, int, int) bool { return false }

type roundRobin struct{}

func (roundRobin) insert(q *readyQueue, p *Process) bool {
	q.push(p)
	return false
}

func (roundRobin) next(q *readyQueue, pos int, removed bool) int {
	// After a removal the follower has shifted into pos.
	if !removed {
		pos++
	}
	if pos < 0 || pos >= q.size() {
		return 0
	}
	return pos
}

func (roundRobin) sliceExpired(now, quantum, ready int) bool {
	return ready > 1 && now%quantum == 0
}
