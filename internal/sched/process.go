package sched

import "fmt"

// ProcessID identifies a process within one run. IDs start at 1; 0 means "no process".
type ProcessID int

// Descriptor is the input shape of one job before the engine owns it.
type Descriptor struct {
	Arrival  int `yaml:"arrival"`
	Burst    int `yaml:"burst"`
	Priority int `yaml:"priority"`
}

// Process is one simulated job.
type Process struct {
	ID       ProcessID
	Arrival  int // tick at which the process joins the ready queue
	Burst    int // ticks of processor time required
	Priority int // meaning depends on the policy (see PriorityHigh, PriorityLow)

	RunTime int  // ticks executed so far, 0..Burst
	Started bool // set on first dispatch, never cleared
}

// Done reports whether the process has executed its whole burst.
func (p *Process) Done() bool { return p.RunTime >= p.Burst }

// Remaining returns the ticks still needed.
func (p *Process) Remaining() int { return p.Burst - p.RunTime }

// String renders the process the way debug output lists the ready queue.
func (p *Process) String() string {
	return fmt.Sprintf("p%d(%d,%d,%d)", p.ID, p.Arrival, p.Burst, p.Priority)
}
