// internal/sched/engine.go

package sched

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Engine simulates one processor, one tick per step.
type Engine struct {
	cfg    Config
	order  ordering
	logger *slog.Logger

	arena   []*Process // every record of the run, indexed by ProcessID
	jobs    *jobQueue  // not yet arrived
	ready   *readyQueue
	running ProcessID // 0 when the processor is idle

	now         int
	newAtHead   bool // an arrival landed at the head of the ready queue this step
	wait        float64
	response    float64
	events      []Event
	stats       []ProcessStats // indexed by ProcessID
	steps       int
	lastEventAt int
}

// ProcessStats collects per-process figures alongside the run totals.
// Wait and Response use the same per-tick counting as the aggregates,
// so they add up to Result.TotalWait and Result.TotalResponse.
type ProcessStats struct {
	ID         ProcessID
	Arrival    int
	Burst      int
	Priority   int
	FirstStart int
	Completion int
	Wait       int
	Response   int
	Segments   int // number of times the process was dispatched
}

// Turnaround is completion minus arrival.
func (s ProcessStats) Turnaround() int { return s.Completion - s.Arrival }

// Result is what a finished run reports.
type Result struct {
	Policy        Policy
	Preemptive    bool
	Quantum       int
	Events        []Event
	Stats         []ProcessStats // ordered by id
	TotalWait     float64
	TotalResponse float64
	AvgWait       float64
	AvgResponse   float64
	Elapsed       int // tick of the last timeline event
	Steps         int
	PacedTicks    int64 // wall-clock ticks consumed when TickMS is set
}

// New builds an engine for procs. IDs are assigned 1..N in slice order.
func New(procs []Descriptor, cfg Config, logger *slog.Logger) (*Engine, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	order, _ := cfg.Policy.ordering()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		cfg:    cfg,
		order:  order,
		logger: logger.With("component", "engine"),
		arena:  make([]*Process, len(procs)+1),
		jobs:   newJobQueue(),
		stats:  make([]ProcessStats, len(procs)+1),
	}
	e.ready = newReadyQueue(e.arena)

	for i, d := range procs {
		if d.Burst < 1 {
			return nil, &MalformedInputError{Source: "process list", Index: i, Reason: fmt.Sprintf("burst time %d, must be positive", d.Burst)}
		}
		if d.Arrival < 0 {
			return nil, &MalformedInputError{Source: "process list", Index: i, Reason: fmt.Sprintf("arrival time %d, must not be negative", d.Arrival)}
		}
		p := &Process{
			ID:       ProcessID(i + 1),
			Arrival:  d.Arrival,
			Burst:    d.Burst,
			Priority: d.Priority,
		}
		e.arena[p.ID] = p
		e.stats[p.ID] = ProcessStats{ID: p.ID, Arrival: p.Arrival, Burst: p.Burst, Priority: p.Priority, FirstStart: -1}
		e.jobs.push(p)
	}

	e.logger.Debug("engine constructed",
		"policy", cfg.Policy.String(),
		"preemptive", cfg.Preemptive,
		"quantum", cfg.Quantum,
		"processes", len(procs))
	return e, nil
}

// Config returns the effective configuration after clamping.
func (e *Engine) Config() Config { return e.cfg }

// Process returns the record for id, or nil.
func (e *Engine) Process(id ProcessID) *Process {
	if id < 1 || int(id) >= len(e.arena) {
		return nil
	}
	return e.arena[id]
}

// Now returns the current simulated tick.
func (e *Engine) Now() int { return e.now }

// Running returns the process holding the processor, or 0.
func (e *Engine) Running() ProcessID { return e.running }

// Finished reports whether both queues are empty.
func (e *Engine) Finished() bool { return e.jobs.empty() && e.ready.empty() }

// Run steps until every process has completed. When TickMS is set each step
// waits for a clock tick. Only ctx cancellation can make it fail.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	var clock *TickClock
	if e.cfg.TickMS > 0 {
		clock = NewTickClock(1)
		clock.Start(time.Duration(e.cfg.TickMS) * time.Millisecond)
		defer clock.Stop()
	}

	for !e.Finished() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if clock != nil {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-clock.Ch:
			}
		}
		e.Step()
	}

	res := e.result()
	if clock != nil {
		res.PacedTicks = clock.Count()
	}
	e.logger.Info("simulation complete",
		"processes", len(e.arena)-1,
		"avg_wait", res.AvgWait,
		"avg_response", res.AvgResponse,
		"elapsed", res.Elapsed)
	return res, nil
}

// Step executes one simulated tick.
func (e *Engine) Step() {
	e.newAtHead = false
	e.steps++

	// 1) admit arrivals
	for {
		p, ok := e.jobs.popArrived(e.now)
		if !ok {
			break
		}
		e.logger.Debug("process arrives", "time", e.now, "pid", p.ID)
		if e.order.insert(e.ready, p) {
			e.newAtHead = true
		}
	}

	// 2) decide whether to switch
	switch {
	case e.running == 0:
		if !e.ready.empty() {
			e.advance(false)
		}
	case e.arena[e.running].Done():
		e.advance(true)
	case e.cfg.Preemptive && e.newAtHead:
		e.advance(false)
	case e.order.sliceExpired(e.now, e.cfg.Quantum, e.ready.size()):
		e.advance(false)
	}

	// 3) tick
	e.now++
	if e.running != 0 {
		e.arena[e.running].RunTime++
	}

	// 4) accounting
	e.ready.each(func(p *Process) {
		if p.ID != e.running {
			e.wait++
			e.stats[p.ID].Wait++
		}
		if !p.Started {
			e.response++
			e.stats[p.ID].Response++
		}
	})
}

// advance hands the processor to the next process. removeCurrent drops the
// outgoing process, which has finished.
func (e *Engine) advance(removeCurrent bool) {
	if e.logger.Enabled(context.Background(), slog.LevelDebug) {
		e.logger.Debug("process execution order", "time", e.now, "ready", e.queueOrder())
	}

	out := e.running
	pos := e.ready.indexOf(out)
	if out != 0 {
		e.emit(EventEnd, out)
	}
	if removeCurrent && pos >= 0 {
		e.ready.remove(pos)
		e.stats[out].Completion = e.now
		e.logger.Info("process complete", "time", e.now, "pid", out)
	} else if out != 0 {
		e.logger.Debug("process switched out", "time", e.now, "pid", out, "remaining", e.arena[out].Remaining())
	}

	if e.ready.empty() {
		e.running = 0
		e.logger.Debug("processor idle", "time", e.now)
		return
	}

	next := e.ready.at(e.order.next(e.ready, pos, removeCurrent))
	e.running = next.ID
	next.Started = true
	if e.stats[next.ID].FirstStart < 0 {
		e.stats[next.ID].FirstStart = e.now
	}
	e.stats[next.ID].Segments++
	e.emit(EventStart, next.ID)
	e.logger.Debug("loading process", "time", e.now, "pid", next.ID)
}

func (e *Engine) emit(kind EventKind, id ProcessID) {
	e.events = append(e.events, Event{Time: e.now, Kind: kind, PID: id})
	e.lastEventAt = e.now
}

func (e *Engine) queueOrder() string {
	var b strings.Builder
	e.ready.each(func(p *Process) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.String())
	})
	return b.String()
}

// Events returns a copy of the timeline produced so far.
func (e *Engine) Events() []Event {
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}

func (e *Engine) result() Result {
	n := len(e.arena) - 1
	res := Result{
		Policy:        e.cfg.Policy,
		Preemptive:    e.cfg.Preemptive,
		Quantum:       e.cfg.Quantum,
		Events:        e.Events(),
		Stats:         make([]ProcessStats, n),
		TotalWait:     e.wait,
		TotalResponse: e.response,
		Elapsed:       e.lastEventAt,
		Steps:         e.steps,
	}
	copy(res.Stats, e.stats[1:])
	if n > 0 {
		res.AvgWait = e.wait / float64(n)
		res.AvgResponse = e.response / float64(n)
	}
	return res
}
