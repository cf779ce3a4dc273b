// Package bmc implements bounded model checking of bit-vector transition
// systems.
//
// An Engine holds a transition system made of latches, inputs and bad
// state properties. Search unrolls the system frame by frame into a single
// incremental SAT session and records, per property, the smallest bound at
// which a bad state is reachable from an initial state. After a
// satisfiable query the values of latches and inputs along the
// counterexample can be read back with Assignment.
package bmc

import (
	"github.com/sirupsen/logrus"

	"github.com/bvmc/bvmc/pkg/sat"
	"github.com/bvmc/bvmc/pkg/term"
)

type latch struct {
	v     term.Term
	name  string
	width int
	init  term.Term
	next  term.Term
}

type input struct {
	v     term.Term
	name  string
	width int
}

type varRef struct {
	latch bool
	index int
}

// Engine is a bounded model checker for one transition system. It is not
// safe for concurrent use, except for concurrent calls to ReachedAt while
// no Search is running.
type Engine struct {
	log    logrus.FieldLogger
	solver sat.Solver
	terms  *term.Builder
	tracer Tracer

	latches []*latch
	inputs  []*input
	bad     []term.Term
	vars    map[term.Term]varRef
	names   map[string]term.Term
	frozen  bool

	u           *unroller
	next        int
	tracker     *tracker
	model       *model
	outstanding map[*Assignment]struct{}

	stopAtFirst bool
	traceGen    bool
	closed      bool
}

// New returns an Engine with an empty transition system. Stop-at-first is
// enabled by default.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		vars:        make(map[term.Term]varRef),
		names:       make(map[string]term.Term),
		tracker:     &tracker{},
		outstanding: make(map[*Assignment]struct{}),
		stopAtFirst: true,
	}
	for _, option := range append(options, defaults...) {
		if err := option(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Close releases the solver state. Assignments that were never released
// are reported as leaks.
func (e *Engine) Close() error {
	if e.closed {
		return usagef("close", "engine already closed")
	}
	if n := len(e.outstanding); n > 0 {
		e.log.WithField("assignments", n).Warn("closing engine with unreleased assignments")
	}
	e.closed = true
	e.u = nil
	e.model = nil
	e.solver = nil
	return nil
}

func (e *Engine) usable(op string) error {
	if e.closed {
		return usagef(op, "engine is closed")
	}
	return nil
}

// Terms returns the builder in which latches and inputs are registered.
// Definitions passed to the engine must come from it.
func (e *Engine) Terms() *term.Builder {
	return e.terms
}

// Latches returns the latch variables in registration order.
func (e *Engine) Latches() []term.Term {
	ts := make([]term.Term, len(e.latches))
	for i, l := range e.latches {
		ts[i] = l.v
	}
	return ts
}

// Inputs returns the input variables in registration order.
func (e *Engine) Inputs() []term.Term {
	ts := make([]term.Term, len(e.inputs))
	for i, in := range e.inputs {
		ts[i] = in.v
	}
	return ts
}

// Properties returns the number of registered bad state properties.
func (e *Engine) Properties() int {
	return len(e.bad)
}

// Frames returns the number of unrolled frames.
func (e *Engine) Frames() int {
	if e.u == nil {
		return 0
	}
	return len(e.u.frames)
}

// SetStopAtFirst controls whether Search returns after the first bound
// at which any property is reached. It is on by default.
func (e *Engine) SetStopAtFirst(stop bool) {
	e.stopAtFirst = stop
}

// EnableTraceGen retains every frame's internal translation so that Dump
// and Assignment can report internal terms. It must be called before any
// frame exists.
func (e *Engine) EnableTraceGen() error {
	if err := e.usable("enable trace generation"); err != nil {
		return err
	}
	if e.Frames() > 0 {
		return usagef("enable trace generation", "%d frames already unrolled", e.Frames())
	}
	e.traceGen = true
	if e.u != nil {
		e.u.keep = true
	}
	return nil
}
