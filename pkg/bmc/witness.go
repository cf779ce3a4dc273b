package bmc

import (
	"github.com/go-air/gini/z"

	"github.com/bvmc/bvmc/pkg/term"
)

// model is a copy of the solver's satisfying assignment, indexed by
// circuit variable.
type model struct {
	bound   int
	values  []bool
	reached []int
}

func (m *model) value(l z.Lit) bool {
	v := int(l.Var())
	b := v < len(m.values) && m.values[v]
	if !l.IsPos() {
		b = !b
	}
	return b
}

func (e *Engine) snapshot(k int, reached []int) {
	n := e.u.c.Len()
	values := make([]bool, n)
	for v := 1; v < n; v++ {
		values[v] = e.solver.Value(z.Var(v).Pos())
	}
	e.model = &model{bound: k, values: values, reached: reached}
}

// Assignment is the value of a term at one frame of the current
// counterexample.
type Assignment struct {
	Term term.Term
	Name string
	Time int
	// Bits holds the value, most significant bit first.
	Bits string

	owner    *Engine
	released bool
}

func (a *Assignment) String() string {
	return a.Bits
}

// Format renders the value in base.
func (a *Assignment) Format(base Base) string {
	return FormatBits(a.Bits, base)
}

// ModelBound returns the bound of the current counterexample, or
// NotFound when there is none.
func (e *Engine) ModelBound() int {
	if e.model == nil {
		return NotFound
	}
	return e.model.bound
}

// Assignment returns the value of t at the given time in the current
// counterexample. t must be a latch or input; with trace generation
// enabled any term instantiated at that frame is accepted. The result
// must be given back with ReleaseAssignment.
func (e *Engine) Assignment(t term.Term, time int) (*Assignment, error) {
	const op = "assignment"
	if err := e.usable(op); err != nil {
		return nil, err
	}
	if e.model == nil {
		return nil, usagef(op, "no satisfying model is available")
	}
	if time < 0 || time > e.model.bound {
		return nil, usagef(op, "time %d is outside the counterexample [0, %d]", time, e.model.bound)
	}
	f := e.u.frames[time]
	v, ok := f.vars[t]
	if !ok && e.traceGen {
		v, ok = f.memo[t]
	}
	if !ok {
		return nil, usagef(op, "term %d has no instance at time %d", t, time)
	}
	bits := make([]byte, len(v))
	for i, m := range v {
		bits[len(v)-1-i] = '0'
		if e.model.value(m) {
			bits[len(v)-1-i] = '1'
		}
	}
	a := &Assignment{
		Term:  t,
		Name:  e.terms.Name(t),
		Time:  time,
		Bits:  string(bits),
		owner: e,
	}
	e.outstanding[a] = struct{}{}
	return a, nil
}

// AssignmentByName is Assignment for the latch or input with the given
// name.
func (e *Engine) AssignmentByName(name string, time int) (*Assignment, error) {
	t, ok := e.names[name]
	if !ok {
		return nil, usagef("assignment", "no latch or input named %q", name)
	}
	return e.Assignment(t, time)
}

// ReleaseAssignment gives back a value returned by Assignment. Each
// value is released exactly once.
func (e *Engine) ReleaseAssignment(a *Assignment) error {
	const op = "release assignment"
	if a == nil || a.owner != e {
		return usagef(op, "assignment was not returned by this engine")
	}
	if a.released {
		return usagef(op, "assignment already released")
	}
	a.released = true
	delete(e.outstanding, a)
	return nil
}
