package bmc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bvmc/bvmc/pkg/term"
)

func (e *Engine) mutable(op string) error {
	if err := e.usable(op); err != nil {
		return err
	}
	if e.frozen {
		return usagef(op, "transition system is frozen after the first search")
	}
	return nil
}

func (e *Engine) declare(op string, width int, name string) (term.Term, error) {
	if err := e.mutable(op); err != nil {
		return term.Null, err
	}
	if width <= 0 {
		return term.Null, usagef(op, "width must be positive, got %d", width)
	}
	if name != "" {
		if _, ok := e.names[name]; ok {
			return term.Null, usagef(op, "name %q is already in use", name)
		}
	}
	v, err := e.terms.Var(width, name)
	if err != nil {
		return term.Null, usagef(op, "%v", err)
	}
	if name != "" {
		e.names[name] = v
	}
	return v, nil
}

// AddLatch registers a state variable and returns its term.
func (e *Engine) AddLatch(width int, name string) (term.Term, error) {
	v, err := e.declare("add latch", width, name)
	if err != nil {
		return term.Null, err
	}
	e.vars[v] = varRef{latch: true, index: len(e.latches)}
	e.latches = append(e.latches, &latch{v: v, name: name, width: width})
	e.log.WithField("latch", e.label(v)).Debug("latch added")
	return v, nil
}

// AddInput registers a free variable and returns its term.
func (e *Engine) AddInput(width int, name string) (term.Term, error) {
	v, err := e.declare("add input", width, name)
	if err != nil {
		return term.Null, err
	}
	e.vars[v] = varRef{index: len(e.inputs)}
	e.inputs = append(e.inputs, &input{v: v, name: name, width: width})
	e.log.WithField("input", e.label(v)).Debug("input added")
	return v, nil
}

func (e *Engine) latchOf(op string, l term.Term) (*latch, error) {
	ref, ok := e.vars[l]
	if !ok || !ref.latch {
		return nil, usagef(op, "term %d is not a latch", l)
	}
	return e.latches[ref.index], nil
}

func (e *Engine) definition(op string, l *latch, t term.Term) error {
	if !e.terms.Valid(t) {
		return usagef(op, "term %d is not defined", t)
	}
	if w := e.terms.Width(t); w != l.width {
		return usagef(op, "latch %s has width %d, definition has width %d", e.label(l.v), l.width, w)
	}
	return nil
}

// SetInit constrains the value of a latch at frame 0. Latches without an
// initial value start unconstrained.
func (e *Engine) SetInit(l, t term.Term) error {
	const op = "set init"
	if err := e.mutable(op); err != nil {
		return err
	}
	lt, err := e.latchOf(op, l)
	if err != nil {
		return err
	}
	if lt.init != term.Null {
		return usagef(op, "latch %s already has an initial value", e.label(l))
	}
	if err := e.definition(op, lt, t); err != nil {
		return err
	}
	lt.init = t
	return nil
}

// SetNext sets the transition function of a latch.
func (e *Engine) SetNext(l, t term.Term) error {
	const op = "set next"
	if err := e.mutable(op); err != nil {
		return err
	}
	lt, err := e.latchOf(op, l)
	if err != nil {
		return err
	}
	if lt.next != term.Null {
		return usagef(op, "latch %s already has a next state", e.label(l))
	}
	if err := e.definition(op, lt, t); err != nil {
		return err
	}
	lt.next = t
	return nil
}

// AddBad registers a bad state property and returns its index.
// Properties are numbered from 0 in registration order.
func (e *Engine) AddBad(t term.Term) (int, error) {
	const op = "add bad"
	if err := e.mutable(op); err != nil {
		return -1, err
	}
	if !e.terms.Valid(t) {
		return -1, usagef(op, "term %d is not defined", t)
	}
	if w := e.terms.Width(t); w != 1 {
		return -1, usagef(op, "property must have width 1, got %d", w)
	}
	e.bad = append(e.bad, t)
	return e.tracker.add(), nil
}

func (e *Engine) label(v term.Term) string {
	if name := e.terms.Name(v); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", v)
}

// validate checks that every variable used by a definition is registered
// and that every latch in the cone of influence of a property has a next
// state.
func (e *Engine) validate() error {
	const op = "search"
	roots := append([]term.Term(nil), e.bad...)
	for _, l := range e.latches {
		for _, t := range []term.Term{l.init, l.next} {
			if t != term.Null {
				roots = append(roots, t)
			}
		}
	}
	var unknown []string
	e.terms.Walk(func(t term.Term, n term.Node) {
		if n.Op != term.OpVar {
			return
		}
		if _, ok := e.vars[t]; !ok {
			unknown = append(unknown, e.label(t))
		}
	}, roots...)
	if len(unknown) > 0 {
		return usagef(op, "unregistered variables in definitions: %s", strings.Join(unknown, ", "))
	}

	var missing []term.Term
	seen := make(map[term.Term]bool)
	queue := append([]term.Term(nil), e.bad...)
	for len(queue) > 0 {
		vs := e.terms.Vars(queue...)
		queue = nil
		for _, v := range vs {
			if seen[v] {
				continue
			}
			seen[v] = true
			ref := e.vars[v]
			if !ref.latch {
				continue
			}
			l := e.latches[ref.index]
			if l.next == term.Null {
				missing = append(missing, v)
			} else {
				queue = append(queue, l.next)
			}
			if l.init != term.Null {
				queue = append(queue, l.init)
			}
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		names := make([]string, len(missing))
		for i, v := range missing {
			names[i] = e.label(v)
		}
		return usagef(op, "latches without next state in the cone of influence: %s", strings.Join(names, ", "))
	}
	return nil
}

func (e *Engine) freeze() error {
	if err := e.validate(); err != nil {
		return err
	}
	e.frozen = true
	e.u = newUnroller(e.terms, e.solver, e.traceGen)
	e.log.WithFields(logrus.Fields{
		"latches":    len(e.latches),
		"inputs":     len(e.inputs),
		"properties": len(e.bad),
	}).Debug("transition system frozen")
	return nil
}
