//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o satfakes/fake_solver.go . Solver

// Package sat is the incremental satisfiability backend used by the
// model checker.
package sat

import (
	"context"
	"errors"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

const (
	Satisfiable   = 1
	Unsatisfiable = -1
	Unknown       = 0
)

// ErrIncomplete is returned when a solve is cancelled before an answer
// is found.
var ErrIncomplete = errors.New("cancelled before a solution could be found")

// Solver is an incremental SAT solver. Clauses given to Add are
// permanent; assumptions given to Assume hold for the next Solve only.
type Solver interface {
	inter.Adder
	Assume(ms ...z.Lit)
	// Solve returns Satisfiable, Unsatisfiable or, together with a
	// non-nil error, Unknown.
	Solve(ctx context.Context) (int, error)
	// Value reads m in the model of the last satisfiable Solve.
	Value(m z.Lit) bool
	MaxVar() z.Var
}

type giniSolver struct {
	g    *gini.Gini
	poll time.Duration
}

var _ Solver = &giniSolver{}

// New returns a Solver backed by gini.
func New() Solver {
	return &giniSolver{g: gini.New(), poll: 10 * time.Millisecond}
}

func (s *giniSolver) Add(m z.Lit) {
	s.g.Add(m)
}

func (s *giniSolver) Assume(ms ...z.Lit) {
	s.g.Assume(ms...)
}

func (s *giniSolver) Solve(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, ErrIncomplete
	}
	if ctx.Done() == nil {
		return s.g.Solve(), nil
	}

	h := s.g.GoSolve()
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		if res, ok := h.Test(); ok {
			return res, nil
		}
		select {
		case <-ctx.Done():
			if res := h.Stop(); res != Unknown {
				return res, nil
			}
			return Unknown, ErrIncomplete
		case <-ticker.C:
		}
	}
}

// Value reports false for variables the solver has never seen; they do
// not occur in any clause and are unconstrained.
func (s *giniSolver) Value(m z.Lit) bool {
	if m.Var() > s.g.MaxVar() {
		return false
	}
	return s.g.Value(m)
}

func (s *giniSolver) MaxVar() z.Var {
	return s.g.MaxVar()
}
