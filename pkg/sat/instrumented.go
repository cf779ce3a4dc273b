package sat

import (
	"context"
	"time"
)

// InstrumentedSolver reports the outcome and duration of every solve.
type InstrumentedSolver struct {
	Solver
	emit func(outcome int, d time.Duration)
}

var _ Solver = &InstrumentedSolver{}

func NewInstrumented(solver Solver, emit func(outcome int, d time.Duration)) *InstrumentedSolver {
	return &InstrumentedSolver{
		Solver: solver,
		emit:   emit,
	}
}

func (is *InstrumentedSolver) Solve(ctx context.Context) (int, error) {
	start := time.Now()
	res, err := is.Solver.Solve(ctx)
	if err != nil {
		res = Unknown
	}
	is.emit(res, time.Since(start))
	return res, err
}
