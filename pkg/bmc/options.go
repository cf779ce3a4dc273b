package bmc

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/bvmc/bvmc/pkg/metrics"
	"github.com/bvmc/bvmc/pkg/sat"
	"github.com/bvmc/bvmc/pkg/term"
)

// Option configures an Engine built by New.
type Option func(e *Engine) error

// WithLogger sets the logger. Without it the engine logs nothing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) error {
		e.log = log
		return nil
	}
}

// WithSolver replaces the default gini backend.
func WithSolver(s sat.Solver) Option {
	return func(e *Engine) error {
		e.solver = s
		return nil
	}
}

// WithBuilder makes the engine register variables in, and accept terms
// from, an existing builder.
func WithBuilder(b *term.Builder) Option {
	return func(e *Engine) error {
		e.terms = b
		return nil
	}
}

// WithTracer receives every satisfiability query issued by Search.
func WithTracer(t Tracer) Option {
	return func(e *Engine) error {
		e.tracer = t
		return nil
	}
}

// WithStopAtFirst sets the initial stop-at-first mode.
func WithStopAtFirst(stop bool) Option {
	return func(e *Engine) error {
		e.stopAtFirst = stop
		return nil
	}
}

// WithTraceGen enables trace generation from the first frame.
func WithTraceGen() Option {
	return func(e *Engine) error {
		e.traceGen = true
		return nil
	}
}

// WithReachedHandler installs h as the reached handler.
func WithReachedHandler(h ReachedHandler) Option {
	return func(e *Engine) error {
		e.tracker.handler = h
		return nil
	}
}

var defaults = []Option{
	func(e *Engine) error {
		if e.log == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			e.log = l
		}
		return nil
	},
	func(e *Engine) error {
		if e.solver == nil {
			e.solver = sat.NewInstrumented(sat.New(), metrics.EmitQuery)
		}
		return nil
	},
	func(e *Engine) error {
		if e.terms == nil {
			e.terms = term.NewBuilder()
		}
		return nil
	},
	func(e *Engine) error {
		if e.tracer == nil {
			e.tracer = DefaultTracer{}
		}
		return nil
	},
}
