package bmc

import (
	"fmt"
	"io"

	"github.com/bvmc/bvmc/pkg/sat"
)

// QueryPosition describes one satisfiability query of a search.
type QueryPosition interface {
	Bound() int
	// Candidates are the properties assumed by the query.
	Candidates() []int
	Outcome() int
	// Reached are the candidates satisfied by the model, if any.
	Reached() []int
}

type Tracer interface {
	Trace(p QueryPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ QueryPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p QueryPosition) {
	fmt.Fprintf(t.Writer, "---\nBound: %d\nCandidates:\n", p.Bound())
	for _, i := range p.Candidates() {
		fmt.Fprintf(t.Writer, "- b%d\n", i)
	}
	fmt.Fprintf(t.Writer, "Outcome: %s\n", outcomeName(p.Outcome()))
	if len(p.Reached()) > 0 {
		fmt.Fprintf(t.Writer, "Reached:\n")
		for _, i := range p.Reached() {
			fmt.Fprintf(t.Writer, "- b%d\n", i)
		}
	}
}

type position struct {
	bound      int
	candidates []int
	outcome    int
	reached    []int
}

func (p position) Bound() int {
	return p.bound
}

func (p position) Candidates() []int {
	return p.candidates
}

func (p position) Outcome() int {
	return p.outcome
}

func (p position) Reached() []int {
	return p.reached
}

func outcomeName(res int) string {
	switch res {
	case sat.Satisfiable:
		return "sat"
	case sat.Unsatisfiable:
		return "unsat"
	}
	return "unknown"
}
