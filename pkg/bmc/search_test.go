package bmc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/bvmc/bvmc/pkg/sat"
	"github.com/bvmc/bvmc/pkg/sat/satfakes"
)

func TestBackendFailure(t *testing.T) {
	for _, tt := range []struct {
		Name    string
		Outcome int
		Err     error
		Is      error
	}{
		{Name: "error", Outcome: sat.Unknown, Err: errors.New("backend exploded")},
		{Name: "unknown", Outcome: sat.Unknown, Is: sat.ErrIncomplete},
		{Name: "empty model", Outcome: sat.Satisfiable},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			fake := &satfakes.FakeSolver{}
			fake.SolveReturns(tt.Outcome, tt.Err)
			e := newEngine(t, WithSolver(fake))
			toggle(t, e)

			k, err := e.Search(context.Background(), 0, 3)
			require.Error(t, err)
			assert.Equal(t, NotFound, k)
			var bf *BackendFailure
			require.True(t, errors.As(err, &bf))
			assert.Equal(t, 0, bf.Bound)
			if tt.Err != nil {
				assert.ErrorIs(t, err, tt.Err)
			}
			if tt.Is != nil {
				assert.ErrorIs(t, err, tt.Is)
			}
			assert.False(t, errors.Is(err, ErrUsage))
			assert.Equal(t, 1, fake.SolveCallCount())
			assert.Equal(t, 1, fake.AssumeCallCount())

			r, err := e.ReachedAt(0)
			require.NoError(t, err)
			assert.Equal(t, NotReached, r)
		})
	}
}

func TestCancelledSearchResumes(t *testing.T) {
	e := newEngine(t)
	toggle(t, e)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Search(ctx, 0, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, sat.ErrIncomplete)

	// The interrupted bound is searched again.
	k, err := e.Search(context.Background(), 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, k)
}

func TestLoggingTracer(t *testing.T) {
	var buf bytes.Buffer
	e := newEngine(t, WithTracer(LoggingTracer{Writer: &buf}))
	toggle(t, e)

	_, err := e.Search(context.Background(), 0, 1)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"---",
		"Bound: 0",
		"Candidates:",
		"- b0",
		"Outcome: unsat",
		"---",
		"Bound: 1",
		"Candidates:",
		"- b0",
		"Outcome: sat",
		"Reached:",
		"- b0",
		"",
	}, "\n"), buf.String())
}

func TestSearchSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	e := newEngine(t)
	toggle(t, e)
	_, err := e.Search(context.Background(), 0, 1)
	require.NoError(t, err)

	var names []string
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"bmc.Query", "bmc.Query", "bmc.Search"}, names)
}

func TestWriteAiger(t *testing.T) {
	for _, tt := range []struct {
		Name   string
		Build  func(t *testing.T, e *Engine)
		Header []string
	}{
		{
			Name:   "toggle",
			Build:  func(t *testing.T, e *Engine) { toggle(t, e) },
			Header: []string{"0", "1", "0"},
		},
		{
			Name:   "counter",
			Build:  func(t *testing.T, e *Engine) { counter(t, e, true) },
			Header: []string{"2", "2", "0"},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			e := newEngine(t)
			tt.Build(t, e)

			var buf bytes.Buffer
			require.NoError(t, e.WriteAiger(&buf, false))
			header := strings.Fields(strings.SplitN(buf.String(), "\n", 2)[0])
			require.Len(t, header, 10)
			assert.Equal(t, "aag", header[0])
			assert.Equal(t, tt.Header, header[2:5], "inputs, latches, outputs")
			assert.Equal(t, "1", header[6], "bad states")
			assert.Contains(t, buf.String(), "b0 b0\n")

			buf.Reset()
			require.NoError(t, e.WriteAiger(&buf, true))
			assert.True(t, strings.HasPrefix(buf.String(), "aig "))
		})
	}
}

func TestWriteAigerRequiresConstantInit(t *testing.T) {
	e := newEngine(t)
	b := e.Terms()
	l, err := e.AddLatch(2, "l")
	require.NoError(t, err)
	require.NoError(t, e.SetInit(l, b.Add(b.One(2), b.One(2))))
	require.NoError(t, e.SetNext(l, l))
	_, err = e.AddBad(b.Redand(l))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = e.WriteAiger(&buf, false)
	assert.ErrorIs(t, err, ErrUsage)
	assert.EqualError(t, err, "write aiger: latch l has a non-constant initial value")
}
