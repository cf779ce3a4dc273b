package bmc

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterexampleValues(t *testing.T) {
	e := newEngine(t)
	c := counter(t, e, false)
	k, err := e.Search(context.Background(), 0, 5)
	require.NoError(t, err)
	require.Equal(t, 3, k)
	assert.Equal(t, 3, e.ModelBound())

	for time, want := range []string{"00", "01", "10", "11"} {
		a, err := e.Assignment(c, time)
		require.NoError(t, err)
		assert.Equal(t, want, a.Bits, "counter@%d", time)
		assert.Equal(t, "counter", a.Name)
		require.NoError(t, e.ReleaseAssignment(a))
	}
	for time := 0; time < 3; time++ {
		a, err := e.AssignmentByName("enable", time)
		require.NoError(t, err)
		assert.Equal(t, "1", a.Bits, "enable@%d", time)
		require.NoError(t, e.ReleaseAssignment(a))
	}
}

func TestAssignmentErrors(t *testing.T) {
	e := newEngine(t)
	c := counter(t, e, false)
	ctx := context.Background()

	_, err := e.Assignment(c, 0)
	assert.ErrorIs(t, err, ErrUsage, "no model before the first search")

	k, err := e.Search(ctx, 0, 1)
	require.NoError(t, err)
	require.Equal(t, NotFound, k)
	_, err = e.Assignment(c, 0)
	assert.ErrorIs(t, err, ErrUsage, "no model after an unsatisfiable search")

	_, err = e.Search(ctx, 0, 5)
	require.NoError(t, err)

	for _, tt := range []struct {
		Name string
		Call func() error
	}{
		{Name: "negative time", Call: func() error { _, err := e.Assignment(c, -1); return err }},
		{Name: "time past the bound", Call: func() error { _, err := e.Assignment(c, 4); return err }},
		{Name: "unknown name", Call: func() error { _, err := e.AssignmentByName("nope", 0); return err }},
		{Name: "internal term without trace generation", Call: func() error {
			_, err := e.Assignment(e.Terms().Inc(c), 0)
			return err
		}},
		{Name: "nil assignment", Call: func() error { return e.ReleaseAssignment(nil) }},
		{Name: "foreign assignment", Call: func() error {
			return e.ReleaseAssignment(&Assignment{Bits: "0"})
		}},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.ErrorIs(t, tt.Call(), ErrUsage)
		})
	}

	a, err := e.Assignment(c, 0)
	require.NoError(t, err)
	require.NoError(t, e.ReleaseAssignment(a))
	assert.ErrorIs(t, e.ReleaseAssignment(a), ErrUsage)
}

func TestModelClearedByNewSearch(t *testing.T) {
	e := newEngine(t)
	c := multi(t, e)
	ctx := context.Background()

	_, err := e.Search(ctx, 0, 10)
	require.NoError(t, err)
	_, err = e.Assignment(c, 0)
	require.NoError(t, err)

	// Bound 1 is new; the old model is dropped and replaced.
	k, err := e.Search(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 1, k)
	a, err := e.Assignment(c, 1)
	require.NoError(t, err)
	assert.Equal(t, "01", a.Bits)
}

func TestCloseReportsLeakedAssignments(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	e, err := New(WithLogger(logger))
	require.NoError(t, err)
	toggle(t, e)

	_, err = e.Search(context.Background(), 0, 1)
	require.NoError(t, err)
	_, err = e.AssignmentByName("toggle", 1)
	require.NoError(t, err)

	require.NoError(t, e.Close())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 1, hook.LastEntry().Data["assignments"])

	assert.ErrorIs(t, e.Close(), ErrUsage)
	_, err = e.Search(context.Background(), 0, 1)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestTraceGen(t *testing.T) {
	e := newEngine(t, WithTraceGen())
	c := counter(t, e, false)
	b := e.Terms()

	_, err := e.Search(context.Background(), 0, 5)
	require.NoError(t, err)

	inc, err := e.Assignment(b.Inc(c), 2)
	require.NoError(t, err)
	assert.Equal(t, "11", inc.Bits)

	var buf bytes.Buffer
	require.NoError(t, e.Dump(&buf))
	out := buf.String()
	for k := 0; k < e.Frames(); k++ {
		assert.Contains(t, out, "; frame "+string(rune('0'+k))+"\n")
	}
	assert.Contains(t, out, "latch counter 2 :")
	assert.Contains(t, out, "input enable 1 :")
	assert.Contains(t, out, b.Format(b.Inc(c))+" :")

	var again bytes.Buffer
	require.NoError(t, e.Dump(&again))
	assert.Equal(t, out, again.String())
}

func TestTraceGenRules(t *testing.T) {
	e := newEngine(t)
	toggle(t, e)

	var buf bytes.Buffer
	assert.ErrorIs(t, e.Dump(&buf), ErrUsage)

	require.NoError(t, e.EnableTraceGen())
	_, err := e.Search(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, e.EnableTraceGen(), ErrUsage)
	require.NoError(t, e.Dump(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "; frame 0\n"))
}

func TestWriteWitness(t *testing.T) {
	e := newEngine(t)
	counter(t, e, false)

	var buf bytes.Buffer
	assert.ErrorIs(t, WriteWitness(&buf, e), ErrUsage)

	_, err := e.Search(context.Background(), 0, 5)
	require.NoError(t, err)
	require.NoError(t, WriteWitness(&buf, e))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, []string{
		"sat",
		"b0",
		"#0",
		"0 00 counter@0",
		"@0",
		"0 1 enable@0",
		"@1",
		"0 1 enable@1",
		"@2",
		"0 1 enable@2",
		"@3",
	}, lines[:11])
	assert.Regexp(t, `^0 [01] enable@3$`, lines[11])
	assert.Equal(t, ".", lines[12])
	assert.Empty(t, e.outstanding)
}

func TestFormatBits(t *testing.T) {
	for _, tt := range []struct {
		Bits string
		Base Base
		Want string
	}{
		{Bits: "0110", Base: Bin, Want: "0110"},
		{Bits: "0110", Base: Hex, Want: "6"},
		{Bits: "11111", Base: Hex, Want: "1f"},
		{Bits: "00000000", Base: Hex, Want: "00"},
		{Bits: "11111", Base: Dec, Want: "31"},
		{Bits: "1" + strings.Repeat("0", 64), Base: Dec, Want: "18446744073709551616"},
	} {
		t.Run(tt.Base.String()+"/"+tt.Bits, func(t *testing.T) {
			assert.Equal(t, tt.Want, FormatBits(tt.Bits, tt.Base))
		})
	}

	b, err := ParseBase("HEX")
	require.NoError(t, err)
	assert.Equal(t, Hex, b)
	_, err = ParseBase("oct")
	assert.Error(t, err)
}
