package bmc

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-air/gini/z"

	"github.com/bvmc/bvmc/pkg/term"
)

// Dump writes every unrolled frame: the literals of each latch and input
// followed by each translated term in ascending term order. Literals are
// printed least significant bit first in DIMACS numbering. Dump requires
// trace generation.
func (e *Engine) Dump(w io.Writer) error {
	const op = "dump"
	if err := e.usable(op); err != nil {
		return err
	}
	if !e.traceGen {
		return usagef(op, "trace generation is not enabled")
	}
	bw := bufio.NewWriter(w)
	for k := 0; k < e.Frames(); k++ {
		f := e.u.frames[k]
		fmt.Fprintf(bw, "; frame %d\n", k)
		for _, l := range e.latches {
			fmt.Fprintf(bw, "latch %s %d :%s\n", e.label(l.v), l.width, lits(f.vars[l.v]))
		}
		for _, in := range e.inputs {
			fmt.Fprintf(bw, "input %s %d :%s\n", e.label(in.v), in.width, lits(f.vars[in.v]))
		}
		ts := make([]term.Term, 0, len(f.memo))
		for t := range f.memo {
			ts = append(ts, t)
		}
		sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
		for _, t := range ts {
			fmt.Fprintf(bw, "%s :%s\n", e.terms.Format(t), lits(f.memo[t]))
		}
	}
	return bw.Flush()
}

func lits(v []z.Lit) string {
	var sb strings.Builder
	for _, m := range v {
		fmt.Fprintf(&sb, " %d", m.Dimacs())
	}
	return sb.String()
}
