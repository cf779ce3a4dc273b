package bmc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bvmc/bvmc/pkg/term"
)

// WriteWitness writes the current counterexample in the BTOR2 witness
// format: the properties satisfied by it, the latch values at frame 0
// and the input values of every frame up to the model's bound. Values
// are written in binary as the format requires.
func WriteWitness(w io.Writer, e *Engine) error {
	const op = "write witness"
	if err := e.usable(op); err != nil {
		return err
	}
	if e.model == nil {
		return usagef(op, "no satisfying model is available")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "sat")
	props := make([]string, len(e.model.reached))
	for j, i := range e.model.reached {
		props[j] = fmt.Sprintf("b%d", i)
	}
	fmt.Fprintln(bw, strings.Join(props, " "))

	section := func(vars []term.Term, time int) error {
		for i, v := range vars {
			a, err := e.Assignment(v, time)
			if err != nil {
				return err
			}
			fmt.Fprintf(bw, "%d %s %s@%d\n", i, a.Bits, e.label(v), time)
			if err := e.ReleaseAssignment(a); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Fprintln(bw, "#0")
	if err := section(e.Latches(), 0); err != nil {
		return err
	}
	for k := 0; k <= e.model.bound; k++ {
		fmt.Fprintf(bw, "@%d\n", k)
		if err := section(e.Inputs(), k); err != nil {
			return err
		}
	}
	fmt.Fprintln(bw, ".")
	return bw.Flush()
}
