package bmc

import (
	"fmt"
	"io"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/logic/aiger"
	"github.com/go-air/gini/z"

	"github.com/bvmc/bvmc/pkg/bitblast"
	"github.com/bvmc/bvmc/pkg/term"
)

// WriteAiger writes the transition system as an AIGER 1.9 circuit with
// one latch per bit and one bad state output per property. Initial
// values must be constants; latches without one are uninitialized.
func (e *Engine) WriteAiger(w io.Writer, binary bool) error {
	const op = "write aiger"
	if err := e.usable(op); err != nil {
		return err
	}
	if err := e.validate(); err != nil {
		return usagef(op, "%v", err)
	}

	s := logic.NewS()
	b := bitblast.New(s, s.T)
	vecs := make(map[term.Term][]z.Lit)

	for _, in := range e.inputs {
		v := make([]z.Lit, in.width)
		for i := range v {
			v[i] = s.Lit()
		}
		vecs[in.v] = v
	}
	for _, l := range e.latches {
		inits := make([]z.Lit, l.width)
		for i := range inits {
			inits[i] = z.LitNull
		}
		if l.init != term.Null {
			n := e.terms.Node(l.init)
			if n.Op != term.OpConst {
				return usagef(op, "latch %s has a non-constant initial value", e.label(l.v))
			}
			copy(inits, b.Const(n.Bits))
		}
		v := make([]z.Lit, l.width)
		for i := range v {
			v[i] = s.Latch(inits[i])
		}
		vecs[l.v] = v
	}

	var errs inconsistentTranslation
	var blast func(t term.Term) []z.Lit
	blast = func(t term.Term) []z.Lit {
		if v, ok := vecs[t]; ok {
			return v
		}
		n := e.terms.Node(t)
		args := make([][]z.Lit, n.Arity)
		for i, a := range n.Operands() {
			args[i] = blast(a)
		}
		v, err := b.Blast(n, args...)
		if err != nil {
			errs = append(errs, err)
			v = make([]z.Lit, n.Width)
			for i := range v {
				v[i] = s.F
			}
		}
		vecs[t] = v
		return v
	}

	for _, l := range e.latches {
		if l.next == term.Null {
			continue
		}
		nxt := blast(l.next)
		for i, m := range vecs[l.v] {
			s.SetNext(m, nxt[i])
		}
	}
	bad := make([]z.Lit, len(e.bad))
	for i, t := range e.bad {
		bad[i] = blast(t)[0]
	}
	if err := errs.err(); err != nil {
		return err
	}

	a := aiger.MakeFor(s)
	a.Bad = bad
	ii := 0
	for _, in := range e.inputs {
		for j := 0; j < in.width; j++ {
			if err := a.NameInput(ii, bitName(e.label(in.v), in.width, j)); err != nil {
				return err
			}
			ii++
		}
	}
	li := 0
	for _, l := range e.latches {
		for j := 0; j < l.width; j++ {
			if err := a.NameLatch(li, bitName(e.label(l.v), l.width, j)); err != nil {
				return err
			}
			li++
		}
	}
	for i := range bad {
		if err := a.NameBad(i, fmt.Sprintf("b%d", i)); err != nil {
			return err
		}
	}
	if binary {
		return a.WriteBinary(w)
	}
	return a.WriteAscii(w)
}

func bitName(name string, width, bit int) string {
	if width == 1 {
		return name
	}
	return fmt.Sprintf("%s[%d]", name, bit)
}
