package bmc

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/bvmc/bvmc/pkg/bitblast"
	"github.com/bvmc/bvmc/pkg/sat"
	"github.com/bvmc/bvmc/pkg/term"
)

// frame holds the time-t instance of the transition system. vars maps
// latches and inputs to fresh literals; memo caches the translation of
// derived terms.
type frame struct {
	vars map[term.Term][]z.Lit
	memo map[term.Term][]z.Lit
}

// unroller translates terms into one circuit shared by all frames and
// feeds the circuit incrementally to the solver.
type unroller struct {
	terms  *term.Builder
	solver sat.Solver
	c      *logic.C
	b      *bitblast.Blaster
	marks  []int8
	frames []*frame
	keep   bool
	errs   inconsistentTranslation
}

func newUnroller(terms *term.Builder, solver sat.Solver, keep bool) *unroller {
	c := logic.NewC()
	return &unroller{
		terms:  terms,
		solver: solver,
		c:      c,
		b:      bitblast.New(c, c.T),
		keep:   keep,
	}
}

func (u *unroller) fresh(width int) []z.Lit {
	v := make([]z.Lit, width)
	for i := range v {
		v[i] = u.c.Lit()
	}
	return v
}

// at returns the instance of t at frame k, translating each distinct
// subterm once per frame.
func (u *unroller) at(t term.Term, k int) []z.Lit {
	f := u.frames[k]
	if v, ok := f.vars[t]; ok {
		return v
	}
	if v, ok := f.memo[t]; ok {
		return v
	}
	n := u.terms.Node(t)
	if n.Op == term.OpVar {
		u.errs = append(u.errs, fmt.Errorf("variable %d has no instance at frame %d", t, k))
		return u.b.Const(strings.Repeat("0", n.Width))
	}
	args := make([][]z.Lit, n.Arity)
	for i, a := range n.Operands() {
		args[i] = u.at(a, k)
	}
	v, err := u.b.Blast(n, args...)
	if err != nil {
		u.errs = append(u.errs, err)
		v = u.b.Const(strings.Repeat("0", n.Width))
	}
	f.memo[t] = v
	return v
}

// extend creates the next frame and asserts its transition constraints:
// initial values at frame 0, next state equalities afterwards.
func (u *unroller) extend(latches []*latch, inputs []*input) error {
	k := len(u.frames)
	f := &frame{
		vars: make(map[term.Term][]z.Lit, len(latches)+len(inputs)),
		memo: make(map[term.Term][]z.Lit),
	}
	for _, l := range latches {
		f.vars[l.v] = u.fresh(l.width)
	}
	for _, in := range inputs {
		f.vars[in.v] = u.fresh(in.width)
	}
	u.frames = append(u.frames, f)

	var roots []z.Lit
	for _, l := range latches {
		switch {
		case k == 0 && l.init != term.Null:
			roots = append(roots, u.b.Equal(f.vars[l.v], u.at(l.init, 0)))
		case k > 0 && l.next != term.Null:
			roots = append(roots, u.b.Equal(f.vars[l.v], u.at(l.next, k-1)))
		}
	}
	if err := u.errs.err(); err != nil {
		return err
	}
	u.assert(roots...)
	if !u.keep && k > 0 {
		u.frames[k-1].memo = make(map[term.Term][]z.Lit)
	}
	return nil
}

// flush adds the clauses defining roots that the solver has not seen.
func (u *unroller) flush(roots ...z.Lit) {
	u.marks, _ = u.c.CnfSince(u.solver, u.marks, roots...)
}

// assert makes every root a permanent unit clause.
func (u *unroller) assert(roots ...z.Lit) {
	u.flush(roots...)
	for _, m := range roots {
		u.solver.Add(m)
		u.solver.Add(z.LitNull)
	}
}
