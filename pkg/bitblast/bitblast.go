// Package bitblast translates bit-vector term nodes into and-inverter
// gates. Vectors are slices of literals, least significant bit first.
package bitblast

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/z"

	"github.com/bvmc/bvmc/pkg/term"
)

// Gates constructs boolean gates over literals. *logic.C and *logic.S
// both satisfy it.
type Gates interface {
	And(a, b z.Lit) z.Lit
	Ands(ms ...z.Lit) z.Lit
	Or(a, b z.Lit) z.Lit
	Ors(ms ...z.Lit) z.Lit
	Xor(a, b z.Lit) z.Lit
	Choice(i, t, e z.Lit) z.Lit
}

// Blaster builds the gate-level form of term nodes.
type Blaster struct {
	g Gates
	t z.Lit
}

// New returns a Blaster over g, where t is g's constant true literal.
func New(g Gates, t z.Lit) *Blaster {
	return &Blaster{g: g, t: t}
}

func (b *Blaster) True() z.Lit {
	return b.t
}

func (b *Blaster) False() z.Lit {
	return b.t.Not()
}

// Const returns the constant vector for bits, most significant first.
func (b *Blaster) Const(bits string) []z.Lit {
	w := len(bits)
	v := make([]z.Lit, w)
	for i := range v {
		if bits[w-1-i] == '1' {
			v[i] = b.True()
		} else {
			v[i] = b.False()
		}
	}
	return v
}

// Blast returns the vector of n given the vectors of its operands.
// Variables have no gate-level definition; callers supply their literals.
func (b *Blaster) Blast(n term.Node, args ...[]z.Lit) ([]z.Lit, error) {
	if n.Op == term.OpConst {
		return b.Const(n.Bits), nil
	}
	if n.Op == term.OpVar {
		return nil, fmt.Errorf("variables cannot be blasted")
	}
	if len(args) != n.Arity {
		return nil, fmt.Errorf("%s: expected %d operand vectors, got %d", n.Op, n.Arity, len(args))
	}

	var v []z.Lit
	switch n.Op {
	case term.OpNot:
		v = b.not(args[0])
	case term.OpAnd:
		v = b.zip(args[0], args[1], b.g.And)
	case term.OpOr:
		v = b.zip(args[0], args[1], b.g.Or)
	case term.OpXor:
		v = b.zip(args[0], args[1], b.g.Xor)
	case term.OpAdd:
		v = b.add(args[0], args[1], b.False())
	case term.OpSub:
		v = b.add(args[0], b.not(args[1]), b.True())
	case term.OpMul:
		v = b.mul(args[0], args[1])
	case term.OpEq:
		v = []z.Lit{b.Equal(args[0], args[1])}
	case term.OpUlt:
		v = []z.Lit{b.ult(args[0], args[1])}
	case term.OpSlt:
		v = []z.Lit{b.slt(args[0], args[1])}
	case term.OpIte:
		c := args[0][0]
		v = b.zip(args[1], args[2], func(t, e z.Lit) z.Lit {
			return b.g.Choice(c, t, e)
		})
	case term.OpConcat:
		v = make([]z.Lit, 0, n.Width)
		v = append(v, args[1]...)
		v = append(v, args[0]...)
	case term.OpSlice:
		hi, lo := n.Params[0], n.Params[1]
		v = append([]z.Lit(nil), args[0][lo:hi+1]...)
	case term.OpUext:
		v = b.extend(args[0], n.Params[0], b.False())
	case term.OpSext:
		a := args[0]
		v = b.extend(a, n.Params[0], a[len(a)-1])
	case term.OpRedor:
		v = []z.Lit{b.g.Ors(args[0]...)}
	case term.OpRedand:
		v = []z.Lit{b.g.Ands(args[0]...)}
	case term.OpRedxor:
		r := b.False()
		for _, m := range args[0] {
			r = b.g.Xor(r, m)
		}
		v = []z.Lit{r}
	case term.OpSll:
		v = b.shift(args[0], args[1], true)
	case term.OpSrl:
		v = b.shift(args[0], args[1], false)
	default:
		return nil, fmt.Errorf("cannot blast a %s node", n.Op)
	}
	if len(v) != n.Width {
		return nil, fmt.Errorf("%s: produced %d bits, node has width %d", n.Op, len(v), n.Width)
	}
	return v, nil
}

// Equal returns a literal that holds iff x and y agree on every bit.
func (b *Blaster) Equal(x, y []z.Lit) z.Lit {
	eqs := make([]z.Lit, len(x))
	for i := range x {
		eqs[i] = b.g.Xor(x[i], y[i]).Not()
	}
	return b.g.Ands(eqs...)
}

func (b *Blaster) not(a []z.Lit) []z.Lit {
	v := make([]z.Lit, len(a))
	for i, m := range a {
		v[i] = m.Not()
	}
	return v
}

func (b *Blaster) zip(x, y []z.Lit, f func(a, b z.Lit) z.Lit) []z.Lit {
	v := make([]z.Lit, len(x))
	for i := range x {
		v[i] = f(x[i], y[i])
	}
	return v
}

func (b *Blaster) add(x, y []z.Lit, carry z.Lit) []z.Lit {
	v := make([]z.Lit, len(x))
	for i := range x {
		p := b.g.Xor(x[i], y[i])
		v[i] = b.g.Xor(p, carry)
		carry = b.g.Or(b.g.And(x[i], y[i]), b.g.And(p, carry))
	}
	return v
}

func (b *Blaster) mul(x, y []z.Lit) []z.Lit {
	w := len(x)
	acc := b.Const(strings.Repeat("0", w))
	for i := 0; i < w; i++ {
		pp := make([]z.Lit, w)
		for j := range pp {
			if j < i {
				pp[j] = b.False()
				continue
			}
			pp[j] = b.g.And(x[j-i], y[i])
		}
		acc = b.add(acc, pp, b.False())
	}
	return acc
}

// ult walks from the least significant bit up; the highest differing
// bit decides.
func (b *Blaster) ult(x, y []z.Lit) z.Lit {
	lt := b.False()
	for i := range x {
		lt = b.g.Choice(b.g.Xor(x[i], y[i]), y[i], lt)
	}
	return lt
}

func (b *Blaster) slt(x, y []z.Lit) z.Lit {
	w := len(x)
	fx := append([]z.Lit(nil), x...)
	fy := append([]z.Lit(nil), y...)
	fx[w-1] = fx[w-1].Not()
	fy[w-1] = fy[w-1].Not()
	return b.ult(fx, fy)
}

func (b *Blaster) extend(a []z.Lit, n int, fill z.Lit) []z.Lit {
	v := make([]z.Lit, 0, len(a)+n)
	v = append(v, a...)
	for i := 0; i < n; i++ {
		v = append(v, fill)
	}
	return v
}

// shift is a barrel shifter. Stages whose distance reaches the width
// clear the result.
func (b *Blaster) shift(x, amt []z.Lit, left bool) []z.Lit {
	w := len(x)
	r := append([]z.Lit(nil), x...)
	var overflow []z.Lit
	for j, s := range amt {
		if j >= 31 || 1<<uint(j) >= w {
			overflow = append(overflow, s)
			continue
		}
		d := 1 << uint(j)
		next := make([]z.Lit, w)
		for i := range next {
			src := i + d
			if left {
				src = i - d
			}
			shifted := b.False()
			if src >= 0 && src < w {
				shifted = r[src]
			}
			next[i] = b.g.Choice(s, shifted, r[i])
		}
		r = next
	}
	keep := b.g.Ors(overflow...).Not()
	for i := range r {
		r[i] = b.g.And(keep, r[i])
	}
	return r
}
