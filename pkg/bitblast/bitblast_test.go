package bitblast

import (
	"fmt"
	"testing"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bvmc/bvmc/pkg/term"
)

const width = 3

func value(vs []bool, m z.Lit) bool {
	v := vs[m.Var()]
	if !m.IsPos() {
		v = !v
	}
	return v
}

func inputs(c *logic.C, n int) []z.Lit {
	v := make([]z.Lit, n)
	for i := range v {
		v[i] = c.Lit()
	}
	return v
}

func assign(vs []bool, v []z.Lit, x uint64) {
	for i, m := range v {
		vs[m.Var()] = x&(1<<uint(i)) != 0
	}
}

func read(vs []bool, v []z.Lit) uint64 {
	var x uint64
	for i, m := range v {
		if value(vs, m) {
			x |= 1 << uint(i)
		}
	}
	return x
}

func signed(x uint64, w int) int64 {
	if x&(1<<uint(w-1)) != 0 {
		return int64(x) - int64(1)<<uint(w)
	}
	return int64(x)
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func TestBlastBinary(t *testing.T) {
	mask := uint64(1)<<width - 1
	type tc struct {
		Name string
		Op   term.Op
		Out  int
		Want func(x, y uint64) uint64
	}
	for _, tt := range []tc{
		{Name: "and", Op: term.OpAnd, Out: width, Want: func(x, y uint64) uint64 { return x & y }},
		{Name: "or", Op: term.OpOr, Out: width, Want: func(x, y uint64) uint64 { return x | y }},
		{Name: "xor", Op: term.OpXor, Out: width, Want: func(x, y uint64) uint64 { return x ^ y }},
		{Name: "add", Op: term.OpAdd, Out: width, Want: func(x, y uint64) uint64 { return (x + y) & mask }},
		{Name: "sub", Op: term.OpSub, Out: width, Want: func(x, y uint64) uint64 { return (x - y) & mask }},
		{Name: "mul", Op: term.OpMul, Out: width, Want: func(x, y uint64) uint64 { return (x * y) & mask }},
		{Name: "eq", Op: term.OpEq, Out: 1, Want: func(x, y uint64) uint64 { return boolBit(x == y) }},
		{Name: "ult", Op: term.OpUlt, Out: 1, Want: func(x, y uint64) uint64 { return boolBit(x < y) }},
		{Name: "slt", Op: term.OpSlt, Out: 1, Want: func(x, y uint64) uint64 {
			return boolBit(signed(x, width) < signed(y, width))
		}},
		{Name: "sll", Op: term.OpSll, Out: width, Want: func(x, y uint64) uint64 { return (x << y) & mask }},
		{Name: "srl", Op: term.OpSrl, Out: width, Want: func(x, y uint64) uint64 { return x >> y }},
		{Name: "concat", Op: term.OpConcat, Out: 2 * width, Want: func(x, y uint64) uint64 { return x<<width | y }},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			c := logic.NewC()
			b := New(c, c.T)
			xs, ys := inputs(c, width), inputs(c, width)
			out, err := b.Blast(term.Node{Op: tt.Op, Width: tt.Out, Arity: 2}, xs, ys)
			require.NoError(t, err)
			require.Len(t, out, tt.Out)

			for x := uint64(0); x <= mask; x++ {
				for y := uint64(0); y <= mask; y++ {
					vs := make([]bool, c.Len())
					assign(vs, xs, x)
					assign(vs, ys, y)
					c.Eval(vs)
					assert.Equal(t, tt.Want(x, y), read(vs, out), fmt.Sprintf("%s(%d, %d)", tt.Name, x, y))
				}
			}
		})
	}
}

func TestBlastUnary(t *testing.T) {
	mask := uint64(1)<<width - 1
	type tc struct {
		Name string
		Node term.Node
		Want func(x uint64) uint64
	}
	for _, tt := range []tc{
		{Name: "not", Node: term.Node{Op: term.OpNot, Width: width, Arity: 1}, Want: func(x uint64) uint64 { return ^x & mask }},
		{Name: "redor", Node: term.Node{Op: term.OpRedor, Width: 1, Arity: 1}, Want: func(x uint64) uint64 { return boolBit(x != 0) }},
		{Name: "redand", Node: term.Node{Op: term.OpRedand, Width: 1, Arity: 1}, Want: func(x uint64) uint64 { return boolBit(x == mask) }},
		{Name: "redxor", Node: term.Node{Op: term.OpRedxor, Width: 1, Arity: 1}, Want: func(x uint64) uint64 {
			return (x ^ x>>1 ^ x>>2) & 1
		}},
		{Name: "slice", Node: term.Node{Op: term.OpSlice, Width: 2, Arity: 1, Params: [2]int{2, 1}}, Want: func(x uint64) uint64 { return x >> 1 }},
		{Name: "uext", Node: term.Node{Op: term.OpUext, Width: width + 2, Arity: 1, Params: [2]int{2}}, Want: func(x uint64) uint64 { return x }},
		{Name: "sext", Node: term.Node{Op: term.OpSext, Width: width + 2, Arity: 1, Params: [2]int{2}}, Want: func(x uint64) uint64 {
			return uint64(signed(x, width)) & (1<<(width+2) - 1)
		}},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			c := logic.NewC()
			b := New(c, c.T)
			xs := inputs(c, width)
			out, err := b.Blast(tt.Node, xs)
			require.NoError(t, err)

			for x := uint64(0); x <= mask; x++ {
				vs := make([]bool, c.Len())
				assign(vs, xs, x)
				c.Eval(vs)
				assert.Equal(t, tt.Want(x), read(vs, out), fmt.Sprintf("%s(%d)", tt.Name, x))
			}
		})
	}
}

func TestBlastIte(t *testing.T) {
	c := logic.NewC()
	b := New(c, c.T)
	cond, xs, ys := inputs(c, 1), inputs(c, width), inputs(c, width)
	out, err := b.Blast(term.Node{Op: term.OpIte, Width: width, Arity: 3}, cond, xs, ys)
	require.NoError(t, err)

	for _, sel := range []uint64{0, 1} {
		vs := make([]bool, c.Len())
		assign(vs, cond, sel)
		assign(vs, xs, 5)
		assign(vs, ys, 2)
		c.Eval(vs)
		want := uint64(2)
		if sel == 1 {
			want = 5
		}
		assert.Equal(t, want, read(vs, out))
	}
}

func TestBlastConst(t *testing.T) {
	c := logic.NewC()
	b := New(c, c.T)
	out, err := b.Blast(term.Node{Op: term.OpConst, Width: 4, Bits: "0110"})
	require.NoError(t, err)
	assert.Equal(t, []z.Lit{c.F, c.T, c.T, c.F}, out)
}

func TestBlastErrors(t *testing.T) {
	c := logic.NewC()
	b := New(c, c.T)
	_, err := b.Blast(term.Node{Op: term.OpVar, Width: 1})
	assert.Error(t, err)
	_, err = b.Blast(term.Node{Op: term.OpAdd, Width: 1, Arity: 2}, inputs(c, 1))
	assert.EqualError(t, err, "add: expected 2 operand vectors, got 1")
	_, err = b.Blast(term.Node{Op: term.OpInvalid, Width: 1})
	assert.EqualError(t, err, "cannot blast a invalid node")
}
