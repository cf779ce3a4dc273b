package term

import (
	"fmt"
	"strings"
)

// The helpers below panic on ill-typed operands. Callers handling
// untrusted input, such as parsers, should use Make instead.

// Zero returns the all-zero constant of the given width.
func (b *Builder) Zero(width int) Term {
	return b.must(b.Const(strings.Repeat("0", width)))
}

// Ones returns the all-one constant of the given width.
func (b *Builder) Ones(width int) Term {
	return b.must(b.Const(strings.Repeat("1", width)))
}

// One returns the constant 1 of the given width.
func (b *Builder) One(width int) Term {
	return b.Uint(width, 1)
}

// True returns the 1-bit constant 1.
func (b *Builder) True() Term {
	return b.One(1)
}

// False returns the 1-bit constant 0.
func (b *Builder) False() Term {
	return b.Zero(1)
}

// Uint returns v truncated to width bits.
func (b *Builder) Uint(width int, v uint64) Term {
	if width <= 0 {
		panic(fmt.Sprintf("constant width must be positive, got %d", width))
	}
	bits := make([]byte, width)
	for i := range bits {
		bits[width-1-i] = '0'
		if i < 64 && v&(1<<uint(i)) != 0 {
			bits[width-1-i] = '1'
		}
	}
	return b.must(b.Const(string(bits)))
}

func (b *Builder) Not(a Term) Term {
	return b.must(b.Make(OpNot, []Term{a}))
}

func (b *Builder) And(x, y Term) Term {
	return b.must(b.Make(OpAnd, []Term{x, y}))
}

func (b *Builder) Or(x, y Term) Term {
	return b.must(b.Make(OpOr, []Term{x, y}))
}

func (b *Builder) Xor(x, y Term) Term {
	return b.must(b.Make(OpXor, []Term{x, y}))
}

func (b *Builder) Nand(x, y Term) Term {
	return b.Not(b.And(x, y))
}

func (b *Builder) Nor(x, y Term) Term {
	return b.Not(b.Or(x, y))
}

func (b *Builder) Xnor(x, y Term) Term {
	return b.Not(b.Xor(x, y))
}

// Implies requires 1-bit operands.
func (b *Builder) Implies(x, y Term) Term {
	if b.Width(x) != 1 || b.Width(y) != 1 {
		panic("implies: operands must have width 1")
	}
	return b.Or(b.Not(x), y)
}

// Iff requires 1-bit operands.
func (b *Builder) Iff(x, y Term) Term {
	if b.Width(x) != 1 || b.Width(y) != 1 {
		panic("iff: operands must have width 1")
	}
	return b.Eq(x, y)
}

func (b *Builder) Neg(a Term) Term {
	return b.Sub(b.Zero(b.Width(a)), a)
}

func (b *Builder) Add(x, y Term) Term {
	return b.must(b.Make(OpAdd, []Term{x, y}))
}

func (b *Builder) Sub(x, y Term) Term {
	return b.must(b.Make(OpSub, []Term{x, y}))
}

func (b *Builder) Mul(x, y Term) Term {
	return b.must(b.Make(OpMul, []Term{x, y}))
}

func (b *Builder) Inc(a Term) Term {
	return b.Add(a, b.One(b.Width(a)))
}

func (b *Builder) Dec(a Term) Term {
	return b.Sub(a, b.One(b.Width(a)))
}

func (b *Builder) Eq(x, y Term) Term {
	return b.must(b.Make(OpEq, []Term{x, y}))
}

func (b *Builder) Ne(x, y Term) Term {
	return b.Not(b.Eq(x, y))
}

func (b *Builder) Ult(x, y Term) Term {
	return b.must(b.Make(OpUlt, []Term{x, y}))
}

func (b *Builder) Ulte(x, y Term) Term {
	return b.Not(b.Ult(y, x))
}

func (b *Builder) Ugt(x, y Term) Term {
	return b.Ult(y, x)
}

func (b *Builder) Ugte(x, y Term) Term {
	return b.Not(b.Ult(x, y))
}

func (b *Builder) Slt(x, y Term) Term {
	return b.must(b.Make(OpSlt, []Term{x, y}))
}

func (b *Builder) Slte(x, y Term) Term {
	return b.Not(b.Slt(y, x))
}

func (b *Builder) Sgt(x, y Term) Term {
	return b.Slt(y, x)
}

func (b *Builder) Sgte(x, y Term) Term {
	return b.Not(b.Slt(x, y))
}

// Ite selects then when cond is 1 and els otherwise.
func (b *Builder) Ite(cond, then, els Term) Term {
	return b.must(b.Make(OpIte, []Term{cond, then, els}))
}

// Concat places hi above lo.
func (b *Builder) Concat(hi, lo Term) Term {
	return b.must(b.Make(OpConcat, []Term{hi, lo}))
}

// Slice extracts bits upper down to lower, inclusive.
func (b *Builder) Slice(a Term, upper, lower int) Term {
	return b.must(b.Make(OpSlice, []Term{a}, upper, lower))
}

func (b *Builder) Uext(a Term, n int) Term {
	return b.must(b.Make(OpUext, []Term{a}, n))
}

func (b *Builder) Sext(a Term, n int) Term {
	return b.must(b.Make(OpSext, []Term{a}, n))
}

func (b *Builder) Redor(a Term) Term {
	return b.must(b.Make(OpRedor, []Term{a}))
}

func (b *Builder) Redand(a Term) Term {
	return b.must(b.Make(OpRedand, []Term{a}))
}

func (b *Builder) Redxor(a Term) Term {
	return b.must(b.Make(OpRedxor, []Term{a}))
}

// Sll shifts x left by the unsigned amount y.
func (b *Builder) Sll(x, y Term) Term {
	return b.must(b.Make(OpSll, []Term{x, y}))
}

// Srl shifts x right by the unsigned amount y, filling with zeros.
func (b *Builder) Srl(x, y Term) Term {
	return b.must(b.Make(OpSrl, []Term{x, y}))
}
