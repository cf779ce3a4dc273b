package btor

import (
	"github.com/pkg/errors"

	"github.com/bvmc/bvmc/pkg/term"
)

type operator struct {
	args   int
	params int
	op     term.Op
	// derived builds operators without a node of their own. Operand
	// widths are checked before the builder is called.
	derived func(b *term.Builder, ts []term.Term, width int) (term.Term, error)
}

var operators = map[string]operator{
	"not":    {args: 1, op: term.OpNot},
	"redor":  {args: 1, op: term.OpRedor},
	"redand": {args: 1, op: term.OpRedand},
	"redxor": {args: 1, op: term.OpRedxor},
	"and":    {args: 2, op: term.OpAnd},
	"or":     {args: 2, op: term.OpOr},
	"xor":    {args: 2, op: term.OpXor},
	"add":    {args: 2, op: term.OpAdd},
	"sub":    {args: 2, op: term.OpSub},
	"mul":    {args: 2, op: term.OpMul},
	"sll":    {args: 2, op: term.OpSll},
	"srl":    {args: 2, op: term.OpSrl},
	"eq":     {args: 2, op: term.OpEq},
	"ult":    {args: 2, op: term.OpUlt},
	"slt":    {args: 2, op: term.OpSlt},
	"concat": {args: 2, op: term.OpConcat},
	"ite":    {args: 3, op: term.OpIte},
	"slice":  {args: 1, params: 2, op: term.OpSlice},
	"uext":   {args: 1, params: 1, op: term.OpUext},
	"sext":   {args: 1, params: 1, op: term.OpSext},

	"neg": unary((*term.Builder).Neg),
	"inc": unary((*term.Builder).Inc),
	"dec": unary((*term.Builder).Dec),

	"nand": binary("nand", (*term.Builder).Nand),
	"nor":  binary("nor", (*term.Builder).Nor),
	"xnor": binary("xnor", (*term.Builder).Xnor),
	"neq":  binary("neq", (*term.Builder).Ne),
	"ulte": binary("ulte", (*term.Builder).Ulte),
	"ugt":  binary("ugt", (*term.Builder).Ugt),
	"ugte": binary("ugte", (*term.Builder).Ugte),
	"slte": binary("slte", (*term.Builder).Slte),
	"sgt":  binary("sgt", (*term.Builder).Sgt),
	"sgte": binary("sgte", (*term.Builder).Sgte),
	"sra":  binary("sra", sra),

	"implies": boolean("implies", (*term.Builder).Implies),
	"iff":     boolean("iff", (*term.Builder).Iff),
}

func unary(f func(b *term.Builder, a term.Term) term.Term) operator {
	return operator{args: 1, derived: func(b *term.Builder, ts []term.Term, _ int) (term.Term, error) {
		return f(b, ts[0]), nil
	}}
}

func binary(name string, f func(b *term.Builder, x, y term.Term) term.Term) operator {
	return operator{args: 2, derived: func(b *term.Builder, ts []term.Term, _ int) (term.Term, error) {
		if wx, wy := b.Width(ts[0]), b.Width(ts[1]); wx != wy {
			return term.Null, errors.Errorf("%s: operand widths differ (%d and %d)", name, wx, wy)
		}
		return f(b, ts[0], ts[1]), nil
	}}
}

func boolean(name string, f func(b *term.Builder, x, y term.Term) term.Term) operator {
	return operator{args: 2, derived: func(b *term.Builder, ts []term.Term, _ int) (term.Term, error) {
		if b.Width(ts[0]) != 1 || b.Width(ts[1]) != 1 {
			return term.Null, errors.Errorf("%s: operands must have width 1", name)
		}
		return f(b, ts[0], ts[1]), nil
	}}
}

// sra shifts x right by y, filling with copies of the sign bit.
func sra(b *term.Builder, x, y term.Term) term.Term {
	w := b.Width(x)
	msb := b.Slice(x, w-1, w-1)
	return b.Ite(msb, b.Not(b.Srl(b.Not(x), y)), b.Srl(x, y))
}
