// Package term provides an arena of immutable, width-typed bit-vector
// expression nodes. Structurally identical nodes are shared: building
// the same operator over the same arguments twice yields the same Term.
package term

import (
	"fmt"
	"strings"
)

// Term identifies a node within a Builder. The zero value is Null and
// never refers to a node.
type Term uint32

// Null is the absent Term.
const Null Term = 0

// Op enumerates the node operators understood by the builder.
type Op uint8

const (
	OpInvalid Op = iota
	OpConst
	OpVar
	OpNot
	OpAnd
	OpOr
	OpXor
	OpAdd
	OpSub
	OpMul
	OpEq
	OpUlt
	OpSlt
	OpIte
	OpConcat
	OpSlice
	OpUext
	OpSext
	OpRedor
	OpRedand
	OpRedxor
	OpSll
	OpSrl
)

var opNames = [...]string{
	OpInvalid: "invalid",
	OpConst:   "const",
	OpVar:     "var",
	OpNot:     "not",
	OpAnd:     "and",
	OpOr:      "or",
	OpXor:     "xor",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpEq:      "eq",
	OpUlt:     "ult",
	OpSlt:     "slt",
	OpIte:     "ite",
	OpConcat:  "concat",
	OpSlice:   "slice",
	OpUext:    "uext",
	OpSext:    "sext",
	OpRedor:   "redor",
	OpRedand:  "redand",
	OpRedxor:  "redxor",
	OpSll:     "sll",
	OpSrl:     "srl",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Node is the immutable definition of a Term.
type Node struct {
	Op    Op
	Width int
	// Args holds the operands, Null-padded past Arity.
	Args  [3]Term
	Arity int
	// Params holds the slice bounds (upper, lower) or the extension
	// amount (first element).
	Params [2]int
	// Bits holds a constant's value, most significant bit first.
	Bits string
	// Name is the optional label of a variable.
	Name string
}

// Operands returns the node's arguments.
func (n Node) Operands() []Term {
	return n.Args[:n.Arity]
}

type key struct {
	op     Op
	width  int
	args   [3]Term
	params [2]int
	bits   string
}

// Builder owns the node arena. Nodes are append-only; a Term stays
// valid for the lifetime of its Builder.
type Builder struct {
	nodes []Node
	index map[key]Term
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: []Node{{}},
		index: make(map[key]Term),
	}
}

// Len returns one more than the largest Term handed out so far.
func (b *Builder) Len() int {
	return len(b.nodes)
}

// Valid reports whether t refers to a node of this builder.
func (b *Builder) Valid(t Term) bool {
	return t != Null && int(t) < len(b.nodes)
}

// Node returns the definition of t. It panics if t is not valid.
func (b *Builder) Node(t Term) Node {
	if !b.Valid(t) {
		panic(fmt.Sprintf("term %d is not defined", t))
	}
	return b.nodes[t]
}

// Width returns the bit-width of t, or 0 if t is not valid.
func (b *Builder) Width(t Term) int {
	if !b.Valid(t) {
		return 0
	}
	return b.nodes[t].Width
}

// Name returns the label of a variable, or the empty string.
func (b *Builder) Name(t Term) string {
	if !b.Valid(t) {
		return ""
	}
	return b.nodes[t].Name
}

func (b *Builder) intern(n Node) Term {
	k := key{op: n.Op, width: n.Width, args: n.Args, params: n.Params, bits: n.Bits}
	if t, ok := b.index[k]; ok {
		return t
	}
	t := Term(len(b.nodes))
	b.nodes = append(b.nodes, n)
	b.index[k] = t
	return t
}

// Var returns a fresh variable of the given width. Variables are never
// shared: every call creates a new node.
func (b *Builder) Var(width int, name string) (Term, error) {
	if width <= 0 {
		return Null, fmt.Errorf("variable width must be positive, got %d", width)
	}
	t := Term(len(b.nodes))
	b.nodes = append(b.nodes, Node{Op: OpVar, Width: width, Name: name})
	return t, nil
}

// Const returns the constant with the given binary digits, most
// significant first.
func (b *Builder) Const(bits string) (Term, error) {
	if len(bits) == 0 {
		return Null, fmt.Errorf("empty constant")
	}
	if strings.Trim(bits, "01") != "" {
		return Null, fmt.Errorf("constant %q is not binary", bits)
	}
	return b.intern(Node{Op: OpConst, Width: len(bits), Bits: bits}), nil
}

// Make builds a node for op over args, checking operand widths. Slice
// takes the upper and lower bit as params; Uext and Sext take the number
// of added bits.
func (b *Builder) Make(op Op, args []Term, params ...int) (Term, error) {
	for _, a := range args {
		if !b.Valid(a) {
			return Null, fmt.Errorf("%s: operand %d is not defined", op, a)
		}
	}
	n := Node{Op: op, Arity: len(args)}
	copy(n.Args[:], args)
	copy(n.Params[:], params)
	arity := func(want, nparams int) error {
		if len(args) != want {
			return fmt.Errorf("%s: expected %d operands, got %d", op, want, len(args))
		}
		if len(params) != nparams {
			return fmt.Errorf("%s: expected %d parameters, got %d", op, nparams, len(params))
		}
		return nil
	}
	sameWidth := func() error {
		if b.Width(args[0]) != b.Width(args[1]) {
			return fmt.Errorf("%s: operand widths differ (%d and %d)", op, b.Width(args[0]), b.Width(args[1]))
		}
		return nil
	}

	switch op {
	case OpNot:
		if err := arity(1, 0); err != nil {
			return Null, err
		}
		n.Width = b.Width(args[0])
	case OpRedor, OpRedand, OpRedxor:
		if err := arity(1, 0); err != nil {
			return Null, err
		}
		n.Width = 1
	case OpAnd, OpOr, OpXor, OpAdd, OpSub, OpMul, OpSll, OpSrl:
		if err := arity(2, 0); err != nil {
			return Null, err
		}
		if err := sameWidth(); err != nil {
			return Null, err
		}
		n.Width = b.Width(args[0])
	case OpEq, OpUlt, OpSlt:
		if err := arity(2, 0); err != nil {
			return Null, err
		}
		if err := sameWidth(); err != nil {
			return Null, err
		}
		n.Width = 1
	case OpConcat:
		if err := arity(2, 0); err != nil {
			return Null, err
		}
		n.Width = b.Width(args[0]) + b.Width(args[1])
	case OpIte:
		if err := arity(3, 0); err != nil {
			return Null, err
		}
		if w := b.Width(args[0]); w != 1 {
			return Null, fmt.Errorf("ite: condition must have width 1, got %d", w)
		}
		if b.Width(args[1]) != b.Width(args[2]) {
			return Null, fmt.Errorf("ite: branch widths differ (%d and %d)", b.Width(args[1]), b.Width(args[2]))
		}
		n.Width = b.Width(args[1])
	case OpSlice:
		if err := arity(1, 2); err != nil {
			return Null, err
		}
		hi, lo := params[0], params[1]
		if lo < 0 || hi < lo || hi >= b.Width(args[0]) {
			return Null, fmt.Errorf("slice: bounds [%d:%d] out of range for width %d", hi, lo, b.Width(args[0]))
		}
		n.Width = hi - lo + 1
	case OpUext, OpSext:
		if err := arity(1, 1); err != nil {
			return Null, err
		}
		if params[0] < 0 {
			return Null, fmt.Errorf("%s: negative extension %d", op, params[0])
		}
		if params[0] == 0 {
			return args[0], nil
		}
		n.Width = b.Width(args[0]) + params[0]
	default:
		return Null, fmt.Errorf("cannot make a %s node", op)
	}
	return b.intern(n), nil
}

func (b *Builder) must(t Term, err error) Term {
	if err != nil {
		panic(err)
	}
	return t
}

// Format renders the definition of t on a single line.
func (b *Builder) Format(t Term) string {
	n := b.Node(t)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s %d", t, n.Op, n.Width)
	switch n.Op {
	case OpConst:
		fmt.Fprintf(&sb, " %s", n.Bits)
	case OpVar:
		if n.Name != "" {
			fmt.Fprintf(&sb, " %s", n.Name)
		}
	default:
		for _, a := range n.Operands() {
			fmt.Fprintf(&sb, " %d", a)
		}
		switch n.Op {
		case OpSlice:
			fmt.Fprintf(&sb, " %d %d", n.Params[0], n.Params[1])
		case OpUext, OpSext:
			fmt.Fprintf(&sb, " %d", n.Params[0])
		}
	}
	return sb.String()
}
