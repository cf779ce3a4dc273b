// Package btor reads word-level transition systems in the BTOR2 format
// and registers them with a model checking engine.
package btor

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bvmc/bvmc/pkg/bmc"
	"github.com/bvmc/bvmc/pkg/term"
)

// MaxWidth is the widest bit-vector sort a model may declare.
const MaxWidth = 1 << 16

// ParseError reports the line at which a model was rejected.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Property is a bad state declaration of a parsed model.
type Property struct {
	// Index is the engine's property index.
	Index int
	// Node is the BTOR2 node id of the bad line.
	Node int64
	Name string
}

// Label returns the property's symbol, or b<index> when it has none.
func (p Property) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("b%d", p.Index)
}

// Model lists what a BTOR2 file registered with an engine, in file order.
type Model struct {
	Inputs []term.Term
	States []term.Term
	Bad    []Property
}

type parser struct {
	e      *bmc.Engine
	b      *term.Builder
	sorts  map[int64]int
	nodes  map[int64]term.Term
	states map[int64]bool
	model  *Model
}

// ParseFile parses the BTOR2 file at path into e.
func ParseFile(path string, e *bmc.Engine) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	format, err := DetectFormat(path, br)
	if err != nil {
		return nil, err
	}
	if err := format.Check(); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	m, err := Parse(br, e)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return m, nil
}

// Parse reads a BTOR2 model from r and registers its inputs, states,
// transitions and bad state properties with e.
func Parse(r io.Reader, e *bmc.Engine) (*Model, error) {
	p := &parser{
		e:      e,
		b:      e.Terms(),
		sorts:  make(map[int64]int),
		nodes:  make(map[int64]term.Term),
		states: make(map[int64]bool),
		model:  &Model{},
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if err := p.line(sc.Text()); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read model")
	}
	return p.model, nil
}

func (p *parser) line(text string) error {
	if i := strings.IndexByte(text, ';'); i >= 0 {
		text = text[:i]
	}
	f := strings.Fields(text)
	if len(f) == 0 {
		return nil
	}
	if len(f) < 2 {
		return errors.Errorf("expected a node id and a keyword")
	}
	id, err := strconv.ParseInt(f[0], 10, 64)
	if err != nil || id <= 0 {
		return errors.Errorf("invalid node id %q", f[0])
	}
	if _, ok := p.sorts[id]; ok {
		return errors.Errorf("node id %d is already defined", id)
	}
	if _, ok := p.nodes[id]; ok {
		return errors.Errorf("node id %d is already defined", id)
	}
	kw, args := f[1], f[2:]

	switch kw {
	case "sort":
		return p.sort(id, args)
	case "input", "state":
		return p.declare(id, kw, args)
	case "init", "next":
		return p.transition(kw, args)
	case "bad":
		return p.bad(id, args)
	case "output":
		if len(args) < 1 {
			return errors.Errorf("output: missing operand")
		}
		_, err := p.operand(args[0])
		return err
	case "constraint", "fair", "justice":
		return errors.Errorf("%s properties are not supported", kw)
	}

	if len(args) < 1 {
		return errors.Errorf("%s: missing sort", kw)
	}
	width, err := p.sort0(args[0])
	if err != nil {
		return err
	}
	t, err := p.node(kw, width, args[1:])
	if err != nil {
		return err
	}
	if w := p.b.Width(t); w != width {
		return errors.Errorf("%s: sort has width %d, result has width %d", kw, width, w)
	}
	p.nodes[id] = t
	return nil
}

func (p *parser) sort(id int64, args []string) error {
	if len(args) < 1 {
		return errors.Errorf("sort: missing kind")
	}
	switch args[0] {
	case "bitvec":
		if len(args) < 2 {
			return errors.Errorf("sort: missing width")
		}
		w, err := strconv.Atoi(args[1])
		if err != nil || w <= 0 {
			return errors.Errorf("sort: invalid width %q", args[1])
		}
		if w > MaxWidth {
			return errors.Errorf("sort: width %d exceeds the maximum of %d", w, MaxWidth)
		}
		p.sorts[id] = w
		return nil
	case "array":
		return errors.Errorf("array sorts are not supported")
	}
	return errors.Errorf("sort: unknown kind %q", args[0])
}

func (p *parser) sort0(tok string) (int, error) {
	id, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid sort id %q", tok)
	}
	w, ok := p.sorts[id]
	if !ok {
		return 0, errors.Errorf("sort %d is not defined", id)
	}
	return w, nil
}

// operand resolves a node reference. Negative references denote the
// bitwise negation of the node.
func (p *parser) operand(tok string) (term.Term, error) {
	ref, err := strconv.ParseInt(tok, 10, 64)
	if err != nil || ref == 0 {
		return term.Null, errors.Errorf("invalid node reference %q", tok)
	}
	id := ref
	if id < 0 {
		id = -id
	}
	t, ok := p.nodes[id]
	if !ok {
		if _, isSort := p.sorts[id]; isSort {
			return term.Null, errors.Errorf("%d is a sort, not a node", id)
		}
		return term.Null, errors.Errorf("node %d is not defined", id)
	}
	if ref < 0 {
		return p.b.Not(t), nil
	}
	return t, nil
}

func (p *parser) declare(id int64, kw string, args []string) error {
	if len(args) < 1 {
		return errors.Errorf("%s: missing sort", kw)
	}
	width, err := p.sort0(args[0])
	if err != nil {
		return err
	}
	var name string
	if len(args) > 1 {
		name = args[1]
	}
	var t term.Term
	if kw == "state" {
		t, err = p.e.AddLatch(width, name)
		p.model.States = append(p.model.States, t)
		p.states[id] = true
	} else {
		t, err = p.e.AddInput(width, name)
		p.model.Inputs = append(p.model.Inputs, t)
	}
	if err != nil {
		return err
	}
	p.nodes[id] = t
	return nil
}

func (p *parser) transition(kw string, args []string) error {
	if len(args) < 3 {
		return errors.Errorf("%s: expected sort, state and value", kw)
	}
	width, err := p.sort0(args[0])
	if err != nil {
		return err
	}
	sid, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || !p.states[sid] {
		return errors.Errorf("%s: %s is not a state", kw, args[1])
	}
	state := p.nodes[sid]
	value, err := p.operand(args[2])
	if err != nil {
		return err
	}
	if w := p.b.Width(state); w != width {
		return errors.Errorf("%s: sort has width %d, state has width %d", kw, width, w)
	}
	if kw == "init" {
		return p.e.SetInit(state, value)
	}
	return p.e.SetNext(state, value)
}

func (p *parser) bad(id int64, args []string) error {
	if len(args) < 1 {
		return errors.Errorf("bad: missing operand")
	}
	cond, err := p.operand(args[0])
	if err != nil {
		return err
	}
	i, err := p.e.AddBad(cond)
	if err != nil {
		return err
	}
	prop := Property{Index: i, Node: id}
	if len(args) > 1 {
		prop.Name = args[1]
	}
	p.model.Bad = append(p.model.Bad, prop)
	return nil
}

func (p *parser) node(kw string, width int, args []string) (term.Term, error) {
	switch kw {
	case "zero":
		return p.b.Zero(width), nil
	case "one":
		return p.b.One(width), nil
	case "ones":
		return p.b.Ones(width), nil
	case "const", "constd", "consth":
		if len(args) < 1 {
			return term.Null, errors.Errorf("%s: missing value", kw)
		}
		bits, err := constant(kw, args[0], width)
		if err != nil {
			return term.Null, err
		}
		return p.b.Const(bits)
	}

	op, ok := operators[kw]
	if !ok {
		return term.Null, errors.Errorf("unsupported operator %q", kw)
	}
	if len(args) < op.args+op.params {
		return term.Null, errors.Errorf("%s: expected %d operands and %d parameters", kw, op.args, op.params)
	}
	ts := make([]term.Term, op.args)
	for i := range ts {
		t, err := p.operand(args[i])
		if err != nil {
			return term.Null, err
		}
		ts[i] = t
	}
	ps := make([]int, op.params)
	for i := range ps {
		v, err := strconv.Atoi(args[op.args+i])
		if err != nil {
			return term.Null, errors.Errorf("%s: invalid parameter %q", kw, args[op.args+i])
		}
		ps[i] = v
	}
	if op.derived != nil {
		return op.derived(p.b, ts, width)
	}
	return p.b.Make(op.op, ts, ps...)
}

// constant converts a BTOR2 constant literal to binary digits of the
// given width.
func constant(kw, lit string, width int) (string, error) {
	if kw == "const" {
		if len(lit) != width || strings.Trim(lit, "01") != "" {
			return "", errors.Errorf("const: %q is not a %d-bit binary string", lit, width)
		}
		return lit, nil
	}

	base := 10
	if kw == "consth" {
		base = 16
	}
	v, ok := new(big.Int).SetString(lit, base)
	if !ok {
		return "", errors.Errorf("%s: invalid value %q", kw, lit)
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(width))
	if v.Sign() < 0 {
		if kw == "consth" || new(big.Int).Neg(v).Cmp(new(big.Int).Rsh(limit, 1)) > 0 {
			return "", errors.Errorf("%s: %s does not fit in %d bits", kw, lit, width)
		}
		v.Add(v, limit)
	} else if v.Cmp(limit) >= 0 {
		return "", errors.Errorf("%s: %s does not fit in %d bits", kw, lit, width)
	}
	s := v.Text(2)
	return strings.Repeat("0", width-len(s)) + s, nil
}
