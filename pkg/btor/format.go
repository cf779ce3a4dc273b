package btor

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
)

type Format int

const (
	BTOR2 Format = iota
	SMTLIB1
	SMTLIB2
)

func (f Format) String() string {
	switch f {
	case BTOR2:
		return "btor2"
	case SMTLIB1:
		return "smt-lib v1"
	case SMTLIB2:
		return "smt-lib v2"
	}
	return "unknown"
}

// ErrUnsupportedFormat is returned for inputs that are recognised but
// cannot be model checked.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// DetectFormat decides the format of an input from its file name and,
// failing that, from its first two significant characters. Input is
// assumed to be BTOR2 unless it opens with a parenthesis. Peeked bytes
// stay in r.
func DetectFormat(name string, r *bufio.Reader) (Format, error) {
	switch {
	case strings.HasSuffix(name, ".btor"), strings.HasSuffix(name, ".btor2"):
		return BTOR2, nil
	case strings.HasSuffix(name, ".smt2"):
		return SMTLIB2, nil
	case strings.HasSuffix(name, ".smt"):
		return SMTLIB1, nil
	}

	var first, second byte
	comment := false
	for n := 1; ; n++ {
		buf, err := r.Peek(n)
		if len(buf) < n {
			// Too short to tell.
			return BTOR2, nil
		}
		if err != nil {
			return BTOR2, errors.Wrap(err, "detect format")
		}
		ch := buf[n-1]
		switch {
		case comment:
			comment = ch != '\n'
		case ch == ';':
			comment = true
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
		case first == 0:
			first = ch
		default:
			second = ch
		}
		if second != 0 {
			break
		}
		if n == r.Size() {
			return BTOR2, nil
		}
	}
	if first != '(' {
		return BTOR2, nil
	}
	if second == 'b' {
		return SMTLIB1, nil
	}
	return SMTLIB2, nil
}

// Check returns an error for formats other than BTOR2.
func (f Format) Check() error {
	if f != BTOR2 {
		return errors.Wrapf(ErrUnsupportedFormat, "%s input", f)
	}
	return nil
}
