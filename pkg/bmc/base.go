package bmc

import (
	"fmt"
	"math/big"
	"strings"
)

// Base selects how witness values are rendered.
type Base int

const (
	Bin Base = iota
	Hex
	Dec
)

func (b Base) String() string {
	switch b {
	case Hex:
		return "hex"
	case Dec:
		return "dec"
	}
	return "bin"
}

// ParseBase accepts bin, hex or dec in any case; empty means bin.
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(s) {
	case "bin", "":
		return Bin, nil
	case "hex":
		return Hex, nil
	case "dec":
		return Dec, nil
	}
	return Bin, fmt.Errorf("unknown number format %q, expected bin, hex or dec", s)
}

// FormatBits renders a binary string, most significant bit first, in
// base. Hex output keeps leading zero digits so that the width stays
// visible.
func FormatBits(bits string, base Base) string {
	switch base {
	case Hex:
		if pad := len(bits) % 4; pad != 0 {
			bits = strings.Repeat("0", 4-pad) + bits
		}
		var sb strings.Builder
		for i := 0; i < len(bits); i += 4 {
			var d int
			for _, c := range bits[i : i+4] {
				d = d<<1 | int(c-'0')
			}
			sb.WriteByte("0123456789abcdef"[d])
		}
		return sb.String()
	case Dec:
		n, ok := new(big.Int).SetString(bits, 2)
		if !ok {
			return bits
		}
		return n.String()
	}
	return bits
}
