package scanner

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/feint-lang/feint/lang/token"
)

// number scans an int or float literal starting at s.cur (already
// positioned on the first digit or a leading '.'). start is the byte
// offset of the literal's first character.
func (s *Scanner) number(start int) (tok token.Token, base int, lit string) {
	tok = token.ILLEGAL
	base = 10
	prefix := rune(0)
	digsep := 0
	invalid := -1

	if s.cur != '.' {
		tok = token.INT
		if s.cur == '0' {
			s.advance()
			switch lower(s.cur) {
			case 'x':
				s.advance()
				base, prefix = 16, 'x'
			case 'o':
				s.advance()
				base, prefix = 8, 'o'
			case 'b':
				s.advance()
				base, prefix = 2, 'b'
			}
		}
		digsep |= s.digits(base, &invalid)
	}

	if s.cur == '.' {
		tok = token.FLOAT
		if prefix == 'o' || prefix == 'b' || prefix == 'x' {
			s.error(s.off, UnknownToken, "invalid radix point in "+litname(prefix))
		}
		s.advance()
		digsep |= s.digits(base, &invalid)
	}

	if digsep&1 == 0 {
		s.error(s.off, UnknownToken, litname(prefix)+" has no digits")
	}

	if e := lower(s.cur); e == 'e' && prefix == 0 {
		s.advance()
		tok = token.FLOAT
		if s.cur == '+' || s.cur == '-' {
			s.advance()
		}
		ds := s.digits(10, nil)
		digsep |= ds
		if ds&1 == 0 {
			s.error(s.off, UnknownToken, "exponent has no digits")
		}
	}

	lit = string(s.src[start:s.off])
	if tok == token.INT && invalid >= 0 {
		s.error(invalid, UnknownToken, "invalid digit in "+litname(prefix))
	}
	if digsep&2 != 0 {
		if i := invalidSep(lit); i >= 0 {
			s.error(start+i, UnknownToken, "'_' must separate successive digits")
		}
	}
	return tok, base, lit
}

func isDecimal(rn rune) bool { return '0' <= rn && rn <= '9' }

func isHexadecimal(rn rune) bool {
	return isDecimal(rn) || 'a' <= rn && rn <= 'f' || 'A' <= rn && rn <= 'F'
}

// digits accepts the sequence { digit | '_' }. If base <= 10 it accepts any
// decimal digit, recording the offset of a digit >= base in *invalid if
// *invalid is still negative. Returns a bitset: bit 0 set if any digit was
// seen, bit 1 set if any '_' separator was seen.
func (s *Scanner) digits(base int, invalid *int) (digsep int) {
	if base <= 10 {
		max := rune('0' + base)
		for isDecimal(s.cur) || s.cur == '_' {
			ds := 1
			if s.cur == '_' {
				ds = 2
			} else if s.cur >= max && invalid != nil && *invalid < 0 {
				*invalid = s.off
			}
			digsep |= ds
			s.advance()
		}
	} else {
		for isHexadecimal(s.cur) || s.cur == '_' {
			ds := 1
			if s.cur == '_' {
				ds = 2
			}
			digsep |= ds
			s.advance()
		}
	}
	return
}

// invalidSep returns the index of the first misplaced '_' separator in x,
// or -1 if all separators sit strictly between two digits.
func invalidSep(x string) int {
	x1 := ' '
	d := '.'
	i := 0

	if len(x) >= 2 && x[0] == '0' {
		x1 = lower(rune(x[1]))
		if x1 == 'x' || x1 == 'o' || x1 == 'b' {
			d = '0'
			i = 2
		}
	}

	for ; i < len(x); i++ {
		p := d
		d = rune(x[i])
		switch {
		case d == '_':
			if p != '0' {
				return i
			}
		case isDecimal(d) || x1 == 'x' && isHexadecimal(d):
			d = '0'
		default:
			if p == '_' {
				return i - 1
			}
			d = '.'
		}
	}
	if d == '_' {
		return len(x) - 1
	}
	return -1
}

func litname(prefix rune) string {
	switch prefix {
	case 'x':
		return "hexadecimal literal"
	case 'o':
		return "octal literal"
	case 'b':
		return "binary literal"
	}
	return "decimal literal"
}

func lower(ch rune) rune {
	if ch < 0 || ch >= utf8RuneSelf {
		return ch
	}
	return ('a' - 'A') | ch
}

const utf8RuneSelf = 0x80

// parseBigInt parses a scanned int literal (with its radix prefix and any
// '_' separators still present) into an arbitrary-precision integer,
// matching spec.md's requirement that int is arbitrary precision.
func parseBigInt(lit string, base int) (*big.Int, error) {
	clean := strings.ReplaceAll(lit, "_", "")
	if base != 10 {
		clean = clean[2:] // strip 0x/0o/0b
	}
	if clean == "" {
		clean = "0"
	}
	v, ok := new(big.Int).SetString(clean, base)
	if !ok {
		return new(big.Int), strconv.ErrSyntax
	}
	return v, nil
}
