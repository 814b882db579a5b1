package interchange

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ============================================================
// Canonical Scalar Encoding
// ============================================================

// canonBool returns the canonical boolean representation.
func canonBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// canonNumber returns the canonical number representation: the
// shortest string that round-trips to f, in plain decimal form unless
// |f| < 1e-6 or |f| >= 1e21, where the exponent form is used
// (1e+21, 1e-7). -0 becomes 0. The caller rejects non-finite values.
func canonNumber(f float64) string {
	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	format := byte('f')
	if abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}

	s := strconv.FormatFloat(f, format, -1, 64)
	if format == 'e' {
		// Drop the exponent's leading zero: 1e-07 -> 1e-7.
		n := len(s)
		if n >= 4 && s[n-4] == 'e' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
	}
	return s
}

// ============================================================
// String Quoting
// ============================================================

const hexDigits = "0123456789abcdef"

// quoteString returns a quoted string with minimal escapes. Invalid
// UTF-8 bytes become U+FFFD.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	writeQuoted(&b, s)
	return b.String()
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '\\':
				b.WriteString(`\\`)
			case '"':
				b.WriteString(`\"`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				if c < 0x20 {
					b.WriteString(`\u00`)
					b.WriteByte(hexDigits[c>>4])
					b.WriteByte(hexDigits[c&0x0f])
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString("\ufffd")
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
}

// ============================================================
// Representability
// ============================================================

// checkValue walks v and reports the first cycle or non-finite number.
// Every encoder runs it before writing so no encoder emits a partial
// result.
func checkValue(v *Value) error {
	return checkValueAt(v, "$", make(map[*Value]bool))
}

func checkValueAt(v *Value, path string, visiting map[*Value]bool) error {
	switch v.Kind() {
	case KindNumber:
		if !isFinite(v.numVal) {
			return unrepresentable(path, "non-finite number %s", strconv.FormatFloat(v.numVal, 'g', -1, 64))
		}
		return nil

	case KindList:
		if visiting[v] {
			return cycleAt(path)
		}
		visiting[v] = true
		for i, elem := range v.listVal {
			if err := checkValueAt(elem, path+"["+strconv.Itoa(i)+"]", visiting); err != nil {
				return err
			}
		}
		delete(visiting, v)
		return nil

	case KindMap:
		if visiting[v] {
			return cycleAt(path)
		}
		visiting[v] = true
		for _, e := range v.mapVal {
			if err := checkValueAt(e.Value, childPath(path, e.Key), visiting); err != nil {
				return err
			}
		}
		delete(visiting, v)
		return nil

	default:
		return nil
	}
}

// childPath appends key to a JSON path, bracket-quoting keys that are
// not plain identifiers.
func childPath(path, key string) string {
	if isIdentifier(key) {
		return path + "." + key
	}
	return path + "[" + quoteString(key) + "]"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
