package toon

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Canonical Scalar Encoding
// ============================================================

// Delimiter selects the field separator for inline and tabular
// value lists.
type Delimiter uint8

const (
	DelimComma Delimiter = iota // default, omitted from array headers
	DelimPipe
	DelimTab
)

// String returns the separator character.
func (d Delimiter) String() string {
	switch d {
	case DelimPipe:
		return "|"
	case DelimTab:
		return "\t"
	default:
		return ","
	}
}

// headerToken returns the delimiter annotation embedded inside array
// headers: empty for comma, the delimiter character otherwise.
func (d Delimiter) headerToken() string {
	if d == DelimComma {
		return ""
	}
	return d.String()
}

var (
	numericRe     = regexp.MustCompile(`^-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?$`)
	leadingZeroRe = regexp.MustCompile(`^0\d+$`)
	bareKeyRe     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	identSegRe    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// encodePrimitive renders a scalar value to its textual form.
// Quoting decisions are delimiter-aware.
func encodePrimitive(v *Value, delim Delimiter) (string, error) {
	if v == nil {
		return "null", nil
	}
	switch v.kind {
	case KindNull:
		return "null", nil
	case KindBool:
		return strconv.FormatBool(v.boolVal), nil
	case KindNumber:
		return canonNumber(v.numVal), nil
	case KindString:
		return quoteValue(v.strVal, delim), nil
	default:
		return "", &NotEncodableError{Kind: v.kind}
	}
}

// canonNumber returns the canonical decimal representation.
// Integral floats render without a fractional part; -0 → 0.
// Non-finite values render as null (the normalizer already maps them
// to null; this covers directly constructed values).
func canonNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// quoteValue returns the string as-is when unambiguous, otherwise
// quoted and escaped. A string is ambiguous when it would be misread
// as a non-string literal, collide with structural characters, or
// contain the active delimiter.
func quoteValue(s string, delim Delimiter) string {
	if needsQuoting(s, delim) {
		return quoteString(s)
	}
	return s
}

func needsQuoting(s string, delim Delimiter) bool {
	if len(s) == 0 {
		return true
	}

	switch s {
	case "true", "false", "null":
		return true
	}

	// Leading/trailing spaces would be lost to indentation and
	// trailing-whitespace trimming.
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return true
	}

	// Leading hyphen collides with the list marker (and with
	// negative number literals).
	if s[0] == '-' {
		return true
	}

	for _, c := range s {
		switch c {
		case ':', '"', '\\', '\n', '\r', '\t', '[', ']', '{', '}':
			return true
		case ',':
			if delim == DelimComma {
				return true
			}
		case '|':
			if delim == DelimPipe {
				return true
			}
		}
	}

	return numericRe.MatchString(s) || leadingZeroRe.MatchString(s)
}

// quoteKey returns the key bare when identifier-like (dots allowed,
// so folded keys stay bare), otherwise quoted.
func quoteKey(key string) string {
	if bareKeyRe.MatchString(key) {
		return key
	}
	return quoteString(key)
}

// isIdentifierSegment reports whether s is a valid bare key segment
// for folding: identifier-like with no embedded dot.
func isIdentifierSegment(s string) bool {
	return identSegRe.MatchString(s)
}

// quoteString wraps s in double quotes with minimal escapes.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		case '\r':
			sb.WriteString("\\r")
		case '\t':
			sb.WriteString("\\t")
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
