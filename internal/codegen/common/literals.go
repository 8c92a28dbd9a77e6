package common

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBytes renders b as comma separated hex literals, perLine per row.
func FormatBytes(b []byte, perLine int) string {
	if len(b) == 0 {
		return ""
	}
	var lines []string
	for start := 0; start < len(b); start += perLine {
		end := min(start+perLine, len(b))
		parts := make([]string, 0, end-start)
		for _, c := range b[start:end] {
			parts = append(parts, fmt.Sprintf("0x%02X", c))
		}
		lines = append(lines, strings.Join(parts, ", "))
	}
	return strings.Join(lines, ",\n")
}

// FormatFloat renders the shortest decimal that parses back to the same
// value at the given width. The result always contains a '.' or exponent.
func FormatFloat(v float64, bits int) string {
	s := strconv.FormatFloat(v, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// QuoteASCII renders s as a double-quoted literal valid in C, C++, Rust and
// Python. s must be ASCII.
func QuoteASCII(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b.WriteString(escapeByte(s[i], '"'))
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteChar renders c as a single-quoted literal.
func QuoteChar(c byte) string {
	return "'" + escapeByte(c, '\'') + "'"
}

func escapeByte(c byte, quote byte) string {
	switch {
	case c == '\\' || c == quote:
		return `\` + string(c)
	case c == '\n':
		return `\n`
	case c == '\t':
		return `\t`
	case c < 0x20 || c == 0x7F:
		return fmt.Sprintf(`\x%02x`, c)
	default:
		return string(c)
	}
}
