package schema

import (
	"strings"
	"unicode"
)

// Name is an ordered sequence of ASCII words identifying a type or field.
type Name []string

// NewName builds a Name from already split words.
func NewName(words ...string) Name {
	out := make(Name, 0, len(words))
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// ParseName splits "fooBar", "foo_bar", "foo-bar" or "foo bar" into words.
func ParseName(s string) Name {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	var words []string
	for _, p := range parts {
		words = append(words, splitCamel(p)...)
	}
	return NewName(words...)
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i := 1; i < len(s); i++ {
		prev, cur := s[i-1], s[i]
		nextLower := i+1 < len(s) && isLower(s[i+1])
		if isUpper(cur) && (isLower(prev) || isDigit(prev) || (isUpper(prev) && nextLower)) {
			words = append(words, s[start:i])
			start = i
		}
	}
	return append(words, s[start:])
}

// Camel concatenates the words, each with its first letter upper-cased and
// the rest lower-cased.
func (n Name) Camel() string {
	var b strings.Builder
	for _, w := range n {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}

// Snake joins the lower-cased words with underscores.
func (n Name) Snake() string {
	lowered := make([]string, len(n))
	for i, w := range n {
		lowered[i] = strings.ToLower(w)
	}
	return strings.Join(lowered, "_")
}

// Equal reports word-by-word equality.
func (n Name) Equal(o Name) bool {
	if len(n) != len(o) {
		return false
	}
	for i := range n {
		if n[i] != o[i] {
			return false
		}
	}
	return true
}

// Append returns a new Name with words appended.
func (n Name) Append(words ...string) Name {
	out := make(Name, 0, len(n)+len(words))
	out = append(out, n...)
	return append(out, NewName(words...)...)
}

func (n Name) String() string { return n.Snake() }

func (n Name) valid() bool {
	if len(n) == 0 || isDigit(n[0][0]) {
		return false
	}
	for _, w := range n {
		for i := 0; i < len(w); i++ {
			if !isUpper(w[i]) && !isLower(w[i]) && !isDigit(w[i]) {
				return false
			}
		}
	}
	return true
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
