package cgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Alia5/flatgen/internal/codegen/common"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/schema"
)

// Packed is the attribute every emitted struct and union carries.
const Packed = "__attribute__((packed, aligned(1)))"

// Names renders C identifiers for one generator prefix. The C++ emitter
// reuses it to refer to the C layout.
type Names struct {
	prefix string
}

func NewNames(md *meta.Metadata) Names {
	return Names{prefix: md.Prefix}
}

// Type returns the C type name of t.
func (n Names) Type(t schema.Type) string {
	switch t := t.(type) {
	case *schema.Int:
		if t.Signed {
			return fmt.Sprintf("int%d_t", t.Bits)
		}
		return fmt.Sprintf("uint%d_t", t.Bits)
	case *schema.Float:
		if t.Bits == 32 {
			return "float"
		}
		return "double"
	case *schema.Char:
		return "char"
	}
	return common.ToPascalCase(n.prefix) + t.Name().Camel()
}

// SizeFunc is the name of the runtime size function of an unsized type.
func (n Names) SizeFunc(t schema.Type) string {
	return fmt.Sprintf("%s_%s_size", common.ToSnakeCase(n.prefix), t.Name().Snake())
}

// TestFunc is the name of the generated conformance test entry point.
func (n Names) TestFunc(t schema.Type) string {
	return fmt.Sprintf("%s_test_%s", common.ToSnakeCase(n.prefix), t.Name().Snake())
}

// TestAll is the entry point running every generated C test.
func (n Names) TestAll() string {
	return common.ToSnakeCase(n.prefix) + "_test_all"
}

// DefaultFunc is the name of the zero-value constructor of a sized variant.
func (n Names) DefaultFunc(t schema.Type) string {
	return fmt.Sprintf("%s_%s_default", common.ToSnakeCase(n.prefix), t.Name().Snake())
}

// TagEnum is the enum type of a variant's tags.
func (n Names) TagEnum(v *schema.Variant) string {
	return n.Type(v) + "Tag"
}

// Tag is the enum constant for arm i of v.
func (n Names) Tag(v *schema.Variant, i int) string {
	return fmt.Sprintf("%s_%s_%s",
		common.ToScreamingSnakeCase(n.prefix),
		strings.ToUpper(v.Name().Snake()),
		strings.ToUpper(v.Arms[i].Name.Snake()))
}

// Field is the member name of a struct field or variant arm.
func Field(name schema.Name) string {
	s := name.Snake()
	if cKeywords[s] || s == "type" {
		return s + "_"
	}
	return s
}

// SizeExpr is a C expression for the encoded size of the object ptr points
// to. Sized types render as a constant.
func (n Names) SizeExpr(t schema.Type, ptr string) string {
	if size, ok := t.Size(); ok {
		return strconv.Itoa(size)
	}
	return fmt.Sprintf("%s(%s)", n.SizeFunc(t), ptr)
}

// IntLiteral renders an integer sample value for a C or C++ comparison.
func IntLiteral(t *schema.Int, v any) string {
	if t.Signed {
		x := v.(int64)
		lo, _ := signedBounds(t.Bits)
		if x == lo {
			return fmt.Sprintf("INT%d_MIN", t.Bits)
		}
		if t.Bits == 64 {
			return fmt.Sprintf("INT64_C(%d)", x)
		}
		return strconv.FormatInt(x, 10)
	}
	x := v.(uint64)
	if t.Bits == 64 {
		return fmt.Sprintf("UINT64_C(%d)", x)
	}
	return strconv.FormatUint(x, 10) + "u"
}

// FloatLiteral renders a float sample value.
func FloatLiteral(t *schema.Float, v any) string {
	s := common.FormatFloat(v.(float64), t.Bits)
	if t.Bits == 32 {
		return s + "f"
	}
	return s
}

// LayoutMatches reports whether sizeof the C declaration of t equals its
// encoded size in both C and C++. Empty structs occupy one byte in C++, so
// a sized type holding one may differ.
func LayoutMatches(t schema.Type) bool {
	size, ok := t.Size()
	return ok && size > 0 && cxxSize(t) == size
}

func cxxSize(t schema.Type) int {
	switch t := t.(type) {
	case *schema.Array:
		return t.Len * cxxSize(t.Item)
	case *schema.Struct:
		if len(t.Fields) == 0 {
			return 1
		}
		n := 0
		for _, f := range t.Fields {
			n += cxxSize(f.Type)
		}
		return n
	case *schema.Variant:
		n := 0
		for _, a := range t.Arms {
			n = max(n, cxxSize(a.Type))
		}
		return 1 + n
	}
	size, _ := t.Size()
	return size
}

func signedBounds(bits int) (int64, int64) {
	if bits == 64 {
		return math.MinInt64, math.MaxInt64
	}
	hi := int64(1)<<(bits-1) - 1
	return -hi - 1, hi
}

var cKeywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true, "bool": true,
	"class": true, "delete": true, "new": true, "namespace": true, "template": true,
	"this": true, "private": true, "public": true, "protected": true, "virtual": true,
	"operator": true, "friend": true, "try": true, "catch": true, "throw": true,
	"true": true, "false": true, "using": true, "typename": true, "explicit": true,
	"mutable": true, "export": true, "and": true, "or": true, "not": true, "xor": true,
}
