package cpp

import (
	"fmt"
	"strings"

	"github.com/Alia5/flatgen/internal/codegen/common"
	cgen "github.com/Alia5/flatgen/internal/codegen/generator/c"
	"github.com/Alia5/flatgen/internal/codegen/source"
	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/wire"
)

func testFunc(t schema.Type) string {
	return "test_" + t.Name().Snake()
}

// test decodes every sample through the wrapper, checks it field by field,
// re-encodes it and finally runs the C test of the same type.
func (e *emitter) test(t schema.Type) *source.Source {
	typ := cppType(t)
	var b strings.Builder
	fmt.Fprintf(&b, "void %s() {\n", testFunc(t))
	for _, s := range e.md.SamplesOf(t) {
		data := s.Bytes
		if len(data) == 0 {
			data = []byte{0}
		}
		b.WriteString("    {\n")
		fmt.Fprintf(&b, "        static const std::uint8_t data[] = {\n%s\n        };\n",
			common.Indent(12, common.FormatBytes(data, 12)))
		fmt.Fprintf(&b, "        const std::size_t len = %d;\n", len(s.Bytes))
		fmt.Fprintf(&b, "        Reader r(data, len);\n        %s obj{};\n", typ)
		b.WriteString("        codegen_assert_eq(decode(r, obj).index(), 0u);\n")
		b.WriteString("        codegen_assert_eq(r.position(), len);\n")
		b.WriteString("        codegen_assert_eq(encoded_size(obj), len);\n")
		for _, line := range e.checks(t, "obj", s.Value) {
			b.WriteString("        " + line + "\n")
		}
		b.WriteString("        Writer w;\n        codegen_assert_eq(encode(w, obj).index(), 0u);\n")
		b.WriteString("        codegen_assert_eq(w.size(), len);\n")
		if len(s.Bytes) > 0 {
			b.WriteString("        codegen_assert_eq(std::memcmp(w.data().data(), data, len), 0);\n")
		}
		if isClass(t) {
			fmt.Fprintf(&b, "        auto view = %s::from_c(*reinterpret_cast<const ::%s *>(data));\n", typ, e.c.Type(t))
			b.WriteString("        codegen_assert_eq(view.index(), 0u);\n")
			fmt.Fprintf(&b, "        codegen_assert_eq(std::get<%s>(view).packed_size(), len);\n", typ)
		}
		b.WriteString("    }\n")
	}
	if !schema.IsEmpty(t) {
		fmt.Fprintf(&b, "    ::%s();\n", e.c.TestFunc(t))
	}
	b.WriteString("}")
	return source.Text(source.Tests, b.String(), e.Decl(t))
}

// checks renders the field-wise comparison of expr against v.
func (e *emitter) checks(t schema.Type, expr string, v any) []string {
	eq := func(lhs, rhs string) string {
		return fmt.Sprintf("codegen_assert_eq(%s, %s);", lhs, rhs)
	}
	switch t := t.(type) {
	case *schema.Int:
		return []string{eq(expr, cgen.IntLiteral(t, v))}
	case *schema.Float:
		return []string{eq(expr, cgen.FloatLiteral(t, v))}
	case *schema.Char:
		return []string{eq(expr, common.QuoteChar(v.(byte)))}
	case *schema.String:
		return []string{eq(expr, fmt.Sprintf("std::string(%s)", common.QuoteASCII(v.(string))))}
	case *schema.Array:
		var out []string
		for i, item := range v.(wire.List) {
			out = append(out, e.checks(t.Item, fmt.Sprintf("%s[%d]", expr, i), item)...)
		}
		return out
	case *schema.Vector:
		l := v.(wire.List)
		out := []string{eq(expr+".size()", fmt.Sprintf("%du", len(l)))}
		for i, item := range l {
			out = append(out, e.checks(t.Item, fmt.Sprintf("%s[%d]", expr, i), item)...)
		}
		return out
	case *schema.Struct:
		var out []string
		r := v.(wire.Record)
		for i, f := range t.Fields {
			out = append(out, e.checks(f.Type, expr+"."+member(f.Name), r[i])...)
		}
		return out
	case *schema.Variant:
		tv := v.(wire.Tagged)
		out := []string{eq(expr+".arm.index()", fmt.Sprintf("%du", tv.Tag))}
		arm := fmt.Sprintf("std::get<%d>(%s.arm)", tv.Tag, expr)
		return append(out, e.checks(t.Arms[tv.Tag].Type, arm, tv.Value)...)
	}
	return nil
}
