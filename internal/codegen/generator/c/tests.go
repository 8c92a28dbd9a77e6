package cgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alia5/flatgen/internal/codegen/common"
	"github.com/Alia5/flatgen/internal/codegen/source"
	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/wire"
)

// test emits the conformance test function of t: every sample is cast from
// its host encoding and compared field by field.
func (e *emitter) test(t schema.Type) *source.Source {
	name := e.names.Type(t)
	var b strings.Builder
	fmt.Fprintf(&b, "void %s(void) {\n", e.names.TestFunc(t))
	fmt.Fprintf(&b, "    codegen_assert_eq(_Alignof(%s), 1);\n", name)
	for _, s := range e.md.SamplesOf(t) {
		data := s.Bytes
		if len(data) == 0 {
			data = []byte{0}
		}
		b.WriteString("    {\n")
		fmt.Fprintf(&b, "        static const uint8_t data[] = {\n%s\n        };\n",
			common.Indent(12, common.FormatBytes(data, 12)))
		fmt.Fprintf(&b, "        const %s *obj = (const %s *)data;\n", name, name)
		if size, ok := t.Size(); ok {
			fmt.Fprintf(&b, "        codegen_assert_eq(sizeof(%s), %d);\n", name, size)
		} else {
			fmt.Fprintf(&b, "        codegen_assert_eq(%s(obj), %d);\n", e.names.SizeFunc(t), len(s.Bytes))
		}
		for _, line := range e.checks(t, "(*obj)", s.Value) {
			b.WriteString("        " + line + "\n")
		}
		b.WriteString("    }\n")
	}
	b.WriteString("}")
	return source.Text(source.Tests, b.String(), e.Decl(t))
}

// checks renders one assertion per leaf of v, reached through expr.
func (e *emitter) checks(t schema.Type, expr string, v any) []string {
	eq := func(lhs, rhs string) string {
		return fmt.Sprintf("codegen_assert_eq(%s, %s);", lhs, rhs)
	}
	switch t := t.(type) {
	case *schema.Int:
		return []string{eq(expr, IntLiteral(t, v))}
	case *schema.Float:
		return []string{eq(expr, FloatLiteral(t, v))}
	case *schema.Char:
		return []string{eq(expr, common.QuoteChar(v.(byte)))}
	case *schema.String:
		s := v.(string)
		out := []string{eq(expr+".len", strconv.Itoa(len(s)))}
		for i := 0; i < len(s); i++ {
			out = append(out, eq(fmt.Sprintf("%s.data[%d]", expr, i), common.QuoteChar(s[i])))
		}
		return out
	case *schema.Array:
		var out []string
		for i, item := range v.(wire.List) {
			out = append(out, e.checks(t.Item, fmt.Sprintf("%s.data[%d]", expr, i), item)...)
		}
		return out
	case *schema.Vector:
		l := v.(wire.List)
		out := []string{eq(expr+".len", strconv.Itoa(len(l)))}
		for i, item := range l {
			out = append(out, e.checks(t.Item, fmt.Sprintf("%s.data[%d]", expr, i), item)...)
		}
		return out
	case *schema.Struct:
		var out []string
		r := v.(wire.Record)
		for i, f := range t.Fields {
			out = append(out, e.checks(f.Type, expr+"."+Field(f.Name), r[i])...)
		}
		return out
	case *schema.Variant:
		tv := v.(wire.Tagged)
		arm := t.Arms[tv.Tag]
		out := []string{eq(expr+".type", e.names.Tag(t, tv.Tag))}
		return append(out, e.checks(arm.Type, expr+"."+Field(arm.Name), tv.Value)...)
	}
	return nil
}
