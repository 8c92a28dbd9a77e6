package rust

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alia5/flatgen/internal/codegen/common"
	cgen "github.com/Alia5/flatgen/internal/codegen/generator/c"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/internal/codegen/source"
	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/wire"
)

type tester struct {
	md    *meta.Metadata
	c     cgen.Names
	decls *emitter
}

// test decodes every sample in place and checks it field by field, then
// calls the C test of the same type through FFI.
func (x *tester) test(t schema.Type) *source.Source {
	typ := rustType(t)
	var b strings.Builder
	fmt.Fprintf(&b, "#[test]\nfn test_%s() {\n", t.Name().Snake())
	fmt.Fprintf(&b, "    assert_eq!(<%s as FlatBase>::ALIGN, 1);\n", typ)
	for _, s := range x.md.SamplesOf(t) {
		b.WriteString("    {\n")
		if len(s.Bytes) == 0 {
			b.WriteString("        const DATA: &[u8] = &[];\n")
		} else {
			fmt.Fprintf(&b, "        const DATA: &[u8] = &[\n%s,\n        ];\n",
				common.Indent(12, common.FormatBytes(s.Bytes, 12)))
		}
		fmt.Fprintf(&b, "        let obj = <%s>::from_bytes(DATA).unwrap();\n", typ)
		b.WriteString("        assert_eq!(obj.size(), DATA.len());\n")
		for _, line := range x.checks(t, "obj", true, 0, s.Value) {
			b.WriteString("        " + line + "\n")
		}
		b.WriteString("    }\n")
	}
	if !schema.IsEmpty(t) {
		fmt.Fprintf(&b, "    unsafe { %s() };\n", x.c.TestFunc(t))
	}
	b.WriteString("}")
	return source.Text(source.Tests, b.String(), x.decls.Decl(t))
}

// checks renders assertions for v reached through expr. ref tells whether
// expr is a reference rather than a place; depth numbers arm bindings.
func (x *tester) checks(t schema.Type, expr string, ref bool, depth int, v any) []string {
	leaf := func(lit string) []string {
		switch {
		case !native(t):
			return []string{fmt.Sprintf("assert_eq!(%s.to_native(), %s);", expr, lit)}
		case ref:
			return []string{fmt.Sprintf("assert_eq!(*%s, %s);", expr, lit)}
		default:
			return []string{fmt.Sprintf("assert_eq!(%s, %s);", expr, lit)}
		}
	}
	switch t := t.(type) {
	case *schema.Int:
		return leaf(intLiteral(t, v))
	case *schema.Float:
		return leaf(common.FormatFloat(v.(float64), t.Bits))
	case *schema.Char:
		return leaf("b" + common.QuoteChar(v.(byte)))
	case *schema.String:
		return []string{fmt.Sprintf("assert_eq!(%s.as_slice(), b%s);", expr, common.QuoteASCII(v.(string)))}
	case *schema.Array:
		var out []string
		for i, item := range v.(wire.List) {
			out = append(out, x.checks(t.Item, fmt.Sprintf("%s[%d]", expr, i), false, depth, item)...)
		}
		return out
	case *schema.Vector:
		l := v.(wire.List)
		out := []string{fmt.Sprintf("assert_eq!(%s.len(), %d);", expr, len(l))}
		for i, item := range l {
			out = append(out, x.checks(t.Item, fmt.Sprintf("%s.as_slice()[%d]", expr, i), false, depth, item)...)
		}
		return out
	case *schema.Struct:
		var out []string
		r := v.(wire.Record)
		for i, f := range t.Fields {
			if schema.IsSized(t) {
				out = append(out, x.checks(f.Type, expr+"."+fieldName(f.Name), false, depth, r[i])...)
			} else {
				out = append(out, x.checks(f.Type, expr+".as_ref()."+fieldName(f.Name), true, depth, r[i])...)
			}
		}
		return out
	case *schema.Variant:
		tv := v.(wire.Tagged)
		arm := t.Arms[tv.Tag]
		bind := fmt.Sprintf("x%d", depth)
		inner := x.checks(arm.Type, bind, true, depth+1, tv.Value)
		if len(inner) == 0 {
			bind = "_"
		}
		var pattern, scrutinee string
		switch {
		case !schema.IsSized(t):
			pattern = fmt.Sprintf("%sRef::%s(%s)", typeName(t), arm.Name.Camel(), bind)
			scrutinee = expr + ".as_ref()"
		case ref:
			pattern = fmt.Sprintf("%s::%s(%s)", typeName(t), arm.Name.Camel(), bind)
			scrutinee = expr
		default:
			pattern = fmt.Sprintf("%s::%s(%s)", typeName(t), arm.Name.Camel(), bind)
			scrutinee = "&" + expr
		}
		out := []string{fmt.Sprintf("if let %s = %s {", pattern, scrutinee)}
		for _, line := range inner {
			out = append(out, "    "+line)
		}
		return append(out, "} else {", fmt.Sprintf("    panic!(\"expected arm %s\");", arm.Name.Snake()), "}")
	}
	return nil
}

func intLiteral(t *schema.Int, v any) string {
	if !t.Signed {
		return fmt.Sprintf("%du%d", v.(uint64), t.Bits)
	}
	x := v.(int64)
	if x == signedMin(t.Bits) {
		return fmt.Sprintf("i%d::MIN", t.Bits)
	}
	return strconv.FormatInt(x, 10)
}

func signedMin(bits int) int64 {
	return -1 << (bits - 1)
}
