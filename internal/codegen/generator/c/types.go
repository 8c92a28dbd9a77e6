package cgen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Alia5/flatgen/internal/codegen/common"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/internal/codegen/source"
	"github.com/Alia5/flatgen/schema"
)

// emitter builds one declaration fragment per type and shares it between
// every dependent.
type emitter struct {
	md       *meta.Metadata
	names    Names
	includes *source.Source
	prelude  *source.Source
	decls    map[string]*source.Source
	defs     []*source.Source
	tmpl     *template.Template
	err      error
}

const declTemplates = `{{define "struct" -}}
typedef struct {{packed}} {
{{range .Fields}}    {{ctype .Type}} {{field .Name}};
{{end}}} {{ctype .}};
{{- if sized .}}
{{staticAssert .}}{{end}}
{{- end}}

{{define "tags" -}}
typedef enum {
{{range $i, $a := .Arms}}    {{tag $ $i}} = {{$i}},
{{end}}} {{tagEnum .}};
{{- end}}

{{define "variant" -}}
typedef struct {{packed}} {
    uint8_t type;
    union {{packed}} {
{{range .Arms}}        {{ctype .Type}} {{field .Name}};
{{end}}    };
} {{ctype .}};
{{- if sized .}}
{{staticAssert .}}{{end}}
{{- end}}

{{define "variantSize"}}    switch (obj->type) {
{{range $i, $a := .Arms}}    case {{tag $ $i}}:
        return 1 + {{sizeExpr $a.Type (printf "&obj->%s" (field $a.Name))}};
{{end}}    default:
        return 1;
    }
{{- end}}

{{define "default" -}}
static inline {{ctype .}} {{defaultFunc .}}(void) {
    {{ctype .}} obj;
    memset(&obj, 0, sizeof(obj));
    obj.type = {{tag . 0}};
    return obj;
}
{{- end}}`

func newEmitter(md *meta.Metadata) *emitter {
	e := &emitter{
		md:    md,
		names: NewNames(md),
		decls: map[string]*source.Source{},
	}
	e.tmpl = template.Must(template.New("decls").Funcs(template.FuncMap{
		"packed":       func() string { return Packed },
		"ctype":        e.names.Type,
		"field":        Field,
		"tag":          e.names.Tag,
		"tagEnum":      e.names.TagEnum,
		"sizeExpr":     e.names.SizeExpr,
		"defaultFunc":  e.names.DefaultFunc,
		"sized":        schema.IsSized,
		"staticAssert": e.staticAssert,
	}).Parse(declTemplates))
	e.includes = source.Text(source.Imports, "#include <stddef.h>\n#include <stdint.h>")
	upper := common.ToScreamingSnakeCase(md.Prefix)
	e.prelude = source.Text(source.Declarations, fmt.Sprintf(`#ifdef __cplusplus
#define %[1]s_STATIC_ASSERT(cond, msg) static_assert(cond, msg)
#else
#define %[1]s_STATIC_ASSERT(cond, msg) _Static_assert(cond, msg)
#endif`, upper), e.includes)
	return e
}

// Decl returns the declaration fragment of t; primitives have none.
func (e *emitter) Decl(t schema.Type) *source.Source {
	key := t.Name().Snake()
	if s, ok := e.decls[key]; ok {
		return s
	}
	var s *source.Source
	switch t := t.(type) {
	case *schema.Int, *schema.Float, *schema.Char:
		return nil
	case *schema.Array:
		s = e.array(t)
	case *schema.Vector:
		s = e.vector(t)
	case *schema.String:
		s = e.string(t)
	case *schema.Struct:
		s = e.structure(t)
	case *schema.Variant:
		s = e.variant(t)
	}
	e.decls[key] = s
	return s
}

func (e *emitter) array(t *schema.Array) *source.Source {
	name := e.names.Type(t)
	s := source.New(source.Declarations, e.prelude, e.Decl(t.Item))
	s.Addf("typedef struct %s {\n    %s data[%d];\n} %s;\n%s",
		Packed, e.names.Type(t.Item), t.Len, name, e.staticAssert(t))
	return s
}

func (e *emitter) vector(t *schema.Vector) *source.Source {
	name := e.names.Type(t)
	s := source.New(source.Declarations, e.prelude, e.Decl(t.Item))
	s.Addf("typedef struct %s {\n    uint16_t len;\n    %s data[];\n} %s;", Packed, e.names.Type(t.Item), name)
	itemSize, _ := t.Item.Size()
	e.sizeFunc(s, t, fmt.Sprintf("    return %d + (size_t)obj->len * %d;", schema.VectorHeaderSize, itemSize))
	return s
}

func (e *emitter) string(t *schema.String) *source.Source {
	chars := schema.MustVector(t.Item())
	s := source.New(source.Declarations, e.Decl(chars))
	s.Addf("typedef %s %s;", e.names.Type(chars), e.names.Type(t))
	e.sizeFunc(s, t, fmt.Sprintf("    return %s(obj);", e.names.SizeFunc(chars)))
	return s
}

// render executes a declaration template. The first failure is kept for
// Generate to report.
func (e *emitter) render(name string, t schema.Type) string {
	var b strings.Builder
	if err := e.tmpl.ExecuteTemplate(&b, name, t); err != nil && e.err == nil {
		e.err = fmt.Errorf("render %s %s: %w", name, t.Name(), err)
	}
	return b.String()
}

func (e *emitter) structure(t *schema.Struct) *source.Source {
	s := source.New(source.Declarations, e.prelude)
	for _, f := range t.Fields {
		s.Depend(e.Decl(f.Type))
	}
	s.Add(e.render("struct", t))

	if last, ok := t.Last(); ok && !schema.IsSized(t) {
		offset := t.Offsets()[len(t.Fields)-1]
		member := Field(last.Name)
		e.sizeFunc(s, t, fmt.Sprintf("    return %d + %s;", offset, e.names.SizeExpr(last.Type, "&obj->"+member)))
	}
	return s
}

func (e *emitter) variant(t *schema.Variant) *source.Source {
	s := source.New(source.Declarations, e.prelude)
	s.Add(e.render("tags", t))
	for _, a := range t.Arms {
		s.Depend(e.Decl(a.Type))
	}
	s.Add(e.render("variant", t))

	if !schema.IsSized(t) {
		e.sizeFunc(s, t, e.render("variantSize", t))
	} else if e.md.Default {
		s.Add(e.render("default", t))
		e.includes.Add("#include <string.h>")
	}
	return s
}

// sizeFunc declares the size function of an unsized type next to its
// declaration and adds the definition as a dependent fragment.
func (e *emitter) sizeFunc(decl *source.Source, t schema.Type, body string) {
	sig := fmt.Sprintf("size_t %s(const %s *obj)", e.names.SizeFunc(t), e.names.Type(t))
	decl.Addf("%s;", sig)
	def := source.Text(source.Definitions, fmt.Sprintf("%s {\n%s\n}", sig, body), decl)
	e.defs = append(e.defs, def)
}

func (e *emitter) staticAssert(t schema.Type) string {
	name := e.names.Type(t)
	if !LayoutMatches(t) {
		return fmt.Sprintf("/* %s holds an empty struct */", name)
	}
	size, _ := t.Size()
	return fmt.Sprintf("%s_STATIC_ASSERT(sizeof(%s) == %d, \"%s must be packed\");",
		common.ToScreamingSnakeCase(e.md.Prefix), name, size, name)
}
