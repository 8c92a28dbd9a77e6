package rust

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Alia5/flatgen/internal/codegen/source"
	"github.com/Alia5/flatgen/schema"
)

type emitter struct {
	decls map[string]*source.Source
	err   error
}

func newEmitter() *emitter {
	return &emitter{decls: map[string]*source.Source{}}
}

// Decl returns the declaration of a struct or variant, or the declaration
// a container's item needs. Other types map onto flatty types directly.
func (e *emitter) Decl(t schema.Type) *source.Source {
	key := t.Name().Snake()
	if s, ok := e.decls[key]; ok {
		return s
	}
	var s *source.Source
	switch t := t.(type) {
	case *schema.Array:
		s = e.Decl(t.Item)
	case *schema.Vector:
		s = e.Decl(t.Item)
	case *schema.Struct:
		s = e.structure(t)
	case *schema.Variant:
		s = e.variant(t)
	default:
		return nil
	}
	e.decls[key] = s
	return s
}

func attr(t schema.Type, enum bool) string {
	args := []string{"portable = true", fmt.Sprintf("sized = %t", schema.IsSized(t))}
	if enum {
		args = append(args, `enum_type = "u8"`)
	}
	return fmt.Sprintf("#[make_flat(%s)]", strings.Join(args, ", "))
}

var declTemplates = template.Must(template.New("decls").Funcs(template.FuncMap{
	"attr":      attr,
	"typeName":  typeName,
	"fieldName": fieldName,
	"rustType":  rustType,
}).Parse(`{{define "struct" -}}
{{attr . false}}
{{if .Fields}}pub struct {{typeName .}} {
{{range .Fields}}    pub {{fieldName .Name}}: {{rustType .Type}},
{{end}}}{{else}}pub struct {{typeName .}} {}{{end}}
{{- end}}

{{define "variant" -}}
{{attr . true}}
pub enum {{typeName .}} {
{{range .Arms}}    {{.Name.Camel}}({{rustType .Type}}),
{{end}}}
{{- end}}`))

// render executes a declaration template. The first failure is kept for
// Generate to report.
func (e *emitter) render(name string, t schema.Type) string {
	var b strings.Builder
	if err := declTemplates.ExecuteTemplate(&b, name, t); err != nil && e.err == nil {
		e.err = fmt.Errorf("render %s %s: %w", name, t.Name(), err)
	}
	return b.String()
}

func (e *emitter) structure(t *schema.Struct) *source.Source {
	s := source.New(source.Declarations)
	for _, f := range t.Fields {
		s.Depend(e.Decl(f.Type))
	}
	s.Add(e.render("struct", t))
	return s
}

func (e *emitter) variant(t *schema.Variant) *source.Source {
	s := source.New(source.Declarations)
	for _, a := range t.Arms {
		s.Depend(e.Decl(a.Type))
	}
	s.Add(e.render("variant", t))
	return s
}
