package python

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/internal/codegen/source"
	"github.com/Alia5/flatgen/schema"
)

type emitter struct {
	md     *meta.Metadata
	typing *source.Source
	numpy  *source.Source
	decls  map[string]*source.Source
	err    error
}

func newEmitter(md *meta.Metadata) *emitter {
	return &emitter{
		md:    md,
		decls: map[string]*source.Source{},
		typing: source.Text(source.Imports, "from __future__ import annotations\n\n"+
			"from dataclasses import dataclass\nfrom typing import ClassVar, List, Union"),
		numpy: source.Text(source.Imports, "import numpy as np\nimport numpy.typing as npt"),
	}
}

// pyType returns the annotation of t and the import fragment it needs.
func (e *emitter) pyType(t schema.Type) (string, *source.Source) {
	switch t := t.(type) {
	case *schema.Int:
		return "int", nil
	case *schema.Float:
		return "float", nil
	case *schema.Char, *schema.String:
		return "str", nil
	case *schema.Array:
		return e.sequence(t.Item)
	case *schema.Vector:
		return e.sequence(t.Item)
	}
	return className(t), nil
}

// sequence types arrays and vectors. Numeric items become numpy arrays in
// numpy mode.
func (e *emitter) sequence(item schema.Type) (string, *source.Source) {
	if e.md.PythonNumpy {
		switch it := item.(type) {
		case *schema.Int:
			prefix := "uint"
			if it.Signed {
				prefix = "int"
			}
			return fmt.Sprintf("npt.NDArray[np.%s%d]", prefix, it.Bits), e.numpy
		case *schema.Float:
			return fmt.Sprintf("npt.NDArray[np.float%d]", it.Bits), e.numpy
		}
	}
	inner, imp := e.pyType(item)
	return fmt.Sprintf("List[%s]", inner), imp
}

// Decl returns the stub of a struct or variant; containers resolve to the
// stubs of their items.
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

var declTemplates = template.Must(template.New("decls").Funcs(template.FuncMap{
	"className": className,
	"fieldName": fieldName,
	"tagConst":  tagConst,
	"sized":     schema.IsSized,
	"size":      func(t schema.Type) int { n, _ := t.Size(); return n },
}).Parse(`{{define "methods" -}}
{{if sized .Type}}    SIZE: ClassVar[int] = {{size .Type}}{{else}}    MIN_SIZE: ClassVar[int] = {{.Type.MinSize}}{{end}}

    @staticmethod
    def load(data: bytes) -> {{className .Type}}: ...
    def store(self) -> bytes: ...
    def size(self) -> int: ...
{{- end}}

{{define "struct" -}}
@dataclass
class {{className .Type}}:
{{range .Members}}    {{fieldName .Name}}: {{.Annotation}}
{{end}}{{if .Members}}
{{end}}{{template "methods" .}}
{{- end}}

{{define "variant" -}}
@dataclass
class {{className .Type}}:
{{range $i, $m := .Members}}    {{tagConst $m.Name}}: ClassVar[int] = {{$i}}
{{end}}
    tag: int
    payload: Union[{{.Payload}}]

{{template "methods" .}}
{{- end}}`))

type member struct {
	Name       schema.Name
	Annotation string
}

type declData struct {
	Type    schema.Type
	Members []member
	Payload string
}

// members resolves the annotation of every field and records the
// fragments they depend on.
func (e *emitter) members(s *source.Source, fields []schema.Field) []member {
	out := make([]member, len(fields))
	for i, f := range fields {
		typ, imp := e.pyType(f.Type)
		s.Depend(imp, e.Decl(f.Type))
		out[i] = member{Name: f.Name, Annotation: typ}
	}
	return out
}

// render executes a declaration template. The first failure is kept for
// Generate to report.
func (e *emitter) render(name string, data declData) string {
	var b strings.Builder
	if err := declTemplates.ExecuteTemplate(&b, name, data); err != nil && e.err == nil {
		e.err = fmt.Errorf("render %s %s: %w", name, data.Type.Name(), err)
	}
	return b.String()
}

func (e *emitter) structure(t *schema.Struct) *source.Source {
	s := source.New(source.Declarations, e.typing)
	s.Add(e.render("struct", declData{Type: t, Members: e.members(s, t.Fields)}))
	return s
}

func (e *emitter) variant(t *schema.Variant) *source.Source {
	s := source.New(source.Declarations, e.typing)
	members := e.members(s, t.Arms)
	arms := make([]string, len(members))
	for i, m := range members {
		arms[i] = m.Annotation
	}
	s.Add(e.render("variant", declData{
		Type:    t,
		Members: members,
		Payload: strings.Join(dedup(arms), ", "),
	}))
	return s
}

func dedup(items []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
