package cpp

import (
	"fmt"
	"strings"
	"text/template"

	cgen "github.com/Alia5/flatgen/internal/codegen/generator/c"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/internal/codegen/source"
	"github.com/Alia5/flatgen/schema"
)

// emitter builds the wrapper class of every struct and variant. Arrays,
// vectors and strings map onto standard containers handled by the runtime.
type emitter struct {
	md    *meta.Metadata
	c     cgen.Names
	try   string
	decls map[string]*source.Source
	defs  []*source.Source
	tmpl  *template.Template
	err   error
}

const declTemplates = `{{define "methods"}}    std::size_t packed_size() const;
    static Result<{{class .}}> load(Reader &r);
    static Result<{{class .}}> from_c(const ::{{ctype .}} &c);
    Result<Unit> store(Writer &w) const;
{{end}}

{{define "free" -}}
inline Result<Unit> decode(Reader &r, {{class .}} &out);
inline Result<Unit> encode(Writer &w, const {{class .}} &v);
inline std::size_t encoded_size(const {{class .}} &v);
{{- if layoutMatches .}}
static_assert(sizeof(::{{ctype .}}) == {{size .}}, "{{ctype .}} must be packed");{{end}}
{{- end}}

{{define "struct" -}}
struct {{class .}} {
{{range .Fields}}    {{cppType .Type}} {{member .Name}}{};
{{end}}{{if .Fields}}
{{end}}{{template "methods" .}}};
{{- end}}

{{define "structBody" -}}
inline std::size_t {{class .}}::packed_size() const {
{{if sized .}}    return {{size .}};
{{else}}    return {{sizeTerms .}};
{{end}}}

inline Result<{{class .}}> {{class .}}::load(Reader &r) {
    {{class .}} out;
{{range .Fields}}    {{try}}(decode(r, out.{{member .Name}}));
{{else}}    (void)r;
{{end}}    return out;
}

inline Result<Unit> {{class .}}::store(Writer &w) const {
{{range .Fields}}    {{try}}(encode(w, this->{{member .Name}}));
{{else}}    (void)w;
{{end}}    return Unit{};
}
{{- end}}

{{define "variant" -}}
struct {{class .}} {
    enum class Tag : std::uint8_t {
{{range $i, $a := .Arms}}        {{enumerator $a.Name}} = {{$i}},
{{end}}    };

    std::variant<{{armTypes .}}> arm;

    Tag tag() const { return static_cast<Tag>(arm.index()); }
{{template "methods" .}}};
{{- end}}

{{define "variantBody" -}}
inline std::size_t {{class .}}::packed_size() const {
{{if sized .}}    return {{size .}};
}
{{else}}    switch (arm.index()) {
{{range $i, $a := .Arms}}    case {{$i}}:
        return 1 + encoded_size(std::get<{{$i}}>(arm));
{{end}}    }
    return 1;
}
{{end}}
inline Result<{{class .}}> {{class .}}::load(Reader &r) {
    const std::size_t start = r.position();
    std::uint8_t type = 0;
    {{try}}(decode(r, type));
    {{class .}} out;
    switch (type) {
{{range $i, $a := .Arms}}    case {{$i}}: {
        {{cppType $a.Type}} item{};
        {{try}}(decode(r, item));
        out.arm.emplace<{{$i}}>(std::move(item));
        break;
    }
{{end}}    default:
        return IoError::InvalidData;
    }
{{if sized .}}    {{try}}(r.skip(start + {{size .}} - r.position()));
{{else}}    (void)start;
{{end}}    return out;
}

inline Result<Unit> {{class .}}::store(Writer &w) const {
    const std::size_t start = w.size();
    {{try}}(encode(w, static_cast<std::uint8_t>(arm.index())));
    switch (arm.index()) {
{{range $i, $a := .Arms}}    case {{$i}}:
        {{try}}(encode(w, std::get<{{$i}}>(arm)));
        break;
{{end}}    }
{{if sized .}}    w.pad(start + {{size .}} - w.size());
{{else}}    (void)start;
{{end}}    return Unit{};
}
{{- end}}

{{define "defs" -}}
inline Result<{{class .}}> {{class .}}::from_c(const ::{{ctype .}} &c) {
    Reader r(reinterpret_cast<const std::uint8_t *>(&c), {{sizeExpr . "&c"}});
    return load(r);
}

inline Result<Unit> decode(Reader &r, {{class .}} &out) {
    auto res = {{class .}}::load(r);
    if (auto *err = std::get_if<IoError>(&res)) {
        return *err;
    }
    out = std::move(std::get<{{class .}}>(res));
    return Unit{};
}

inline Result<Unit> encode(Writer &w, const {{class .}} &v) {
    return v.store(w);
}

inline std::size_t encoded_size(const {{class .}} &v) {
    return v.packed_size();
}
{{- end}}`

func newEmitter(md *meta.Metadata) *emitter {
	e := &emitter{
		md:    md,
		c:     cgen.NewNames(md),
		try:   macro(md.Prefix, "TRY"),
		decls: map[string]*source.Source{},
	}
	e.tmpl = template.Must(template.New("decls").Funcs(template.FuncMap{
		"class":         className,
		"cppType":       cppType,
		"member":        member,
		"enumerator":    enumerator,
		"ctype":         e.c.Type,
		"sizeExpr":      e.c.SizeExpr,
		"layoutMatches": cgen.LayoutMatches,
		"sized":         schema.IsSized,
		"size":          func(t schema.Type) int { n, _ := t.Size(); return n },
		"try":           func() string { return e.try },
		"sizeTerms":     sizeTerms,
		"armTypes":      armTypes,
	}).Parse(declTemplates))
	return e
}

// Decl returns the fragment declaring the wrapper of t, or nil when t maps
// onto a runtime type.
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
	s := source.New(source.Declarations)
	for _, f := range t.Fields {
		s.Depend(e.Decl(f.Type))
	}
	s.Add(e.render("struct", t))
	s.Add(e.render("free", t))
	e.define(s, t, e.render("structBody", t))
	return s
}

func (e *emitter) variant(t *schema.Variant) *source.Source {
	s := source.New(source.Declarations)
	for _, a := range t.Arms {
		s.Depend(e.Decl(a.Type))
	}
	s.Add(e.render("variant", t))
	s.Add(e.render("free", t))
	e.define(s, t, e.render("variantBody", t))
	return s
}

// define adds the out-of-class definitions of t, including from_c and the
// free codec overloads.
func (e *emitter) define(decl *source.Source, t schema.Type, body string) {
	defs := body + "\n\n" + e.render("defs", t)
	e.defs = append(e.defs, source.Text(source.Definitions, defs, decl))
}

// sizeTerms sums the encoded sizes of the members of an unsized struct.
func sizeTerms(t *schema.Struct) string {
	terms := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		terms[i] = fmt.Sprintf("encoded_size(this->%s)", member(f.Name))
	}
	return strings.Join(terms, " + ")
}

func armTypes(t *schema.Variant) string {
	arms := make([]string, len(t.Arms))
	for i, a := range t.Arms {
		arms[i] = cppType(a.Type)
	}
	return strings.Join(arms, ", ")
}
