package python

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/Alia5/flatgen/internal/codegen/common"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/internal/codegen/source"
)

var stubTemplate = template.Must(template.New("stub").Parse(`{{.Banner}}
{{.Imports}}


{{.Declarations}}
`))

// Generate renders the typed stubs P.pyi.
func Generate(logger *slog.Logger, md *meta.Metadata) (map[string]string, error) {
	e := newEmitter(md)
	decls := []*source.Source{source.New(source.Declarations, e.typing)}
	for _, t := range md.Types {
		decls = append(decls, e.Decl(t))
	}
	if e.err != nil {
		return nil, e.err
	}

	var buf bytes.Buffer
	if err := stubTemplate.Execute(&buf, map[string]any{
		"Banner":       common.FileHeader("#", "Python"),
		"Imports":      source.Render(source.Imports, "\n", decls...),
		"Declarations": source.Render(source.Declarations, "\n\n\n", decls...),
	}); err != nil {
		return nil, fmt.Errorf("execute stub template: %w", err)
	}

	name := md.Prefix + ".pyi"
	logger.Info("Generated Python stubs", "file", name, "types", len(md.Types))
	return map[string]string{name: buf.String()}, nil
}
