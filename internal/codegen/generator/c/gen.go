package cgen

import (
	"bytes"
	"fmt"
	"log/slog"
	"path"
	"text/template"

	"github.com/Alia5/flatgen/internal/codegen/common"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/internal/codegen/source"
)

const headerTmpl = `{{.Banner}}
#pragma once

{{.Imports}}

#ifdef __cplusplus
extern "C" {
#endif

{{.Declarations}}

#ifdef __cplusplus
}
#endif
`

const sourceTmpl = `{{.Banner}}
#include "{{.Prefix}}.h"

{{.Definitions}}
`

const testTmpl = `{{.Banner}}
#include <stdint.h>

#include "{{.Prefix}}.h"
#include "codegen_assert.h"

{{range .Prototypes}}{{.}}
{{end}}
{{.Tests}}

void {{.TestAll}}(void) {
{{range .Calls}}    {{.}}();
{{end}}}
`

var (
	headerTemplate = template.Must(template.New("header").Parse(headerTmpl))
	sourceTemplate = template.Must(template.New("source").Parse(sourceTmpl))
	testTemplate   = template.Must(template.New("test").Parse(testTmpl))
)

// Generate renders the C files: the packed declarations with size function
// prototypes, their definitions, the conformance tests and a CMake project.
func Generate(logger *slog.Logger, md *meta.Metadata) (map[string]string, error) {
	e := newEmitter(md)
	var decls []*source.Source
	for _, t := range md.Types {
		decls = append(decls, e.Decl(t))
	}
	var tests []*source.Source
	var names, prototypes []string
	for _, t := range md.Tested() {
		tests = append(tests, e.test(t))
		names = append(names, e.names.TestFunc(t))
		prototypes = append(prototypes, fmt.Sprintf("void %s(void);", e.names.TestFunc(t)))
	}
	prototypes = append(prototypes, fmt.Sprintf("void %s(void);", e.names.TestAll()))
	if e.err != nil {
		return nil, e.err
	}

	banner := common.FileHeader("//", "C")
	files := map[string]string{}
	render := func(name string, tmpl *template.Template, data any) error {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("execute %s template: %w", name, err)
		}
		files[name] = buf.String()
		logger.Debug("Rendered C file", "file", name, "bytes", buf.Len())
		return nil
	}

	header := path.Join("c", "include", md.Prefix+".h")
	if err := render(header, headerTemplate, map[string]any{
		"Banner":       banner,
		"Imports":      source.Render(source.Imports, "\n", decls...),
		"Declarations": source.Render(source.Declarations, "\n\n", decls...),
	}); err != nil {
		return nil, err
	}
	if err := render(path.Join("c", "src", md.Prefix+".c"), sourceTemplate, map[string]any{
		"Banner":      banner,
		"Prefix":      md.Prefix,
		"Definitions": source.Render(source.Definitions, "\n\n", e.defs...),
	}); err != nil {
		return nil, err
	}
	if err := render(path.Join("c", "src", "test.c"), testTemplate, map[string]any{
		"Banner":     banner,
		"Prefix":     md.Prefix,
		"Prototypes": prototypes,
		"Tests":      source.Render(source.Tests, "\n\n", tests...),
		"TestAll":    e.names.TestAll(),
		"Calls":      names,
	}); err != nil {
		return nil, err
	}
	if err := render(path.Join("c", "CMakeLists.txt"), cmakeTemplate, cmakeData{Prefix: md.Prefix}); err != nil {
		return nil, err
	}

	logger.Info("Generated C sources", "types", len(md.Types), "tests", len(names))
	return files, nil
}
