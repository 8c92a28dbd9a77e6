package cpp

import (
	"bytes"
	"fmt"
	"log/slog"
	"path"
	"text/template"

	"github.com/Alia5/flatgen/internal/codegen/common"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/internal/codegen/source"
	"github.com/Alia5/flatgen/schema"
)

const headerTmpl = `{{.Banner}}
#pragma once

#include <array>
#include <cstddef>
#include <cstdint>
#include <cstring>
#include <string>
#include <type_traits>
#include <utility>
#include <variant>
#include <vector>

#include "{{.Prefix}}.h"

namespace {{.Namespace}} {

{{.Runtime}}

{{.Declarations}}

{{.Definitions}}

} // namespace {{.Namespace}}
`

const testTmpl = `{{.Banner}}
#include <cstddef>
#include <cstdint>
#include <cstring>
#include <string>

#include "{{.Prefix}}.hpp"
#include "codegen_assert.h"

extern "C" {
{{range .CTests}}void {{.}}(void);
{{end}}}

namespace {{.Namespace}} {
namespace tests {

{{.Tests}}

void test_all() {
{{range .Calls}}    {{.}}();
{{end}}}

} // namespace tests
} // namespace {{.Namespace}}
`

var (
	headerTemplate = template.Must(template.New("header").Parse(headerTmpl))
	testTemplate   = template.Must(template.New("test").Parse(testTmpl))
)

// Generate renders the header-only C++ wrapper in namespace Prefix and its
// conformance tests.
func Generate(logger *slog.Logger, md *meta.Metadata) (map[string]string, error) {
	e := newEmitter(md)
	var decls []*source.Source
	for _, t := range md.Types {
		decls = append(decls, e.Decl(t))
	}
	var tests []*source.Source
	var calls, ctests []string
	for _, t := range md.Tested() {
		tests = append(tests, e.test(t))
		calls = append(calls, testFunc(t))
		if !schema.IsEmpty(t) {
			ctests = append(ctests, e.c.TestFunc(t))
		}
	}

	if e.err != nil {
		return nil, e.err
	}

	var runtime bytes.Buffer
	if err := runtimeTmpl.Execute(&runtime, runtimeData{
		Namespace: md.Prefix,
		Try:       e.try,
		MaxLen:    schema.MaxVectorLen,
		Header:    schema.VectorHeaderSize,
	}); err != nil {
		return nil, fmt.Errorf("execute runtime template: %w", err)
	}

	banner := common.FileHeader("//", "C++")
	files := map[string]string{}
	render := func(name string, tmpl *template.Template, data any) error {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("execute %s template: %w", name, err)
		}
		files[name] = buf.String()
		logger.Debug("Rendered C++ file", "file", name, "bytes", buf.Len())
		return nil
	}

	if err := render(path.Join("cpp", "include", md.Prefix+".hpp"), headerTemplate, map[string]any{
		"Banner":       banner,
		"Prefix":       md.Prefix,
		"Namespace":    md.Prefix,
		"Runtime":      runtime.String(),
		"Declarations": source.Render(source.Declarations, "\n\n", decls...),
		"Definitions":  source.Render(source.Definitions, "\n\n", e.defs...),
	}); err != nil {
		return nil, err
	}
	if err := render(path.Join("cpp", "src", "test.cpp"), testTemplate, map[string]any{
		"Banner":    banner,
		"Prefix":    md.Prefix,
		"Namespace": md.Prefix,
		"CTests":    ctests,
		"Tests":     source.Render(source.Tests, "\n\n", tests...),
		"Calls":     calls,
	}); err != nil {
		return nil, err
	}

	logger.Info("Generated C++ sources", "types", len(md.Types), "tests", len(calls))
	return files, nil
}
