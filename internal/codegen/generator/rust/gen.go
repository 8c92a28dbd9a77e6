package rust

import (
	"bytes"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"text/template"

	"github.com/Alia5/flatgen/internal/codegen/common"
	cgen "github.com/Alia5/flatgen/internal/codegen/generator/c"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/internal/codegen/source"
	"github.com/Alia5/flatgen/schema"
)

const protoTmpl = `{{.Banner}}
#![allow(dead_code)]

use flatty::{make_flat, portable::le::*, FlatVec};

{{.Declarations}}
`

const testsTmpl = `{{.Banner}}
#![allow(unused_imports)]

use super::proto::*;
use flatty::{
    portable::{le::*, NativeCast},
    prelude::*,
    FlatVec,
};

extern "C" {
{{range .CTests}}    fn {{.}}();
{{end}}}

{{.Tests}}
`

var (
	protoTemplate = template.Must(template.New("proto").Parse(protoTmpl))
	testsTemplate = template.Must(template.New("tests").Parse(testsTmpl))
)

// Generate renders the flatty declarations, their in-place decoding tests
// and a crate linking the C sources.
func Generate(logger *slog.Logger, md *meta.Metadata) (map[string]string, error) {
	version, err := common.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	e := newEmitter()
	var decls []*source.Source
	for _, t := range md.Types {
		decls = append(decls, e.Decl(t))
	}
	if e.err != nil {
		return nil, e.err
	}
	x := &tester{md: md, c: cgen.NewNames(md), decls: e}
	var tests []*source.Source
	var ctests []string
	for _, t := range md.Tested() {
		tests = append(tests, x.test(t))
		if !schema.IsEmpty(t) {
			ctests = append(ctests, x.c.TestFunc(t))
		}
	}

	banner := common.FileHeader("//", "Rust")
	files := map[string]string{}
	render := func(name string, tmpl *template.Template, data any) error {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("execute %s template: %w", name, err)
		}
		files[name] = buf.String()
		logger.Debug("Rendered Rust file", "file", name, "bytes", buf.Len())
		return nil
	}

	project := projectData{
		Banner:  banner,
		Crate:   strings.ReplaceAll(common.ToSnakeCase(md.Prefix), "_", "-"),
		Prefix:  md.Prefix,
		Version: version,
	}
	steps := []struct {
		name string
		tmpl *template.Template
		data any
	}{
		{path.Join("rust", "src", "proto.rs"), protoTemplate, map[string]any{
			"Banner":       banner,
			"Declarations": source.Render(source.Declarations, "\n\n", decls...),
		}},
		{path.Join("rust", "src", "tests.rs"), testsTemplate, map[string]any{
			"Banner": banner,
			"CTests": ctests,
			"Tests":  source.Render(source.Tests, "\n\n", tests...),
		}},
		{path.Join("rust", "src", "lib.rs"), libTemplate, project},
		{path.Join("rust", "build.rs"), buildTemplate, project},
		{path.Join("rust", "Cargo.toml"), cargoTomlTemplate, project},
	}
	for _, s := range steps {
		if err := render(s.name, s.tmpl, s.data); err != nil {
			return nil, err
		}
	}

	logger.Info("Generated Rust sources", "types", len(md.Types), "tests", len(tests))
	return files, nil
}
