package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Alia5/flatgen/codegen"
	"github.com/Alia5/flatgen/schemas"
)

type Generate struct {
	Schema       string `help:"Registered schema set to generate" default:"conformance" env:"FLATGEN_SCHEMA"`
	Prefix       string `help:"C identifier prefix, C++ namespace and output file stem" required:"" env:"FLATGEN_PREFIX"`
	Output       string `help:"Output directory" default:"./generated" env:"FLATGEN_OUTPUT"`
	Lang         string `help:"Target language: c, cpp, rust, python, or 'all'" default:"all" enum:"c,cpp,rust,python,all" env:"FLATGEN_LANG"`
	Default      bool   `help:"Emit default constructors for sized variants" env:"FLATGEN_DEFAULT"`
	TestAttempts int    `help:"Random samples per tested type" default:"12" env:"FLATGEN_TEST_ATTEMPTS"`
	Seed         uint64 `help:"Seed for sample generation" default:"0" env:"FLATGEN_SEED"`
	PythonNumpy  bool   `help:"Type numeric sequences as numpy arrays in Python stubs" env:"FLATGEN_PYTHON_NUMPY"`
	DryRun       bool   `help:"List the files that would be written without writing them"`
}

func (g *Generate) context() codegen.Context {
	return codegen.Context{
		Prefix:       g.Prefix,
		Default:      g.Default,
		TestAttempts: g.TestAttempts,
		RNGSeed:      g.Seed,
		PythonNumpy:  g.PythonNumpy,
	}
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, out io.Writer) error {
	logger.Info("Starting flatgen code generation", "schema", g.Schema, "output", g.Output, "lang", g.Lang)

	types, err := schemas.Types(g.Schema)
	if err != nil {
		return err
	}

	gen := codegen.New(logger, types...)
	var files codegen.Output
	if g.Lang == "all" {
		files, err = gen.Generate(g.context())
	} else {
		files, err = gen.GenerateLang(g.context(), g.Lang)
	}
	if err != nil {
		return err
	}

	for _, p := range files.Paths() {
		fmt.Fprintln(out, p)
	}
	if g.DryRun {
		return nil
	}
	if err := files.Write(g.Output); err != nil {
		return err
	}
	logger.Info("Wrote generated files", "files", len(files), "digest", files.Digest())
	return nil
}
