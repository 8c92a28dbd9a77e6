// Package codegen turns a set of schema types into C, C++, Rust and Python
// bindings plus conformance tests. Generation is pure: the same types and
// Context always produce the same Output. Writing it is a separate step.
package codegen

import (
	"io"
	"log/slog"

	"github.com/Alia5/flatgen/internal/codegen/generator"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/schema"
)

// Context configures one generation run.
type Context = meta.Context

// DefaultTestAttempts is the sample count used when Context.TestAttempts is zero.
const DefaultTestAttempts = meta.DefaultTestAttempts

var (
	ErrNoPrefix        = generator.ErrNoPrefix
	ErrUnknownLanguage = generator.ErrUnknownLanguage
)

// Languages lists the supported target languages.
func Languages() []string {
	return generator.Languages()
}

// Generator renders bindings for a fixed list of root types. Siblings keep
// the order given here.
type Generator struct {
	gen *generator.Generator
}

// New creates a Generator. A nil logger discards records.
func New(logger *slog.Logger, types ...schema.Type) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{gen: generator.New(logger, types...)}
}

// Generate renders every language.
func (g *Generator) Generate(ctx Context) (Output, error) {
	files, err := g.gen.GenAll(ctx)
	if err != nil {
		return nil, err
	}
	return Output(files), nil
}

// GenerateLang renders only the given languages.
func (g *Generator) GenerateLang(ctx Context, langs ...string) (Output, error) {
	files, err := g.gen.GenerateLang(ctx, langs...)
	if err != nil {
		return nil, err
	}
	return Output(files), nil
}
