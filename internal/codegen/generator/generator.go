package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"

	cgen "github.com/Alia5/flatgen/internal/codegen/generator/c"
	"github.com/Alia5/flatgen/internal/codegen/generator/cpp"
	"github.com/Alia5/flatgen/internal/codegen/generator/python"
	"github.com/Alia5/flatgen/internal/codegen/generator/rust"
	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/schema"
)

var (
	ErrNoPrefix        = errors.New("prefix must be a C identifier")
	ErrUnknownLanguage = errors.New("unsupported language")
)

// LanguageGenerator renders the files of one target language, keyed by
// path relative to the output root.
type LanguageGenerator func(logger *slog.Logger, md *meta.Metadata) (map[string]string, error)

var generators = map[string]LanguageGenerator{
	"c":      cgen.Generate,
	"cpp":    cpp.Generate,
	"rust":   rust.Generate,
	"python": python.Generate,
}

var prefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Languages returns the supported target languages in a stable order.
func Languages() []string {
	return slices.Sorted(maps.Keys(generators))
}

type Generator struct {
	logger *slog.Logger
	types  []schema.Type
}

func New(logger *slog.Logger, types ...schema.Type) *Generator {
	return &Generator{
		logger: logger,
		types:  types,
	}
}

// GenAll renders every language into one file map.
func (g *Generator) GenAll(ctx meta.Context) (map[string]string, error) {
	return g.GenerateLang(ctx, Languages()...)
}

// GenerateLang renders the given languages into one file map.
func (g *Generator) GenerateLang(ctx meta.Context, langs ...string) (map[string]string, error) {
	for _, lang := range langs {
		if _, ok := generators[lang]; !ok {
			return nil, fmt.Errorf("%w '%s' (supported: %v)", ErrUnknownLanguage, lang, Languages())
		}
	}

	md, err := g.Metadata(ctx)
	if err != nil {
		return nil, err
	}

	out := map[string]string{}
	for _, lang := range langs {
		g.logger.Info("Generating bindings", "language", lang, "prefix", md.Prefix)
		files, err := generators[lang](g.logger, md)
		if err != nil {
			return nil, fmt.Errorf("generate %s bindings: %w", lang, err)
		}
		maps.Copy(out, files)
	}
	return out, nil
}

// Metadata validates ctx and resolves the type closure and test samples.
func (g *Generator) Metadata(ctx meta.Context) (*meta.Metadata, error) {
	if !prefixPattern.MatchString(ctx.Prefix) {
		return nil, fmt.Errorf("%w: %q", ErrNoPrefix, ctx.Prefix)
	}

	g.logger.Debug("Resolving types", "roots", len(g.types))
	md, err := meta.New(ctx, g.types...)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Resolved types", "types", len(md.Types), "tested", len(md.Tested()))
	return md, nil
}
