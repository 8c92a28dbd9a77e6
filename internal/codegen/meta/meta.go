package meta

import (
	"fmt"
	"strings"

	"github.com/Alia5/flatgen/internal/codegen/samples"
	"github.com/Alia5/flatgen/schema"
)

// Context is the generator-wide configuration. It is set once before a run
// and only read by the emitters.
type Context struct {
	// Prefix is the C identifier prefix, C++ namespace and output file stem.
	Prefix string `json:"prefix" yaml:"prefix" toml:"prefix"`
	// Default emits default constructors for variants.
	Default bool `json:"default" yaml:"default" toml:"default"`
	// TestAttempts is the number of random samples per tested type.
	TestAttempts int `json:"testAttempts" yaml:"testAttempts" toml:"testAttempts"`
	// RNGSeed seeds sample generation.
	RNGSeed uint64 `json:"rngSeed" yaml:"rngSeed" toml:"rngSeed"`
	// PythonNumpy types numeric arrays and vectors as numpy arrays in stubs.
	PythonNumpy bool `json:"pythonNumpy" yaml:"pythonNumpy" toml:"pythonNumpy"`
}

// DefaultTestAttempts is used when Context.TestAttempts is zero.
const DefaultTestAttempts = 12

// Metadata holds everything a language generator needs.
// Shared between generator orchestrator and language-specific generators.
type Metadata struct {
	Context
	Roots   []schema.Type
	Types   []schema.Type               // closure of Roots, dependency first
	Samples map[string][]samples.Sample // tested type snake name -> samples
}

// New resolves the closure of roots and draws the samples of every tested
// type. Zero TestAttempts means DefaultTestAttempts.
func New(ctx Context, roots ...schema.Type) (*Metadata, error) {
	if ctx.TestAttempts == 0 {
		ctx.TestAttempts = DefaultTestAttempts
	}
	if ctx.TestAttempts < 0 {
		return nil, fmt.Errorf("test attempts must not be negative: %d", ctx.TestAttempts)
	}
	types, err := schema.Walk(roots...)
	if err != nil {
		return nil, fmt.Errorf("resolve types: %w", err)
	}
	if err := checkIdentifiers(types); err != nil {
		return nil, fmt.Errorf("resolve types: %w", err)
	}
	md := &Metadata{
		Context: ctx,
		Roots:   roots,
		Types:   types,
		Samples: map[string][]samples.Sample{},
	}
	for _, t := range types {
		if !samples.Wants(t) {
			continue
		}
		s, err := samples.Build(t, ctx.TestAttempts, ctx.RNGSeed)
		if err != nil {
			return nil, err
		}
		md.Samples[t.Name().Snake()] = s
	}
	return md, nil
}

// checkIdentifiers rejects distinct names that render to the same
// identifier: type names in CamelCase, variant tag constants in upper snake
// case and arm constructors in CamelCase within one variant.
func checkIdentifiers(types []schema.Type) error {
	typeNames := map[string]schema.Name{}
	tagNames := map[string]string{}
	for _, t := range types {
		name := t.Name()
		camel := name.Camel()
		if prev, ok := typeNames[camel]; ok && !prev.Equal(name) {
			return fmt.Errorf("%w: %s and %s both render as %s", schema.ErrNameCollision, prev, name, camel)
		}
		typeNames[camel] = name

		v, ok := t.(*schema.Variant)
		if !ok {
			continue
		}
		arms := map[string]schema.Name{}
		for _, arm := range v.Arms {
			ac := arm.Name.Camel()
			if prev, ok := arms[ac]; ok {
				return fmt.Errorf("%w: arms %s and %s of %s both render as %s", schema.ErrNameCollision, prev, arm.Name, name, ac)
			}
			arms[ac] = arm.Name

			owner := name.Snake() + "." + arm.Name.Snake()
			tag := strings.ToUpper(name.Snake() + "_" + arm.Name.Snake())
			if prev, ok := tagNames[tag]; ok {
				return fmt.Errorf("%w: tags %s and %s both render as %s", schema.ErrNameCollision, prev, owner, tag)
			}
			tagNames[tag] = owner
		}
	}
	return nil
}

// Tested returns the types that get conformance tests, in Types order.
func (md *Metadata) Tested() []schema.Type {
	var out []schema.Type
	for _, t := range md.Types {
		if len(md.Samples[t.Name().Snake()]) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// SamplesOf returns the samples for t.
func (md *Metadata) SamplesOf(t schema.Type) []samples.Sample {
	return md.Samples[t.Name().Snake()]
}

// Composites returns the non-primitive types of the closure.
func (md *Metadata) Composites() []schema.Type {
	var out []schema.Type
	for _, t := range md.Types {
		if !schema.IsPrimitive(t) {
			out = append(out, t)
		}
	}
	return out
}
