package codegen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/flatgen/codegen"
	"github.com/Alia5/flatgen/schema"
)

func types() []schema.Type {
	e := schema.MustStruct(schema.NewName("e"))
	point := schema.MustStruct(schema.NewName("point"),
		schema.F("x", schema.MustInt(32, true)),
		schema.F("y", schema.MustInt(32, true)),
	)
	u := schema.MustVariant(schema.NewName("u"), []schema.Field{
		schema.F("empty", e),
		schema.F("data", schema.MustVector(schema.MustInt(32, false))),
		schema.F("where", point),
	})
	return []schema.Type{point, u}
}

func TestGenerateFileSet(t *testing.T) {
	out, err := codegen.New(nil, types()...).Generate(codegen.Context{Prefix: "proto"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"c/CMakeLists.txt",
		"c/include/proto.h",
		"c/src/proto.c",
		"c/src/test.c",
		"cpp/include/proto.hpp",
		"cpp/src/test.cpp",
		"proto.pyi",
		"rust/Cargo.toml",
		"rust/build.rs",
		"rust/src/lib.rs",
		"rust/src/proto.rs",
		"rust/src/tests.rs",
	}, out.Paths())
}

func TestGenerateIsDeterministic(t *testing.T) {
	ctx := codegen.Context{Prefix: "proto", TestAttempts: 6, RNGSeed: 42}
	first, err := codegen.New(nil, types()...).Generate(ctx)
	require.NoError(t, err)
	second, err := codegen.New(nil, types()...).Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, first.Digest(), second.Digest())

	ctx.RNGSeed = 43
	third, err := codegen.New(nil, types()...).Generate(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.Digest(), third.Digest())
}

func TestGenerateLang(t *testing.T) {
	out, err := codegen.New(nil, types()...).GenerateLang(codegen.Context{Prefix: "proto"}, "python")
	require.NoError(t, err)
	assert.Equal(t, []string{"proto.pyi"}, out.Paths())

	_, err = codegen.New(nil, types()...).GenerateLang(codegen.Context{Prefix: "proto"}, "go")
	assert.ErrorIs(t, err, codegen.ErrUnknownLanguage)
	assert.Equal(t, []string{"c", "cpp", "python", "rust"}, codegen.Languages())
}

func TestGenerateRejectsBadPrefix(t *testing.T) {
	for _, prefix := range []string{"", "1proto", "my-proto", "a b"} {
		t.Run(prefix, func(t *testing.T) {
			_, err := codegen.New(nil, types()...).Generate(codegen.Context{Prefix: prefix})
			assert.ErrorIs(t, err, codegen.ErrNoPrefix)
		})
	}
}

func TestGenerateRejectsCollisions(t *testing.T) {
	a := schema.MustStruct(schema.NewName("thing"), schema.F("x", schema.NewChar()))
	b := schema.MustStruct(schema.NewName("thing"), schema.F("y", schema.NewChar()))
	_, err := codegen.New(nil, a, b).Generate(codegen.Context{Prefix: "proto"})
	assert.ErrorIs(t, err, schema.ErrNameCollision)
}

func TestOutputWrite(t *testing.T) {
	out := codegen.Output{
		"c/include/p.h": "header",
		"p.pyi":         "stub",
	}
	dir := t.TempDir()
	require.NoError(t, out.Write(dir))

	got, err := os.ReadFile(filepath.Join(dir, "c", "include", "p.h"))
	require.NoError(t, err)
	assert.Equal(t, "header", string(got))
	got, err = os.ReadFile(filepath.Join(dir, "p.pyi"))
	require.NoError(t, err)
	assert.Equal(t, "stub", string(got))
}

func TestOutputDigest(t *testing.T) {
	a := codegen.Output{"x": "ab", "y": "c"}
	b := codegen.Output{"x": "a", "y": "bc"}
	assert.NotEqual(t, a.Digest(), b.Digest())
	assert.Equal(t, a.Digest(), codegen.Output{"y": "c", "x": "ab"}.Digest())
	assert.Len(t, a.Digest(), 64)
}

func TestGenerateRejectsRenderedCollisions(t *testing.T) {
	a := schema.MustStruct(schema.NewName("v", "2"))
	b := schema.MustStruct(schema.ParseName("v2"))
	_, err := codegen.New(nil, a, b).Generate(codegen.Context{Prefix: "p"})
	assert.ErrorIs(t, err, schema.ErrNameCollision)
}
