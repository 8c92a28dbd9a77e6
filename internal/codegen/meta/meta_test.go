package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/flatgen/schema"
)

func TestNewResolvesClosureAndSamples(t *testing.T) {
	e := schema.MustStruct(schema.NewName("e"))
	u := schema.MustVariant(schema.NewName("u"), []schema.Field{
		schema.F("empty", e),
		schema.F("data", schema.MustVector(schema.MustInt(32, false))),
	})

	md, err := New(Context{Prefix: "proto", RNGSeed: 3}, u)
	require.NoError(t, err)
	assert.Equal(t, DefaultTestAttempts, md.TestAttempts)

	var names []string
	for _, typ := range md.Types {
		names = append(names, typ.Name().Snake())
	}
	assert.Equal(t, []string{"e", "uint32", "vector_uint32", "u"}, names)

	var tested []string
	for _, typ := range md.Tested() {
		tested = append(tested, typ.Name().Snake())
	}
	assert.Equal(t, []string{"e", "vector_uint32", "u"}, tested)
	assert.Len(t, md.Composites(), 3)
	assert.Len(t, md.SamplesOf(e), 1)
	assert.Empty(t, md.SamplesOf(schema.MustInt(32, false)))
}

func TestNewRejects(t *testing.T) {
	_, err := New(Context{Prefix: "p", TestAttempts: -1})
	assert.Error(t, err)

	a := schema.MustStruct(schema.NewName("a"))
	b := schema.MustStruct(schema.NewName("a"), schema.F("x", schema.NewChar()))
	_, err = New(Context{Prefix: "p"}, a, b)
	assert.ErrorIs(t, err, schema.ErrNameCollision)
}

func TestNewRejectsRenderedCollisions(t *testing.T) {
	e := schema.MustStruct(schema.NewName("e"))
	tests := []struct {
		name  string
		roots []schema.Type
	}{
		{
			name: "type names",
			roots: []schema.Type{
				schema.MustStruct(schema.NewName("v", "2")),
				schema.MustStruct(schema.ParseName("v2")),
			},
		},
		{
			name: "arm constructors",
			roots: []schema.Type{
				schema.MustVariant(schema.NewName("u"), []schema.Field{
					schema.F("a_1", e),
					schema.F("a1", e),
				}),
			},
		},
		{
			name: "tag constants",
			roots: []schema.Type{
				schema.MustVariant(schema.ParseName("a_b"), []schema.Field{schema.F("c", e)}),
				schema.MustVariant(schema.NewName("a"), []schema.Field{schema.F("b_c", e)}),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Context{Prefix: "p"}, tt.roots...)
			assert.ErrorIs(t, err, schema.ErrNameCollision)
		})
	}
}

func TestNewAcceptsDistinctIdentifiers(t *testing.T) {
	e := schema.MustStruct(schema.NewName("e"))
	a := schema.MustVariant(schema.NewName("a"), []schema.Field{schema.F("b", e), schema.F("c", e)})
	ab := schema.MustVariant(schema.ParseName("a_b"), []schema.Field{schema.F("d", e)})
	_, err := New(Context{Prefix: "p"}, a, ab)
	assert.NoError(t, err)
}
