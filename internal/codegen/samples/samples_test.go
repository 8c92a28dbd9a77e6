package samples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/wire"
)

func TestBuildIsDeterministic(t *testing.T) {
	typ := schema.MustStruct(schema.NewName("pair"),
		schema.F("a", schema.MustInt(16, true)),
		schema.F("b", schema.MustVector(schema.MustInt(8, false))),
	)
	first, err := Build(typ, 10, 1)
	require.NoError(t, err)
	second, err := Build(typ, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := Build(typ, 10, 2)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	for _, s := range first {
		back, err := wire.Decode(typ, s.Bytes)
		require.NoError(t, err)
		assert.True(t, wire.Equal(typ, s.Value, back))
	}
}

func TestBuildCoversVariantBoundaries(t *testing.T) {
	v := schema.MustVariant(schema.NewName("v"), []schema.Field{
		schema.F("a", schema.MustInt(8, false)),
		schema.F("b", schema.MustInt(16, false)),
		schema.F("c", schema.MustInt(32, false)),
	})
	got, err := Build(v, 1, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Value.(wire.Tagged).Tag)
	assert.Equal(t, 2, got[1].Value.(wire.Tagged).Tag)
}

func TestBuildDeduplicatesEncodings(t *testing.T) {
	empty := schema.MustStruct(schema.NewName("e"))
	got, err := Build(empty, 8, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Empty(t, got[0].Bytes)
}

func TestSeedDependsOnName(t *testing.T) {
	a := schema.MustStruct(schema.NewName("a"))
	b := schema.MustStruct(schema.NewName("b"))
	assert.NotEqual(t, Seed(0, a), Seed(0, b))
	assert.Equal(t, Seed(5, a), Seed(5, a))
	assert.True(t, Wants(a))
	assert.False(t, Wants(schema.NewChar()))
}
