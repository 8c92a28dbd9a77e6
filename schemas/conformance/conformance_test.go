package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/schemas"
	"github.com/Alia5/flatgen/wire"
)

func TestRegistered(t *testing.T) {
	assert.Contains(t, schemas.List(), "conformance")
	types, err := schemas.Types("conformance")
	require.NoError(t, err)

	closure, err := schema.Walk(types...)
	require.NoError(t, err)
	kinds := map[string]bool{}
	for _, ty := range closure {
		kinds[schema.Kind(ty)] = true
	}
	for _, k := range []string{"int", "float", "char", "array", "vector", "string", "struct", "variant"} {
		assert.True(t, kinds[k], "missing %s", k)
	}
}

func TestKnownEncodings(t *testing.T) {
	tests := []struct {
		name string
		typ  schema.Type
		val  any
		want []byte
	}{
		{"point", Point, wire.Record{int64(1), int64(-2)}, []byte{0x01, 0, 0, 0, 0xFE, 0xFF, 0xFF, 0xFF}},
		{"s", S, wire.Record{uint64(9), wire.List{uint64(1), uint64(2)}}, []byte{9, 2, 0, 1, 2}},
		{"v empty", V, wire.Tagged{Tag: 0, Value: wire.Record{}}, []byte{0, 0, 0, 0, 0}},
		{"v value", V, wire.Tagged{Tag: 1, Value: uint64(42)}, []byte{1, 0x2A, 0, 0, 0}},
		{"u empty", U, wire.Tagged{Tag: 0, Value: wire.Record{}}, []byte{0}},
		{"u data", U, wire.Tagged{Tag: 1, Value: wire.List{uint64(7)}}, []byte{1, 1, 0, 7, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wire.Store(tt.typ, tt.val)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := wire.Decode(tt.typ, got)
			require.NoError(t, err)
			assert.True(t, wire.Equal(tt.typ, tt.val, back))
		})
	}
}
