package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/wire"
)

var (
	i32 = schema.MustInt(32, true)
	u32 = schema.MustInt(32, false)
	u16 = schema.MustInt(16, false)
	u8  = schema.MustInt(8, false)
	e   = schema.MustStruct(schema.NewName("e"))
)

func TestStoreScenarios(t *testing.T) {
	tests := []struct {
		name    string
		typ     schema.Type
		value   any
		encoded []byte
	}{
		{
			name:    "point",
			typ:     schema.MustStruct(schema.NewName("point"), schema.F("x", i32), schema.F("y", i32)),
			value:   wire.Record{int64(1), int64(-2)},
			encoded: []byte{0x01, 0x00, 0x00, 0x00, 0xFE, 0xFF, 0xFF, 0xFF},
		},
		{
			name:    "vector of u16",
			typ:     schema.MustVector(u16),
			value:   wire.List{uint64(10), uint64(20), uint64(30)},
			encoded: []byte{0x03, 0x00, 0x0A, 0x00, 0x14, 0x00, 0x1E, 0x00},
		},
		{
			name:    "string",
			typ:     schema.NewString(),
			value:   "AB",
			encoded: []byte{0x02, 0x00, 0x41, 0x42},
		},
		{
			name: "sized variant empty arm",
			typ: schema.MustVariant(schema.NewName("v"),
				[]schema.Field{schema.F("empty", e), schema.F("value", u32)}, schema.WithSized(true)),
			value:   wire.Tagged{Tag: 0, Value: wire.Record{}},
			encoded: []byte{0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "sized variant value arm",
			typ: schema.MustVariant(schema.NewName("v"),
				[]schema.Field{schema.F("empty", e), schema.F("value", u32)}, schema.WithSized(true)),
			value:   wire.Tagged{Tag: 1, Value: uint64(42)},
			encoded: []byte{0x01, 0x2A, 0x00, 0x00, 0x00},
		},
		{
			name: "unsized variant empty arm",
			typ: schema.MustVariant(schema.NewName("u"),
				[]schema.Field{schema.F("empty", e), schema.F("data", schema.MustVector(i32))}),
			value:   wire.Tagged{Tag: 0, Value: wire.Record{}},
			encoded: []byte{0x00},
		},
		{
			name: "unsized variant data arm",
			typ: schema.MustVariant(schema.NewName("u"),
				[]schema.Field{schema.F("empty", e), schema.F("data", schema.MustVector(i32))}),
			value:   wire.Tagged{Tag: 1, Value: wire.List{int64(7)}},
			encoded: []byte{0x01, 0x01, 0x00, 0x07, 0x00, 0x00, 0x00},
		},
		{
			name:    "struct with vector tail",
			typ:     schema.MustStruct(schema.NewName("s"), schema.F("head", u8), schema.F("tail", schema.MustVector(u8))),
			value:   wire.Record{uint64(9), wire.List{uint64(1), uint64(2)}},
			encoded: []byte{0x09, 0x02, 0x00, 0x01, 0x02},
		},
		{
			name:    "empty vector",
			typ:     schema.MustVector(u32),
			value:   wire.List{},
			encoded: []byte{0x00, 0x00},
		},
		{
			name:    "empty struct",
			typ:     e,
			value:   wire.Record{},
			encoded: []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, wire.IsInstance(tt.typ, tt.value))

			got, err := wire.Store(tt.typ, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.encoded, got)
			assert.Equal(t, len(tt.encoded), wire.SizeOf(tt.typ, tt.value))

			decoded, n, err := wire.Load(tt.typ, tt.encoded)
			require.NoError(t, err)
			assert.Equal(t, len(tt.encoded), n)
			assert.True(t, wire.Equal(tt.typ, tt.value, decoded), "decoded %#v", decoded)
		})
	}
}

func TestMinSizeAndSizeOf(t *testing.T) {
	s := schema.MustStruct(schema.NewName("s"), schema.F("head", u8), schema.F("tail", schema.MustVector(u8)))
	assert.Equal(t, 3, s.MinSize())
	assert.Equal(t, 5, wire.SizeOf(s, wire.Record{uint64(9), wire.List{uint64(1), uint64(2)}}))
}

func TestLoadErrors(t *testing.T) {
	v := schema.MustVariant(schema.NewName("v"),
		[]schema.Field{schema.F("empty", e), schema.F("value", u32)}, schema.WithSized(true))
	point := schema.MustStruct(schema.NewName("point"), schema.F("x", i32), schema.F("y", i32))

	tests := []struct {
		name  string
		typ   schema.Type
		input []byte
		want  error
		kind  wire.ErrorKind
	}{
		{"tag equal to arm count", v, []byte{0x02, 0, 0, 0, 0}, wire.ErrInvalidData, wire.InvalidData},
		{"truncated struct", point, make([]byte, 7), wire.ErrUnexpectedEOF, wire.UnexpectedEOF},
		{"truncated vector header", schema.MustVector(u8), []byte{0x01}, wire.ErrUnexpectedEOF, wire.UnexpectedEOF},
		{"truncated vector body", schema.MustVector(u16), []byte{0x02, 0x00, 0x01, 0x00}, wire.ErrUnexpectedEOF, wire.UnexpectedEOF},
		{"non ascii string", schema.NewString(), []byte{0x01, 0x00, 0xC3}, wire.ErrInvalidData, wire.InvalidData},
		{"empty input for variant", v, nil, wire.ErrUnexpectedEOF, wire.UnexpectedEOF},
		{"nonzero variant padding", v, []byte{0x00, 0x00, 0x01, 0x00, 0x00}, wire.ErrInvalidData, wire.InvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := wire.Load(tt.typ, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			var ioErr *wire.IoError
			require.ErrorAs(t, err, &ioErr)
			assert.Equal(t, tt.kind, ioErr.Kind)
		})
	}
}

func TestStoreRejectsNonInstances(t *testing.T) {
	tests := []struct {
		name  string
		typ   schema.Type
		value any
	}{
		{"u8 overflow", u8, uint64(256)},
		{"wrong go type", i32, uint64(1)},
		{"non ascii", schema.NewString(), "é"},
		{"array length", schema.MustArray(u8, 2), wire.List{uint64(1)}},
		{"tag out of range", schema.MustVariant(schema.NewName("x"), []schema.Field{schema.F("a", u8)}), wire.Tagged{Tag: 1}},
		{"vector too long", schema.MustVector(u8), make(wire.List, schema.MaxVectorLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, wire.IsInstance(tt.typ, tt.value))
			_, err := wire.Store(tt.typ, tt.value)
			assert.ErrorIs(t, err, wire.ErrInvalidValue)
		})
	}
}

func TestPrefixStability(t *testing.T) {
	s := schema.MustStruct(schema.NewName("s"), schema.F("head", u8), schema.F("tail", schema.NewString()))
	valid := []byte{0x07, 0x03, 0x00, 'a', 'b', 'c'}
	withGarbage := append(append([]byte(nil), valid...), 0xFF, 0xEE, 0x00)

	a, n, err := wire.Load(s, withGarbage)
	require.NoError(t, err)
	assert.Equal(t, len(valid), n)
	b, err := wire.Decode(s, valid)
	require.NoError(t, err)

	sa, err := wire.Store(s, a)
	require.NoError(t, err)
	sb, err := wire.Store(s, b)
	require.NoError(t, err)
	assert.Equal(t, sb, sa)
	assert.Equal(t, valid, sa)
}

func TestRandomRoundTrip(t *testing.T) {
	inner := schema.MustStruct(schema.NewName("inner"),
		schema.F("f32", schema.MustFloat(32)),
		schema.F("f64", schema.MustFloat(64)),
		schema.F("c", schema.NewChar()),
		schema.F("arr", schema.MustArray(schema.MustInt(64, true), 3)),
	)
	root := schema.MustStruct(schema.NewName("root"),
		schema.F("i8", schema.MustInt(8, true)),
		schema.F("u64", schema.MustInt(64, false)),
		schema.F("inner", inner),
		schema.F("choice", schema.MustVariant(schema.NewName("choice"), []schema.Field{
			schema.F("text", schema.NewString()),
			schema.F("nums", schema.MustVector(i32)),
			schema.F("none", e),
		})),
	)

	r := wire.NewRand(42)
	for i := 0; i < 64; i++ {
		v := wire.Random(root, r)
		require.True(t, wire.IsInstance(root, v))

		b, err := wire.Store(root, v)
		require.NoError(t, err)
		assert.Equal(t, wire.SizeOf(root, v), len(b))

		back, n, err := wire.Load(root, b)
		require.NoError(t, err)
		assert.Equal(t, len(b), n)
		assert.True(t, wire.Equal(root, v, back))

		if len(b) > 0 {
			_, _, err = wire.Load(root, b[:len(b)-1])
			assert.ErrorIs(t, err, wire.ErrUnexpectedEOF)
		}
	}
}

func TestRandomIsReproducible(t *testing.T) {
	typ := schema.MustVector(schema.MustInt(16, true))
	a := wire.Random(typ, wire.NewRand(7))
	b := wire.Random(typ, wire.NewRand(7))
	assert.True(t, wire.Equal(typ, a, b))
}

func TestLoadRejectsNonzeroPadding(t *testing.T) {
	v := schema.MustVariant(schema.NewName("v"),
		[]schema.Field{schema.F("empty", e), schema.F("value", u32)}, schema.WithSized(true))

	_, _, err := wire.Load(v, []byte{0x00, 0x01, 0x00, 0x00, 0x00})
	var ioErr *wire.IoError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, wire.InvalidData, ioErr.Kind)
	assert.Equal(t, 1, ioErr.Offset)

	valid := []byte{0x00, 0x00, 0x00, 0x00, 0x00}
	got, n, err := wire.Load(v, valid)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	stored, err := wire.Store(v, got)
	require.NoError(t, err)
	assert.Equal(t, valid, stored)
}

func TestFloatNaNPayloadRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		typ   schema.Type
		input []byte
	}{
		{"signaling f32", schema.MustFloat(32), []byte{0x01, 0x00, 0x80, 0x7F}},
		{"negative quiet f32 with payload", schema.MustFloat(32), []byte{0x05, 0x00, 0xC0, 0xFF}},
		{"signaling f64", schema.MustFloat(64), []byte{0x01, 0, 0, 0, 0, 0, 0xF0, 0x7F}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := wire.Decode(tt.typ, tt.input)
			require.NoError(t, err)
			assert.True(t, wire.IsInstance(tt.typ, v))
			got, err := wire.Store(tt.typ, v)
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
			again, err := wire.Decode(tt.typ, got)
			require.NoError(t, err)
			assert.True(t, wire.Equal(tt.typ, v, again))
		})
	}
}
