// Package conformance registers the "conformance" schema set: small types
// with known encodings plus one of every construct.
package conformance

import (
	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/schemas"
)

func init() {
	schemas.Register("conformance", Types)
}

var (
	E     = schema.MustStruct(schema.NewName("e"))
	Point = schema.MustStruct(schema.NewName("point"),
		schema.F("x", schema.MustInt(32, true)),
		schema.F("y", schema.MustInt(32, true)),
	)
	S = schema.MustStruct(schema.NewName("s"),
		schema.F("head", schema.MustInt(8, false)),
		schema.F("tail", schema.MustVector(schema.MustInt(8, false))),
	)
	V = schema.MustVariant(schema.NewName("v"), []schema.Field{
		schema.F("empty", E),
		schema.F("value", schema.MustInt(32, false)),
	}, schema.WithSized(true))
	U = schema.MustVariant(schema.NewName("u"), []schema.Field{
		schema.F("empty", E),
		schema.F("data", schema.MustVector(schema.MustInt(32, false))),
	})
)

// Types builds the set. The fixed types above come first so their tests
// keep stable names across releases.
func Types() ([]schema.Type, error) {
	types := []schema.Type{E, Point, S, V, U}

	header, err := schema.NewStruct(schema.NewName("header"),
		schema.F("magic", schema.MustArray(schema.NewChar(), 4)),
		schema.F("version", schema.MustInt(16, false)),
		schema.F("flags", schema.MustInt(8, true)),
		schema.F("serial", schema.MustInt(64, false)),
		schema.F("offset", schema.MustInt(64, true)),
	)
	if err != nil {
		return nil, err
	}
	reading, err := schema.NewStruct(schema.NewName("reading"),
		schema.F("gain", schema.MustFloat(32)),
		schema.F("value", schema.MustFloat(64)),
		schema.F("bias", schema.MustArray(schema.MustInt(16, true), 3)),
	)
	if err != nil {
		return nil, err
	}
	shape, err := schema.NewVariant(schema.NewName("shape"), []schema.Field{
		schema.F("point", Point),
		schema.F("path", schema.MustVector(Point)),
		schema.F("label", schema.NewString()),
	})
	if err != nil {
		return nil, err
	}
	flag, err := schema.NewVariant(schema.NewName("flag"), []schema.Field{
		schema.F("off", E),
		schema.F("on", E),
		schema.F("level", schema.MustInt(8, false)),
	})
	if err != nil {
		return nil, err
	}
	record, err := schema.NewStruct(schema.NewName("record"),
		schema.F("header", header),
		schema.F("readings", schema.MustArray(reading, 2)),
		schema.F("flag", flag),
		schema.F("name", schema.NewString()),
	)
	if err != nil {
		return nil, err
	}
	batch, err := schema.NewStruct(schema.NewName("batch"),
		schema.F("count", schema.MustInt(32, false)),
		schema.F("shape", shape),
	)
	if err != nil {
		return nil, err
	}

	return append(types, record, batch), nil
}
