// Package wire is the reference implementation of the packed little-endian
// wire format described by a schema.
//
// Values are plain Go data:
//
//	*schema.Int (unsigned)  uint64
//	*schema.Int (signed)    int64
//	*schema.Float           float64
//	*schema.Char            byte
//	*schema.Array/Vector    List
//	*schema.String          string
//	*schema.Struct          Record, one entry per field
//	*schema.Variant         Tagged
//
// Load never panics on arbitrary input; malformed bytes are reported as an
// *IoError.
package wire

import (
	"math"

	"github.com/Alia5/flatgen/schema"
)

// List holds array and vector items.
type List []any

// Record holds struct field values in declaration order.
type Record []any

// Tagged is a variant value: the arm index and its payload.
type Tagged struct {
	Tag   int
	Value any
}

// IsInstance reports whether v belongs to the value domain of t.
func IsInstance(t schema.Type, v any) bool {
	switch t := t.(type) {
	case *schema.Int:
		if t.Signed {
			x, ok := v.(int64)
			if !ok {
				return false
			}
			lo, hi := signedRange(t.Bits)
			return x >= lo && x <= hi
		}
		x, ok := v.(uint64)
		return ok && x <= unsignedMax(t.Bits)
	case *schema.Float:
		x, ok := v.(float64)
		if !ok {
			return false
		}
		if t.Bits == 32 && !math.IsNaN(x) {
			return float64(float32(x)) == x
		}
		return true
	case *schema.Char:
		x, ok := v.(byte)
		return ok && x < 0x80
	case *schema.String:
		s, ok := v.(string)
		return ok && len(s) <= schema.MaxVectorLen && isASCII([]byte(s))
	case *schema.Array:
		l, ok := v.(List)
		return ok && len(l) == t.Len && allInstances(t.Item, l)
	case *schema.Vector:
		l, ok := v.(List)
		return ok && len(l) <= schema.MaxVectorLen && allInstances(t.Item, l)
	case *schema.Struct:
		r, ok := v.(Record)
		if !ok || len(r) != len(t.Fields) {
			return false
		}
		for i, f := range t.Fields {
			if !IsInstance(f.Type, r[i]) {
				return false
			}
		}
		return true
	case *schema.Variant:
		tv, ok := v.(Tagged)
		return ok && tv.Tag >= 0 && tv.Tag < len(t.Arms) && IsInstance(t.Arms[tv.Tag].Type, tv.Value)
	}
	return false
}

// SizeOf returns the exact encoded length of v. The value must be an
// instance of t.
func SizeOf(t schema.Type, v any) int {
	if size, ok := t.Size(); ok {
		return size
	}
	switch t := t.(type) {
	case *schema.String:
		s, _ := v.(string)
		return schema.VectorHeaderSize + len(s)
	case *schema.Vector:
		l, _ := v.(List)
		size, _ := t.Item.Size()
		return schema.VectorHeaderSize + size*len(l)
	case *schema.Struct:
		r, _ := v.(Record)
		last := len(t.Fields) - 1
		return t.Offsets()[last] + SizeOf(t.Fields[last].Type, r[last])
	case *schema.Variant:
		tv, _ := v.(Tagged)
		return 1 + SizeOf(t.Arms[tv.Tag].Type, tv.Value)
	}
	return t.MinSize()
}

// Equal reports structural equality of two values of t. Floats compare by
// bit pattern so NaN payloads round-trip.
func Equal(t schema.Type, a, b any) bool {
	switch t := t.(type) {
	case *schema.Float:
		x, ok1 := a.(float64)
		y, ok2 := b.(float64)
		if !ok1 || !ok2 {
			return false
		}
		if t.Bits == 32 {
			return narrow32(x) == narrow32(y)
		}
		return math.Float64bits(x) == math.Float64bits(y)
	case *schema.Array, *schema.Vector:
		x, ok1 := a.(List)
		y, ok2 := b.(List)
		if !ok1 || !ok2 || len(x) != len(y) {
			return false
		}
		item := itemOf(t)
		for i := range x {
			if !Equal(item, x[i], y[i]) {
				return false
			}
		}
		return true
	case *schema.Struct:
		x, ok1 := a.(Record)
		y, ok2 := b.(Record)
		if !ok1 || !ok2 || len(x) != len(y) || len(x) != len(t.Fields) {
			return false
		}
		for i, f := range t.Fields {
			if !Equal(f.Type, x[i], y[i]) {
				return false
			}
		}
		return true
	case *schema.Variant:
		x, ok1 := a.(Tagged)
		y, ok2 := b.(Tagged)
		if !ok1 || !ok2 || x.Tag != y.Tag || x.Tag < 0 || x.Tag >= len(t.Arms) {
			return false
		}
		return Equal(t.Arms[x.Tag].Type, x.Value, y.Value)
	}
	return a == b
}

func itemOf(t schema.Type) schema.Type {
	switch t := t.(type) {
	case *schema.Array:
		return t.Item
	case *schema.Vector:
		return t.Item
	case *schema.String:
		return t.Item()
	}
	return nil
}

func allInstances(item schema.Type, l List) bool {
	for _, x := range l {
		if !IsInstance(item, x) {
			return false
		}
	}
	return true
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

func signedRange(bits int) (int64, int64) {
	if bits == 64 {
		return math.MinInt64, math.MaxInt64
	}
	hi := int64(1)<<(bits-1) - 1
	return -hi - 1, hi
}

func unsignedMax(bits int) uint64 {
	if bits == 64 {
		return math.MaxUint64
	}
	return uint64(1)<<bits - 1
}
