package wire

import (
	"math"
	"math/rand/v2"

	"github.com/Alia5/flatgen/schema"
)

// MaxRandomLen bounds the length of random vectors and strings.
const MaxRandomLen = 8

// NewRand returns the reproducible generator used for sampling.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Random draws a value of t from r. Chars are printable ASCII and floats
// are finite so every sample can be written as a source literal.
func Random(t schema.Type, r *rand.Rand) any {
	switch t := t.(type) {
	case *schema.Int:
		raw := r.Uint64()
		if t.Bits < 64 {
			raw &= unsignedMax(t.Bits)
		}
		if t.Signed {
			shift := 64 - t.Bits
			return int64(raw<<shift) >> shift
		}
		return raw
	case *schema.Float:
		x := math.Ldexp(r.Float64()*2-1, r.IntN(48)-24)
		if t.Bits == 32 {
			return float64(float32(x))
		}
		return x
	case *schema.Char:
		return randomChar(r)
	case *schema.String:
		b := make([]byte, r.IntN(MaxRandomLen+1))
		for i := range b {
			b[i] = randomChar(r)
		}
		return string(b)
	case *schema.Array:
		return randomItems(t.Item, t.Len, r)
	case *schema.Vector:
		return randomItems(t.Item, r.IntN(MaxRandomLen+1), r)
	case *schema.Struct:
		rec := make(Record, len(t.Fields))
		for i, f := range t.Fields {
			rec[i] = Random(f.Type, r)
		}
		return rec
	case *schema.Variant:
		return RandomArm(t, r.IntN(len(t.Arms)), r)
	}
	return nil
}

// RandomArm draws a variant value with a fixed tag.
func RandomArm(t *schema.Variant, tag int, r *rand.Rand) Tagged {
	return Tagged{Tag: tag, Value: Random(t.Arms[tag].Type, r)}
}

func randomChar(r *rand.Rand) byte {
	return byte(0x20 + r.IntN(0x7F-0x20))
}

func randomItems(item schema.Type, n int, r *rand.Rand) List {
	l := make(List, n)
	for i := range l {
		l[i] = Random(item, r)
	}
	return l
}
