// Package samples draws the ground-truth values that the emitted
// conformance tests decode and compare.
package samples

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/wire"
)

// Sample is one value with its host encoding.
type Sample struct {
	Value any
	Bytes []byte
}

// Seed derives the per-type seed so adding a type does not reshuffle the
// samples of the others.
func Seed(base uint64, t schema.Type) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], base)
	h := blake2b.Sum256(append(buf[:], t.Name().Snake()...))
	return binary.LittleEndian.Uint64(h[:8])
}

// Build returns up to attempts samples of t. Variants always include their
// first and last arm. Samples with equal encodings are kept once.
func Build(t schema.Type, attempts int, base uint64) ([]Sample, error) {
	r := wire.NewRand(Seed(base, t))

	var values []any
	if v, ok := t.(*schema.Variant); ok {
		values = append(values, wire.RandomArm(v, 0, r))
		if n := len(v.Arms); n > 1 {
			values = append(values, wire.RandomArm(v, n-1, r))
		}
	}
	for len(values) < attempts {
		values = append(values, wire.Random(t, r))
	}

	var out []Sample
	for _, v := range values {
		b, err := wire.Store(t, v)
		if err != nil {
			return nil, fmt.Errorf("store sample of %s: %w", t.Name().Snake(), err)
		}
		if contains(out, b) {
			continue
		}
		out = append(out, Sample{Value: v, Bytes: b})
	}
	return out, nil
}

// Wants reports whether t gets conformance tests. Primitives are covered
// through the composites that contain them.
func Wants(t schema.Type) bool {
	return !schema.IsPrimitive(t)
}

func contains(samples []Sample, b []byte) bool {
	for _, s := range samples {
		if bytes.Equal(s.Bytes, b) {
			return true
		}
	}
	return false
}
