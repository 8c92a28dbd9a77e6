package wire

import (
	"encoding/binary"
	"math"

	"github.com/Alia5/flatgen/schema"
)

// Load decodes one value of t from the front of b and returns it together
// with the number of bytes consumed. Trailing bytes are ignored.
func Load(t schema.Type, b []byte) (any, int, error) {
	d := decoder{buf: b}
	v, err := d.value(t)
	if err != nil {
		return nil, 0, err
	}
	return v, d.off, nil
}

// Decode is Load without the consumed count.
func Decode(t schema.Type, b []byte) (any, error) {
	v, _, err := Load(t, b)
	return v, err
}

// Store encodes v, which must be an instance of t.
func Store(t schema.Type, v any) ([]byte, error) {
	return Append(make([]byte, 0, t.MinSize()), t, v)
}

// Append encodes v onto dst.
func Append(dst []byte, t schema.Type, v any) ([]byte, error) {
	switch t := t.(type) {
	case *schema.Int:
		var raw uint64
		if t.Signed {
			x, ok := v.(int64)
			lo, hi := signedRange(t.Bits)
			if !ok || x < lo || x > hi {
				return nil, invalidValue(t, "%v", v)
			}
			raw = uint64(x)
		} else {
			x, ok := v.(uint64)
			if !ok || x > unsignedMax(t.Bits) {
				return nil, invalidValue(t, "%v", v)
			}
			raw = x
		}
		return appendUint(dst, raw, t.Bits/8), nil
	case *schema.Float:
		x, ok := v.(float64)
		if !ok {
			return nil, invalidValue(t, "%v", v)
		}
		if t.Bits == 32 {
			return binary.LittleEndian.AppendUint32(dst, narrow32(x)), nil
		}
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(x)), nil
	case *schema.Char:
		x, ok := v.(byte)
		if !ok || x >= 0x80 {
			return nil, invalidValue(t, "%v", v)
		}
		return append(dst, x), nil
	case *schema.String:
		s, ok := v.(string)
		if !ok || len(s) > schema.MaxVectorLen || !isASCII([]byte(s)) {
			return nil, invalidValue(t, "%q", v)
		}
		dst = binary.LittleEndian.AppendUint16(dst, uint16(len(s)))
		return append(dst, s...), nil
	case *schema.Array:
		l, ok := v.(List)
		if !ok || len(l) != t.Len {
			return nil, invalidValue(t, "want %d items", t.Len)
		}
		return appendItems(dst, t.Item, l)
	case *schema.Vector:
		l, ok := v.(List)
		if !ok || len(l) > schema.MaxVectorLen {
			return nil, invalidValue(t, "want at most %d items", schema.MaxVectorLen)
		}
		dst = binary.LittleEndian.AppendUint16(dst, uint16(len(l)))
		return appendItems(dst, t.Item, l)
	case *schema.Struct:
		r, ok := v.(Record)
		if !ok || len(r) != len(t.Fields) {
			return nil, invalidValue(t, "want %d fields", len(t.Fields))
		}
		var err error
		for i, f := range t.Fields {
			if dst, err = Append(dst, f.Type, r[i]); err != nil {
				return nil, err
			}
		}
		return dst, nil
	case *schema.Variant:
		tv, ok := v.(Tagged)
		if !ok || tv.Tag < 0 || tv.Tag >= len(t.Arms) {
			return nil, invalidValue(t, "bad tag in %v", v)
		}
		start := len(dst)
		var err error
		if dst, err = Append(append(dst, byte(tv.Tag)), t.Arms[tv.Tag].Type, tv.Value); err != nil {
			return nil, err
		}
		if size, sized := t.Size(); sized {
			for len(dst)-start < size {
				dst = append(dst, 0)
			}
		}
		return dst, nil
	}
	return nil, invalidValue(t, "unknown type")
}

func appendItems(dst []byte, item schema.Type, l List) ([]byte, error) {
	var err error
	for _, x := range l {
		if dst, err = Append(dst, item, x); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func appendUint(dst []byte, v uint64, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) take(t schema.Type, n int) ([]byte, error) {
	if len(d.buf)-d.off < n {
		return nil, eof(t, d.off, n, len(d.buf)-d.off)
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) value(t schema.Type) (any, error) {
	// Reject short input up front so nested errors point at the outer type.
	if len(d.buf)-d.off < t.MinSize() {
		return nil, eof(t, d.off, t.MinSize(), len(d.buf)-d.off)
	}
	switch t := t.(type) {
	case *schema.Int:
		b, err := d.take(t, t.Bits/8)
		if err != nil {
			return nil, err
		}
		var raw uint64
		for i := len(b) - 1; i >= 0; i-- {
			raw = raw<<8 | uint64(b[i])
		}
		if t.Signed {
			shift := 64 - t.Bits
			return int64(raw<<shift) >> shift, nil
		}
		return raw, nil
	case *schema.Float:
		b, err := d.take(t, t.Bits/8)
		if err != nil {
			return nil, err
		}
		if t.Bits == 32 {
			return widen32(binary.LittleEndian.Uint32(b)), nil
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	case *schema.Char:
		b, err := d.take(t, 1)
		if err != nil {
			return nil, err
		}
		if b[0] >= 0x80 {
			return nil, invalid(t, d.off-1, "non-ASCII byte 0x%02x", b[0])
		}
		return b[0], nil
	case *schema.String:
		n, err := d.length(t)
		if err != nil {
			return nil, err
		}
		start := d.off
		b, err := d.take(t, n)
		if err != nil {
			return nil, err
		}
		for i, c := range b {
			if c >= 0x80 {
				return nil, invalid(t, start+i, "non-ASCII byte 0x%02x", c)
			}
		}
		return string(b), nil
	case *schema.Array:
		return d.items(t.Item, t.Len)
	case *schema.Vector:
		n, err := d.length(t)
		if err != nil {
			return nil, err
		}
		size, _ := t.Item.Size()
		if len(d.buf)-d.off < n*size {
			return nil, eof(t, d.off, n*size, len(d.buf)-d.off)
		}
		return d.items(t.Item, n)
	case *schema.Struct:
		r := make(Record, len(t.Fields))
		for i, f := range t.Fields {
			v, err := d.value(f.Type)
			if err != nil {
				return nil, err
			}
			r[i] = v
		}
		return r, nil
	case *schema.Variant:
		start := d.off
		b, err := d.take(t, 1)
		if err != nil {
			return nil, err
		}
		tag := int(b[0])
		if tag >= len(t.Arms) {
			return nil, invalid(t, start, "tag %d out of range for %d arms", tag, len(t.Arms))
		}
		v, err := d.value(t.Arms[tag].Type)
		if err != nil {
			return nil, err
		}
		if size, sized := t.Size(); sized {
			padStart := d.off
			pad, err := d.take(t, size-(d.off-start))
			if err != nil {
				return nil, err
			}
			for i, c := range pad {
				if c != 0 {
					return nil, invalid(t, padStart+i, "nonzero padding byte 0x%02x", c)
				}
			}
		}
		return Tagged{Tag: tag, Value: v}, nil
	}
	return nil, invalid(t, d.off, "unknown type")
}

func (d *decoder) length(t schema.Type) (int, error) {
	b, err := d.take(t, schema.VectorHeaderSize)
	if err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint16(b)), nil
}

func (d *decoder) items(item schema.Type, n int) (List, error) {
	l := make(List, n)
	for i := range l {
		v, err := d.value(item)
		if err != nil {
			return nil, err
		}
		l[i] = v
	}
	return l, nil
}

// widen32 converts float32 bits to float64. NaN payloads are shifted into
// the wider mantissa by hand since a hardware conversion quiets them.
func widen32(bits uint32) float64 {
	if bits&0x7F800000 == 0x7F800000 && bits&0x007FFFFF != 0 {
		return math.Float64frombits(uint64(bits>>31)<<63 | 0x7FF<<52 | uint64(bits&0x007FFFFF)<<29)
	}
	return float64(math.Float32frombits(bits))
}

// narrow32 is the inverse of widen32.
func narrow32(x float64) uint32 {
	if !math.IsNaN(x) {
		return math.Float32bits(float32(x))
	}
	b := math.Float64bits(x)
	mant := uint32(b>>29) & 0x007FFFFF
	if mant == 0 {
		mant = 0x00400000
	}
	return uint32(b>>63)<<31 | 0x7F800000 | mant
}
