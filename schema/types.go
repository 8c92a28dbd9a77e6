// Package schema is the declarative type model consumed by the code
// generators and the host serializer.
//
// Types are immutable once constructed. Constructors resolve the packed
// layout eagerly and return a *LayoutError when a rule is violated, so every
// value of Type that exists satisfies the layout invariants:
//
//   - encodings are little-endian and byte-packed, alignment is always 1;
//   - only the last field of a struct and the payload of a variant arm may be
//     unsized;
//   - MinSize() equals the size for sized types.
package schema

import "strconv"

// Type is one node of a schema. The concrete types are *Int, *Float, *Char,
// *Array, *Vector, *String, *Struct and *Variant; consumers dispatch on them
// with a type switch.
type Type interface {
	// Name is the identifier of the type, unique within a generation run.
	Name() Name
	// Size returns the encoded length and true when it is fixed.
	Size() (int, bool)
	// MinSize is the lower bound on the encoded length.
	MinSize() int
	// Align is the alignment of the emitted layout.
	Align() int
	// Deps lists the direct sub-types in declaration order.
	Deps() []Type

	isType()
}

// Kind returns a short lowercase tag for t.
func Kind(t Type) string {
	switch t.(type) {
	case *Int:
		return "int"
	case *Float:
		return "float"
	case *Char:
		return "char"
	case *Array:
		return "array"
	case *Vector:
		return "vector"
	case *String:
		return "string"
	case *Struct:
		return "struct"
	case *Variant:
		return "variant"
	default:
		return "unknown"
	}
}

// IsSized reports whether t has a fixed encoded length.
func IsSized(t Type) bool {
	_, ok := t.Size()
	return ok
}

// IsPrimitive reports whether t is an Int, Float or Char.
func IsPrimitive(t Type) bool {
	switch t.(type) {
	case *Int, *Float, *Char:
		return true
	}
	return false
}

// IsEmpty reports whether t always encodes to zero bytes.
func IsEmpty(t Type) bool {
	size, ok := t.Size()
	return ok && size == 0
}

type sized struct{ size int }

func (s sized) Size() (int, bool) { return s.size, true }
func (s sized) MinSize() int      { return s.size }
func (sized) Align() int          { return 1 }

// Int is a little-endian integer of 8, 16, 32 or 64 bits.
type Int struct {
	sized
	Bits   int
	Signed bool
}

// NewInt validates the width and returns an integer type.
func NewInt(bits int, signed bool) (*Int, error) {
	switch bits {
	case 8, 16, 32, 64:
	default:
		return nil, layoutErr(nil, ErrUnsupportedWidth, "int%d", bits)
	}
	return &Int{sized: sized{bits / 8}, Bits: bits, Signed: signed}, nil
}

// MustInt is NewInt for widths known to be valid.
func MustInt(bits int, signed bool) *Int {
	return must(NewInt(bits, signed))
}

func (t *Int) Name() Name {
	if t.Signed {
		return Name{"int" + strconv.Itoa(t.Bits)}
	}
	return Name{"uint" + strconv.Itoa(t.Bits)}
}

func (t *Int) Deps() []Type { return nil }
func (*Int) isType()        {}

// Float is an IEEE-754 little-endian binary32 or binary64.
type Float struct {
	sized
	Bits int
}

func NewFloat(bits int) (*Float, error) {
	if bits != 32 && bits != 64 {
		return nil, layoutErr(nil, ErrUnsupportedWidth, "float%d", bits)
	}
	return &Float{sized: sized{bits / 8}, Bits: bits}, nil
}

func MustFloat(bits int) *Float {
	return must(NewFloat(bits))
}

func (t *Float) Name() Name   { return Name{"float" + strconv.Itoa(t.Bits)} }
func (t *Float) Deps() []Type { return nil }
func (*Float) isType()        {}

// Char is a single ASCII byte.
type Char struct{ sized }

func NewChar() *Char { return &Char{sized{1}} }

func (*Char) Name() Name   { return Name{"char"} }
func (*Char) Deps() []Type { return nil }
func (*Char) isType()      {}

// Array is a fixed number of sized items with no separators.
type Array struct {
	sized
	Item Type
	Len  int
}

func NewArray(item Type, length int) (*Array, error) {
	name := Name{"array", strconv.Itoa(length)}.Append(item.Name()...)
	if length < 1 {
		return nil, layoutErr(name, ErrInvalidLength, "got %d", length)
	}
	size, ok := item.Size()
	if !ok {
		return nil, layoutErr(name, ErrUnsizedItem, "item %s", item.Name().Snake())
	}
	return &Array{sized: sized{size * length}, Item: item, Len: length}, nil
}

func MustArray(item Type, length int) *Array {
	return must(NewArray(item, length))
}

func (t *Array) Name() Name {
	return Name{"array", strconv.Itoa(t.Len)}.Append(t.Item.Name()...)
}
func (t *Array) Deps() []Type { return []Type{t.Item} }
func (*Array) isType()        {}

// VectorHeaderSize is the width of the u16 length prefix of vectors and strings.
const VectorHeaderSize = 2

// MaxVectorLen is the largest length a vector prefix can carry.
const MaxVectorLen = 0xFFFF

type unsized struct{ minSize int }

func (unsized) Size() (int, bool) { return 0, false }
func (u unsized) MinSize() int    { return u.minSize }
func (unsized) Align() int        { return 1 }

// Vector is a u16 length followed by that many sized items.
type Vector struct {
	unsized
	Item Type
}

func NewVector(item Type) (*Vector, error) {
	if !IsSized(item) {
		return nil, layoutErr(Name{"vector"}.Append(item.Name()...), ErrUnsizedItem, "item %s", item.Name().Snake())
	}
	return &Vector{unsized: unsized{VectorHeaderSize}, Item: item}, nil
}

func MustVector(item Type) *Vector {
	return must(NewVector(item))
}

func (t *Vector) Name() Name   { return Name{"vector"}.Append(t.Item.Name()...) }
func (t *Vector) Deps() []Type { return []Type{t.Item} }
func (*Vector) isType()        {}

// String is a vector of ASCII chars.
type String struct{ unsized }

func NewString() *String { return &String{unsized{VectorHeaderSize}} }

func (*String) Name() Name { return Name{"string"} }

// Item is the element type of the underlying char vector.
func (*String) Item() Type  { return NewChar() }
func (*String) Deps() []Type { return []Type{NewChar()} }
func (*String) isType()      {}

// Field is a named member of a struct or an arm of a variant.
type Field struct {
	Name Name
	Type Type
}

// F is shorthand for a Field with a parsed name.
func F(name string, t Type) Field {
	return Field{Name: ParseName(name), Type: t}
}

// Struct is an ordered list of fields encoded back to back.
type Struct struct {
	name    Name
	Fields  []Field
	offsets []int
	size    int
	sized   bool
	minSize int
}

func NewStruct(name Name, fields ...Field) (*Struct, error) {
	if !name.valid() {
		return nil, layoutErr(name, ErrInvalidName, "struct name %q", name.Snake())
	}
	if err := checkFields(name, fields); err != nil {
		return nil, err
	}
	s := &Struct{name: name, Fields: append([]Field(nil), fields...), sized: true}
	offset := 0
	for i, f := range fields {
		s.offsets = append(s.offsets, offset)
		size, ok := f.Type.Size()
		if !ok {
			if i != len(fields)-1 {
				return nil, layoutErr(name, ErrUnsizedField, "field %s", f.Name.Snake())
			}
			s.sized = false
			offset += f.Type.MinSize()
			continue
		}
		offset += size
	}
	s.minSize = offset
	if s.sized {
		s.size = offset
	}
	return s, nil
}

func MustStruct(name Name, fields ...Field) *Struct {
	return must(NewStruct(name, fields...))
}

func (t *Struct) Name() Name { return t.name }
func (t *Struct) Size() (int, bool) {
	return t.size, t.sized
}
func (t *Struct) MinSize() int { return t.minSize }
func (*Struct) Align() int     { return 1 }

func (t *Struct) Deps() []Type {
	deps := make([]Type, len(t.Fields))
	for i, f := range t.Fields {
		deps[i] = f.Type
	}
	return deps
}

// Offsets returns the byte offset of each field.
func (t *Struct) Offsets() []int { return append([]int(nil), t.offsets...) }

// Field looks a field up by name.
func (t *Struct) Field(name Name) (Field, int, bool) {
	for i, f := range t.Fields {
		if f.Name.Equal(name) {
			return f, t.offsets[i], true
		}
	}
	return Field{}, 0, false
}

// Last returns the final field, if any.
func (t *Struct) Last() (Field, bool) {
	if len(t.Fields) == 0 {
		return Field{}, false
	}
	return t.Fields[len(t.Fields)-1], true
}

func (*Struct) isType() {}

// MaxArms is the number of arms an 8-bit tag can address.
const MaxArms = 256

// VariantOption tunes NewVariant.
type VariantOption func(*variantOptions)

type variantOptions struct {
	sized    bool
	sizedSet bool
}

// WithSized forces the variant to be padded to its largest arm (true) or
// encoded without padding (false). Without it, sizedness is derived from
// the arms.
func WithSized(sized bool) VariantOption {
	return func(o *variantOptions) {
		o.sized = sized
		o.sizedSet = true
	}
}

// Variant is a tagged union: a u8 arm index followed by the arm payload,
// zero-padded to the largest arm when sized.
type Variant struct {
	name    Name
	Arms    []Field
	size    int
	sized   bool
	minSize int
}

func NewVariant(name Name, arms []Field, opts ...VariantOption) (*Variant, error) {
	var o variantOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !name.valid() {
		return nil, layoutErr(name, ErrInvalidName, "variant name %q", name.Snake())
	}
	if len(arms) == 0 {
		return nil, layoutErr(name, ErrEmptyVariant, "")
	}
	if len(arms) > MaxArms {
		return nil, layoutErr(name, ErrTooManyArms, "%d arms", len(arms))
	}
	if err := checkFields(name, arms); err != nil {
		return nil, err
	}

	allSized := true
	minArm, maxArm := arms[0].Type.MinSize(), 0
	for _, a := range arms {
		size, ok := a.Type.Size()
		if !ok {
			if o.sizedSet && o.sized {
				return nil, layoutErr(name, ErrUnsizedArm, "arm %s", a.Name.Snake())
			}
			allSized = false
		} else if size > maxArm {
			maxArm = size
		}
		if m := a.Type.MinSize(); m < minArm {
			minArm = m
		}
	}

	v := &Variant{name: name, Arms: append([]Field(nil), arms...)}
	v.sized = allSized
	if o.sizedSet {
		v.sized = o.sized
	}
	if v.sized {
		v.size = 1 + maxArm
		v.minSize = v.size
	} else {
		v.minSize = 1 + minArm
	}
	return v, nil
}

func MustVariant(name Name, arms []Field, opts ...VariantOption) *Variant {
	return must(NewVariant(name, arms, opts...))
}

func (t *Variant) Name() Name { return t.name }
func (t *Variant) Size() (int, bool) {
	return t.size, t.sized
}
func (t *Variant) MinSize() int { return t.minSize }
func (*Variant) Align() int     { return 1 }

func (t *Variant) Deps() []Type {
	deps := make([]Type, len(t.Arms))
	for i, a := range t.Arms {
		deps[i] = a.Type
	}
	return deps
}

// ArmIndex returns the tag of the named arm.
func (t *Variant) ArmIndex(name Name) (int, bool) {
	for i, a := range t.Arms {
		if a.Name.Equal(name) {
			return i, true
		}
	}
	return 0, false
}

func (*Variant) isType() {}

func checkFields(owner Name, fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !f.Name.valid() {
			return layoutErr(owner, ErrInvalidName, "field %q", f.Name.Snake())
		}
		if f.Type == nil {
			return layoutErr(owner, ErrInvalidName, "field %s has no type", f.Name.Snake())
		}
		key := f.Name.Snake()
		if _, dup := seen[key]; dup {
			return layoutErr(owner, ErrDuplicateField, "%s", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
