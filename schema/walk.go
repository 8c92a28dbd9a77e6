package schema

import "fmt"

// Walk returns the closure of roots in dependency-first order. Each
// identifier appears once; siblings keep the order the caller gave them.
// Two structurally different types sharing an identifier are reported as an
// error.
func Walk(roots ...Type) ([]Type, error) {
	var (
		out  []Type
		seen = map[string]Type{}
	)
	var visit func(t Type) error
	visit = func(t Type) error {
		key := t.Name().Snake()
		if prev, ok := seen[key]; ok {
			if !Equal(prev, t) {
				return fmt.Errorf("%w: %s", ErrNameCollision, key)
			}
			return nil
		}
		seen[key] = t
		for _, d := range t.Deps() {
			if err := visit(d); err != nil {
				return err
			}
		}
		out = append(out, t)
		return nil
	}
	for _, r := range roots {
		if err := visit(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Equal reports structural equality of two types.
func Equal(a, b Type) bool {
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *Int:
		y, ok := b.(*Int)
		return ok && x.Bits == y.Bits && x.Signed == y.Signed
	case *Float:
		y, ok := b.(*Float)
		return ok && x.Bits == y.Bits
	case *Char:
		_, ok := b.(*Char)
		return ok
	case *String:
		_, ok := b.(*String)
		return ok
	case *Array:
		y, ok := b.(*Array)
		return ok && x.Len == y.Len && Equal(x.Item, y.Item)
	case *Vector:
		y, ok := b.(*Vector)
		return ok && Equal(x.Item, y.Item)
	case *Struct:
		y, ok := b.(*Struct)
		return ok && x.name.Equal(y.name) && equalFields(x.Fields, y.Fields)
	case *Variant:
		y, ok := b.(*Variant)
		return ok && x.name.Equal(y.name) && x.sized == y.sized && equalFields(x.Arms, y.Arms)
	}
	return false
}

func equalFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Name.Equal(b[i].Name) || !Equal(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}
