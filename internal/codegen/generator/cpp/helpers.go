package cpp

import (
	"fmt"

	"github.com/Alia5/flatgen/internal/codegen/common"
	cgen "github.com/Alia5/flatgen/internal/codegen/generator/c"
	"github.com/Alia5/flatgen/schema"
)

// runtimeNames are declared by the runtime prelude of every header.
var runtimeNames = map[string]bool{
	"IoError": true, "Unit": true, "Result": true, "Reader": true, "Writer": true,
}

// reservedMembers are the member functions every wrapper type declares.
var reservedMembers = map[string]bool{
	"load": true, "store": true, "packed_size": true, "from_c": true, "arm": true,
	"tag": true, "decode": true, "encode": true, "encoded_size": true,
}

// cppType returns the wrapper type of t inside the prefix namespace.
func cppType(t schema.Type) string {
	switch t := t.(type) {
	case *schema.Int:
		if t.Signed {
			return fmt.Sprintf("std::int%d_t", t.Bits)
		}
		return fmt.Sprintf("std::uint%d_t", t.Bits)
	case *schema.Float:
		if t.Bits == 32 {
			return "float"
		}
		return "double"
	case *schema.Char:
		return "char"
	case *schema.Array:
		return fmt.Sprintf("std::array<%s, %d>", cppType(t.Item), t.Len)
	case *schema.Vector:
		return fmt.Sprintf("std::vector<%s>", cppType(t.Item))
	case *schema.String:
		return "std::string"
	}
	return className(t)
}

// className is the name of a generated struct or variant wrapper.
func className(t schema.Type) string {
	name := t.Name().Camel()
	if runtimeNames[name] {
		return name + "_"
	}
	return name
}

// member is the data member name of a field or arm.
func member(name schema.Name) string {
	s := cgen.Field(name)
	if reservedMembers[s] {
		return s + "_"
	}
	return s
}

// enumerator is the Tag constant of a variant arm.
func enumerator(name schema.Name) string {
	return name.Camel()
}

func isClass(t schema.Type) bool {
	switch t.(type) {
	case *schema.Struct, *schema.Variant:
		return true
	}
	return false
}

func macro(prefix, name string) string {
	return common.ToScreamingSnakeCase(prefix) + "_" + name
}
