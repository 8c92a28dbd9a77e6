package rust

import (
	"fmt"

	"github.com/Alia5/flatgen/schema"
)

// rustType returns the flat type of t. Multi-byte numbers use the portable
// little-endian wrappers; lengths are U16.
func rustType(t schema.Type) string {
	switch t := t.(type) {
	case *schema.Int:
		if t.Bits == 8 {
			if t.Signed {
				return "i8"
			}
			return "u8"
		}
		if t.Signed {
			return fmt.Sprintf("I%d", t.Bits)
		}
		return fmt.Sprintf("U%d", t.Bits)
	case *schema.Float:
		return fmt.Sprintf("F%d", t.Bits)
	case *schema.Char:
		return "u8"
	case *schema.Array:
		return fmt.Sprintf("[%s; %d]", rustType(t.Item), t.Len)
	case *schema.Vector:
		return fmt.Sprintf("FlatVec<%s, U16>", rustType(t.Item))
	case *schema.String:
		return "FlatVec<u8, U16>"
	}
	return typeName(t)
}

func typeName(t schema.Type) string {
	name := t.Name().Camel()
	if reservedTypes[name] {
		return name + "_"
	}
	return name
}

// native reports whether values of t compare without to_native.
func native(t schema.Type) bool {
	switch t := t.(type) {
	case *schema.Int:
		return t.Bits == 8
	case *schema.Char:
		return true
	}
	return false
}

func fieldName(name schema.Name) string {
	s := name.Snake()
	if isRustKeyword(s) {
		return "r#" + s
	}
	return s
}

func isRustKeyword(s string) bool {
	keywords := map[string]bool{
		"as": true, "break": true, "const": true, "continue": true, "crate": true,
		"else": true, "enum": true, "extern": true, "false": true, "fn": true,
		"for": true, "if": true, "impl": true, "in": true, "let": true,
		"loop": true, "match": true, "mod": true, "move": true, "mut": true,
		"pub": true, "ref": true, "return": true, "self": true, "Self": true,
		"static": true, "struct": true, "super": true, "trait": true, "true": true,
		"type": true, "unsafe": true, "use": true, "where": true, "while": true,
		"async": true, "await": true, "dyn": true,
	}
	return keywords[s]
}

// reservedTypes are names the generated module imports.
var reservedTypes = map[string]bool{
	"FlatVec": true, "U16": true, "I16": true, "U32": true, "I32": true, "U64": true,
	"I64": true, "F32": true, "F64": true, "Option": true, "Result": true, "String": true,
	"Vec": true, "Box": true,
}
