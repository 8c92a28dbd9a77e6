package python

import (
	"github.com/Alia5/flatgen/internal/codegen/common"
	"github.com/Alia5/flatgen/schema"
)

var pyKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true, "assert": true,
	"async": true, "await": true, "break": true, "class": true, "continue": true,
	"def": true, "del": true, "elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true, "yield": true,
}

// pyReserved are names the stub module imports or declares itself.
var pyReserved = map[string]bool{
	"List": true, "Union": true, "ClassVar": true, "dataclass": true,
	"load": true, "store": true, "size": true, "tag": true, "payload": true,
}

func className(t schema.Type) string {
	name := t.Name().Camel()
	if pyReserved[name] {
		return name + "_"
	}
	return name
}

func fieldName(name schema.Name) string {
	s := name.Snake()
	if pyKeywords[s] || pyReserved[s] {
		return s + "_"
	}
	return s
}

// tagConst is the class constant holding the tag of an arm.
func tagConst(name schema.Name) string {
	s := common.ToScreamingSnakeCase(name.Snake())
	if s == "SIZE" || s == "MIN_SIZE" {
		return s + "_"
	}
	return s
}
