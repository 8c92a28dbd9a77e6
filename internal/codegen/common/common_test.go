package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaming(t *testing.T) {
	assert.Equal(t, "MyProto", ToPascalCase("my_proto"))
	assert.Equal(t, "my_proto", ToSnakeCase("MyProto"))
	assert.Equal(t, "my_proto", ToSnakeCase("my-proto"))
	assert.Equal(t, "XML_PARSER", ToScreamingSnakeCase("XMLParser"))
	assert.Equal(t, "  a\n\n  b", Indent(2, "a\n\nb"))
}

func TestLiterals(t *testing.T) {
	assert.Equal(t, "0x01, 0xFE,\n0x00", FormatBytes([]byte{1, 0xFE, 0}, 2))
	assert.Equal(t, "", FormatBytes(nil, 8))
	assert.Equal(t, "1.0", FormatFloat(1, 64))
	assert.Equal(t, "0.1", FormatFloat(float64(float32(0.1)), 32))
	assert.Equal(t, "1e+21", FormatFloat(1e21, 64))
	assert.Equal(t, `"a\"b\\c"`, QuoteASCII(`a"b\c`))
	assert.Equal(t, `'\''`, QuoteChar('\''))
	assert.Equal(t, `'\x01'`, QuoteChar(1))
}

func TestFileHeader(t *testing.T) {
	assert.Contains(t, FileHeader("//", "Rust"), "// Auto-generated by flatgen")
	assert.Contains(t, FileHeader("#", "Python"), "(Python)")
}
