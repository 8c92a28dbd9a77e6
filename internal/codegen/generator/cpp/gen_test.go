package cpp

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/flatgen/internal/codegen/meta"
	"github.com/Alia5/flatgen/schema"
)

func fixture(t *testing.T) *meta.Metadata {
	t.Helper()
	e := schema.MustStruct(schema.NewName("e"))
	point := schema.MustStruct(schema.NewName("point"),
		schema.F("x", schema.MustInt(32, true)),
		schema.F("y", schema.MustInt(32, true)),
	)
	s := schema.MustStruct(schema.NewName("s"),
		schema.F("head", schema.MustInt(8, false)),
		schema.F("store", schema.MustVector(schema.MustInt(8, false))),
	)
	v := schema.MustVariant(schema.NewName("v"), []schema.Field{
		schema.F("empty", e),
		schema.F("value", schema.MustInt(32, false)),
	}, schema.WithSized(true))
	u := schema.MustVariant(schema.NewName("u"), []schema.Field{
		schema.F("empty", e),
		schema.F("data", schema.MustVector(point)),
		schema.F("label", schema.NewString()),
	})
	md, err := meta.New(meta.Context{Prefix: "proto", TestAttempts: 4}, point, s, v, u)
	require.NoError(t, err)
	return md
}

func generate(t *testing.T) map[string]string {
	t.Helper()
	files, err := Generate(slog.New(slog.NewTextHandler(io.Discard, nil)), fixture(t))
	require.NoError(t, err)
	return files
}

func TestGenerateFileSet(t *testing.T) {
	files := generate(t)
	assert.Len(t, files, 2)
	assert.Contains(t, files, "cpp/include/proto.hpp")
	assert.Contains(t, files, "cpp/src/test.cpp")
}

func TestGenerateHeader(t *testing.T) {
	h := generate(t)["cpp/include/proto.hpp"]

	assert.Contains(t, h, "namespace proto {")
	assert.Contains(t, h, `#include "proto.h"`)
	assert.Contains(t, h, "#define PROTO_TRY(expr)")
	assert.Contains(t, h, "struct Point {\n    std::int32_t x{};\n    std::int32_t y{};\n")
	assert.Contains(t, h, "    static Result<Point> load(Reader &r);")
	assert.Contains(t, h, "    static Result<Point> from_c(const ::ProtoPoint &c);")
	assert.Contains(t, h, `static_assert(sizeof(::ProtoPoint) == 8, "ProtoPoint must be packed");`)
	assert.NotContains(t, h, "sizeof(::ProtoE)")
	assert.Contains(t, h, "    std::vector<std::uint8_t> store_{};")
	assert.Contains(t, h, "    return encoded_size(this->head) + encoded_size(this->store_);")
	assert.Contains(t, h, "    std::variant<E, std::vector<Point>, std::string> arm;")
	assert.Contains(t, h, "        Empty = 0,\n        Value = 1,")
	assert.Contains(t, h, "    PROTO_TRY(r.skip(start + 5 - r.position()));")
	assert.Contains(t, h, "    w.pad(start + 5 - w.size());")
	assert.Contains(t, h, "    Reader r(reinterpret_cast<const std::uint8_t *>(&c), proto_u_size(&c));")

	assert.Less(t, strings.Index(h, "struct Point {"), strings.Index(h, "struct U {"))
	assert.Less(t, strings.Index(h, "struct U {"), strings.Index(h, "inline Result<Point> Point::load"))
	assert.Equal(t, 1, strings.Count(h, "struct E {"))
}

func TestGenerateTests(t *testing.T) {
	src := generate(t)["cpp/src/test.cpp"]

	assert.Contains(t, src, `#include "proto.hpp"`)
	assert.Contains(t, src, "extern \"C\" {\nvoid proto_test_point(void);")
	assert.NotContains(t, src, "void proto_test_e(void);")
	assert.Contains(t, src, "void test_point() {")
	assert.Contains(t, src, "        Point obj{};")
	assert.Contains(t, src, "        std::vector<std::uint8_t> obj{};")
	assert.Contains(t, src, "codegen_assert_eq(obj.arm.index(), 2u);")
	assert.Contains(t, src, "codegen_assert_eq(std::get<2>(obj.arm), std::string(")
	assert.Contains(t, src, "    ::proto_test_point();\n}")
	assert.Contains(t, src, "auto view = U::from_c(*reinterpret_cast<const ::ProtoU *>(data));")
	assert.Contains(t, src, "void test_all() {\n    test_point();")
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "std::array<float, 4>", cppType(schema.MustArray(schema.MustFloat(32), 4)))
	assert.Equal(t, "std::vector<char>", cppType(schema.MustVector(schema.NewChar())))
	assert.Equal(t, "std::string", cppType(schema.NewString()))
	assert.Equal(t, "Reader_", className(schema.MustStruct(schema.NewName("reader"))))
	assert.Equal(t, "load_", member(schema.NewName("load")))
	assert.Equal(t, "class_", member(schema.NewName("class")))
}
