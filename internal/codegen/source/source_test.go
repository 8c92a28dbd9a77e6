package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectDependencyOrder(t *testing.T) {
	inc := Text(Imports, "#include <stdint.h>")
	leaf := Text(Declarations, "typedef struct A A;", inc)
	mid := Text(Declarations, "typedef struct B { A a; } B;", leaf)
	root := Text(Declarations, "typedef struct C { A a; B b; } C;", leaf, mid)

	assert.Equal(t, []string{
		"typedef struct A A;",
		"typedef struct B { A a; } B;",
		"typedef struct C { A a; B b; } C;",
	}, Collect(Declarations, root))
	assert.Equal(t, []string{"#include <stdint.h>"}, Collect(Imports, root))
	assert.Empty(t, Collect(Tests, root))
}

func TestCollectDeduplicatesByContent(t *testing.T) {
	a1 := Text(Definitions, "int a;")
	a2 := Text(Definitions, "int a;")
	b := New(Definitions, a1, nil, a2).Add("int b;", "int a;")

	assert.Equal(t, []string{"int a;", "int b;"}, Collect(Definitions, b))
	assert.Len(t, b.Deps, 2)
}

func TestCollectFollowsOtherSections(t *testing.T) {
	decl := Text(Declarations, "void f(void);")
	def := Text(Definitions, "void f(void) {}", decl)
	test := Text(Tests, "f();", def)

	assert.Equal(t, []string{"void f(void);"}, Collect(Declarations, test))
	assert.Equal(t, []string{"f();"}, Collect(Tests, test))
}

func TestRenderKeepsRootOrder(t *testing.T) {
	x := Text(Declarations, "x")
	y := Text(Declarations, "y")
	z := Text(Declarations, "z", x)
	assert.Equal(t, "y\nx\nz", Render(Declarations, "\n", y, z, x))
}

func TestSectionString(t *testing.T) {
	assert.Equal(t, "tests", Tests.String())
	assert.Equal(t, "Section(9)", Section(9).String())
}
