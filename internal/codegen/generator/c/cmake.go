package cgen

import "text/template"

var cmakeTemplate = template.Must(template.New("cmake").Parse(`cmake_minimum_required(VERSION 3.10)
project({{.Prefix}} C)

set(CMAKE_C_STANDARD 11)

# Packed declarations and size functions
add_library({{.Prefix}} STATIC
    src/{{.Prefix}}.c
)

target_include_directories({{.Prefix}} PUBLIC
    ${CMAKE_CURRENT_SOURCE_DIR}/include
)

# Conformance tests; the runner provides codegen_assert.h
add_library({{.Prefix}}_test STATIC
    src/test.c
)

target_link_libraries({{.Prefix}}_test PUBLIC {{.Prefix}})

install(TARGETS {{.Prefix}}
    ARCHIVE DESTINATION lib
)

install(FILES include/{{.Prefix}}.h
    DESTINATION include
)
`))

type cmakeData struct {
	Prefix string
}
