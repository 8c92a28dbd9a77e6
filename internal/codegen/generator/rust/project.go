package rust

import "text/template"

var cargoTomlTemplate = template.Must(template.New("cargo").Parse(`[package]
name = "{{.Crate}}"
version = "{{.Version}}"
edition = "2021"
rust-version = "1.70"
description = "Flat declarations for {{.Prefix}}"
publish = false

[dependencies]
flatty = "0.1"

[build-dependencies]
cc = "1.0"
`))

// buildTemplate compiles the C sources next to the crate so the tests can
// call the C conformance entry points. The runner passes the directory of
// codegen_assert.h in CODEGEN_ASSERT_INCLUDE.
var buildTemplate = template.Must(template.New("build").Parse(`{{.Banner}}
fn main() {
    let mut build = cc::Build::new();
    build
        .file("../c/src/{{.Prefix}}.c")
        .file("../c/src/test.c")
        .include("../c/include");
    if let Ok(dir) = std::env::var("CODEGEN_ASSERT_INCLUDE") {
        build.include(dir);
    }
    build.compile("{{.Prefix}}");
    println!("cargo:rerun-if-changed=../c");
    println!("cargo:rerun-if-env-changed=CODEGEN_ASSERT_INCLUDE");
}
`))

var libTemplate = template.Must(template.New("lib").Parse(`{{.Banner}}
pub mod proto;

#[cfg(test)]
mod tests;
`))

type projectData struct {
	Banner  string
	Crate   string
	Prefix  string
	Version string
}
