package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/flatgen/internal/codegen/samples"
	"github.com/Alia5/flatgen/internal/log"
	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/schemas"
)

// Inspect prints the resolved layout of a schema set.
type Inspect struct {
	Schema  string `help:"Registered schema set to inspect" default:"conformance" env:"FLATGEN_SCHEMA"`
	Format  string `help:"Report format" enum:"text,json,yaml,toml" default:"text"`
	Samples int    `help:"Hex-dump this many samples per tested type" default:"0"`
	Seed    uint64 `help:"Seed for sample generation" default:"0" env:"FLATGEN_SEED"`
}

type layoutReport struct {
	Schema string       `json:"schema" yaml:"schema" toml:"schema"`
	Types  []typeReport `json:"types" yaml:"types" toml:"types"`
}

type typeReport struct {
	Name    string        `json:"name" yaml:"name" toml:"name"`
	Kind    string        `json:"kind" yaml:"kind" toml:"kind"`
	Sized   bool          `json:"sized" yaml:"sized" toml:"sized"`
	Size    int           `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	MinSize int           `json:"minSize" yaml:"minSize" toml:"minSize"`
	Fields  []fieldReport `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
	Arms    []armReport   `json:"arms,omitempty" yaml:"arms,omitempty" toml:"arms,omitempty"`
}

type fieldReport struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Type   string `json:"type" yaml:"type" toml:"type"`
	Offset int    `json:"offset" yaml:"offset" toml:"offset"`
}

type armReport struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Type string `json:"type" yaml:"type" toml:"type"`
	Tag  int    `json:"tag" yaml:"tag" toml:"tag"`
}

func report(name string, types []schema.Type) layoutReport {
	r := layoutReport{Schema: name}
	for _, t := range types {
		tr := typeReport{Name: t.Name().Snake(), Kind: schema.Kind(t), MinSize: t.MinSize()}
		tr.Size, tr.Sized = t.Size()
		switch t := t.(type) {
		case *schema.Struct:
			offsets := t.Offsets()
			for i, f := range t.Fields {
				tr.Fields = append(tr.Fields, fieldReport{Name: f.Name.Snake(), Type: f.Type.Name().Snake(), Offset: offsets[i]})
			}
		case *schema.Variant:
			for i, a := range t.Arms {
				tr.Arms = append(tr.Arms, armReport{Name: a.Name.Snake(), Type: a.Type.Name().Snake(), Tag: i})
			}
		}
		r.Types = append(r.Types, tr)
	}
	return r
}

// Run is called by Kong when the inspect command is executed.
func (c *Inspect) Run(logger *slog.Logger, out io.Writer, dumper log.HexDumper) error {
	types, err := schemas.Types(c.Schema)
	if err != nil {
		return err
	}
	closure, err := schema.Walk(types...)
	if err != nil {
		return fmt.Errorf("resolve types: %w", err)
	}
	logger.Debug("Resolved schema set", "schema", c.Schema, "types", len(closure))

	data, err := encodeReport(report(c.Schema, closure), c.Format)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}

	if c.Samples <= 0 {
		return nil
	}
	for _, t := range closure {
		if !samples.Wants(t) {
			continue
		}
		set, err := samples.Build(t, c.Samples, c.Seed)
		if err != nil {
			return err
		}
		for i, s := range set {
			dumper.Dump(fmt.Sprintf("%s[%d]", t.Name().Snake(), i), s.Bytes)
		}
	}
	return nil
}

func encodeReport(r layoutReport, format string) ([]byte, error) {
	switch normalizeFormat(format) {
	case "json":
		b, err := json.MarshalIndent(r, "", "  ")
		return append(b, '\n'), err
	case "yaml":
		return yaml.Marshal(r)
	case "toml":
		return toml.Marshal(r)
	case "":
		if format == "text" {
			return []byte(textReport(r)), nil
		}
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func textReport(r layoutReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema %s\n", r.Schema)
	for _, t := range r.Types {
		size := fmt.Sprintf("min %d", t.MinSize)
		if t.Sized {
			size = fmt.Sprintf("size %d", t.Size)
		}
		fmt.Fprintf(&b, "%-24s %-8s %s\n", t.Name, t.Kind, size)
		for _, f := range t.Fields {
			fmt.Fprintf(&b, "  @%-4d %s: %s\n", f.Offset, f.Name, f.Type)
		}
		for _, a := range t.Arms {
			fmt.Fprintf(&b, "  #%-4d %s: %s\n", a.Tag, a.Name, a.Type)
		}
	}
	return b.String()
}
