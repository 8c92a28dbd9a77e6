package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	_ "github.com/Alia5/flatgen/internal/registry"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingDumper struct{ labels []string }

func (d *recordingDumper) Dump(label string, _ []byte) { d.labels = append(d.labels, label) }

func TestParseCommands(t *testing.T) {
	tests := []struct {
		args    []string
		command string
	}{
		{[]string{"generate", "--prefix", "proto", "--lang", "c"}, "generate"},
		{[]string{"list"}, "list"},
		{[]string{"inspect", "--format", "yaml", "--schema", "device"}, "inspect"},
		{[]string{"config", "init", "generate", "--format", "toml"}, "config init <command>"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			var cli CLI
			parser, err := kong.New(&cli)
			require.NoError(t, err)
			ctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.command, ctx.Command())
		})
	}

	var cli CLI
	parser, err := kong.New(&cli)
	require.NoError(t, err)
	_, err = parser.Parse([]string{"generate", "--prefix", "p", "--lang", "go"})
	assert.Error(t, err)
}

func TestGenerateWritesFiles(t *testing.T) {
	dir := t.TempDir()
	g := &Generate{Schema: "conformance", Prefix: "proto", Output: dir, Lang: "c", TestAttempts: 2}
	var out bytes.Buffer
	require.NoError(t, g.Run(discard(), &out))

	assert.Equal(t, "c/CMakeLists.txt\nc/include/proto.h\nc/src/proto.c\nc/src/test.c\n", out.String())
	_, err := os.Stat(filepath.Join(dir, "c", "include", "proto.h"))
	assert.NoError(t, err)
}

func TestGenerateDryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g := &Generate{Schema: "device", Prefix: "dev", Output: dir, Lang: "all", DryRun: true}
	var out bytes.Buffer
	require.NoError(t, g.Run(discard(), &out))

	assert.Contains(t, out.String(), "rust/src/proto.rs\n")
	assert.Contains(t, out.String(), "dev.pyi\n")
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateErrors(t *testing.T) {
	var out bytes.Buffer
	err := (&Generate{Schema: "missing", Prefix: "p", Lang: "all"}).Run(discard(), &out)
	assert.ErrorContains(t, err, "unknown schema set")

	err = (&Generate{Schema: "conformance", Prefix: "9p", Lang: "all", DryRun: true}).Run(discard(), &out)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&List{}).Run(discard(), &out))
	assert.Contains(t, out.String(), "conformance\t")
	assert.Contains(t, out.String(), "device\t")
	assert.Contains(t, out.String(), "InputReport")
}

func TestInspectFormats(t *testing.T) {
	tests := []struct {
		format string
		decode func([]byte, *layoutReport) error
	}{
		{"json", func(b []byte, r *layoutReport) error { return json.Unmarshal(b, r) }},
		{"yaml", func(b []byte, r *layoutReport) error { return yaml.Unmarshal(b, r) }},
		{"toml", func(b []byte, r *layoutReport) error { return toml.Unmarshal(b, r) }},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			c := &Inspect{Schema: "device", Format: tt.format}
			require.NoError(t, c.Run(discard(), &out, &recordingDumper{}))

			var r layoutReport
			require.NoError(t, tt.decode(out.Bytes(), &r))
			assert.Equal(t, "device", r.Schema)

			byName := map[string]typeReport{}
			for _, tr := range r.Types {
				byName[tr.Name] = tr
			}
			mouse := byName["mouse_state"]
			assert.True(t, mouse.Sized)
			assert.Equal(t, 9, mouse.Size)
			require.Len(t, mouse.Fields, 5)
			assert.Equal(t, 7, mouse.Fields[4].Offset)

			feedback := byName["feedback"]
			assert.Equal(t, 3, feedback.Size)
			require.Len(t, feedback.Arms, 2)
			assert.Equal(t, "keyboard_leds", feedback.Arms[1].Type)
		})
	}
}

func TestInspectTextAndSamples(t *testing.T) {
	var out bytes.Buffer
	d := &recordingDumper{}
	c := &Inspect{Schema: "conformance", Format: "text", Samples: 1}
	require.NoError(t, c.Run(discard(), &out, d))

	assert.True(t, strings.HasPrefix(out.String(), "schema conformance\n"))
	assert.Contains(t, out.String(), "  @4    y: int32\n")
	assert.Contains(t, d.labels, "point[0]")
	assert.Contains(t, d.labels, "v[1]")
	assert.NotContains(t, d.labels, "int32[0]")
}

func TestConfigInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "generate.yaml")
	c := &ConfigInit{Command: "generate", Format: "yaml", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, "conformance", m["schema"])
	assert.Equal(t, 12, m["test_attempts"])
	assert.Equal(t, "", m["prefix"])
	assert.Equal(t, false, m["python_numpy"])
	assert.Equal(t, map[string]any{"level": "info", "file": "", "format": "auto", "dump_file": ""}, m["log"])

	assert.ErrorContains(t, c.Run(), "destination exists")
	c.Force = true
	assert.NoError(t, c.Run())
}
