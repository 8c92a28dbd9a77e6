package main

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/Alia5/flatgen/internal/cmd"
	"github.com/Alia5/flatgen/internal/configpaths"
	"github.com/Alia5/flatgen/internal/log"

	_ "github.com/Alia5/flatgen/internal/registry" // Register built-in schema sets
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("flatgen"),
		kong.Description("Packed wire-format binding generator"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, cli.Log.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	dumper := log.NewHexDumper(os.Stdout)
	if cli.Log.DumpFile != "" {
		f, err := os.OpenFile(cli.Log.DumpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open dump file", "file", cli.Log.DumpFile, "error", err)
			dumper = log.NewHexDumper(nil)
		} else {
			dumper = log.NewHexDumper(f)
			closeFiles = append(closeFiles, f)
		}
	}

	ctx.Bind(logger)
	ctx.BindTo(dumper, (*log.HexDumper)(nil))
	ctx.BindTo(os.Stdout, (*io.Writer)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("FLATGEN_CONFIG")
}
