package cmd

// LogConfig configures the process logger.
type LogConfig struct {
	Level    string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"FLATGEN_LOG_LEVEL"`
	File     string `help:"Write logs to this file in addition to the console" env:"FLATGEN_LOG_FILE"`
	Format   string `help:"Log format; auto picks text on a terminal and JSON otherwise" enum:"auto,text,json" default:"auto" env:"FLATGEN_LOG_FORMAT"`
	DumpFile string `help:"Write sample hex dumps to this file instead of stdout" env:"FLATGEN_LOG_DUMP_FILE"`
}

// CLI is the root kong command tree.
type CLI struct {
	ConfigFile string    `name:"config" help:"Path to a JSON, YAML or TOML config file" env:"FLATGEN_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`

	Generate Generate      `cmd:"" help:"Generate C, C++, Rust and Python bindings for a schema set"`
	List     List          `cmd:"" help:"List registered schema sets"`
	Inspect  Inspect       `cmd:"" help:"Print the resolved wire layout of a schema set"`
	Config   ConfigCommand `cmd:"" help:"Manage configuration files"`
}
