// Package cmd defines the kong command-line surface.
package cmd

// CLI is the root of the command tree. Remap is the default command so the
// tool can be driven entirely through flags (`hidremap --map capslock:escape`).
type CLI struct {
	Remap  Remap         `cmd:"" default:"withargs" help:"Remap keyboard keys"`
	Config ConfigCommand `cmd:"" help:"Manage configuration files"`

	ConfigFile string    `name:"config" help:"Path to a configuration file" type:"path"`
	Log        LogConfig `embed:"" prefix:"log."`
}

type LogConfig struct {
	Level string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"HIDREMAP_LOG_LEVEL"`
	File  string `help:"Also write logs to this file"`
}
