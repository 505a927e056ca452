package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/hidremap/hidremap/internal/configpaths"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file holding defaults for the remap
// flags (device filters, logging). The template is derived from the command
// struct so it never drifts from the actual flag set.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination file path (defaults to hidremap.<format> in the current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (c *ConfigInit) Run(logger *slog.Logger) error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root := buildConfigMap(reflect.TypeOf(Remap{}))
	root["log"] = buildConfigMap(reflect.TypeOf(LogConfig{}))

	dest := c.Output
	if dest == "" {
		dest = "hidremap." + format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	logger.Info("wrote configuration template", "path", dest, "format", format)
	return nil
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// buildConfigMap reflects over a kong command struct and emits one template
// entry per flag, keyed by the name kong resolves config values with.
func buildConfigMap(t reflect.Type) map[string]any {
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if _, isCmd := f.Tag.Lookup("cmd"); isCmd {
			continue
		}
		if f.Tag.Get("kong") == "-" {
			continue
		}

		key := f.Tag.Get("name")
		if key == "" {
			key = kebabCase(f.Name)
		}
		out[key] = defaultValueForField(f.Type, f.Tag.Get("default"))
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	switch t.Kind() {
	case reflect.Bool:
		return def == "true"
	case reflect.Slice:
		return []string{}
	default:
		return def
	}
}

// kebabCase converts a Go field name to kong's flag naming ("VendorID" →
// "vendor-id").
func kebabCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (runes[i-1] < 'A' || runes[i-1] > 'Z') {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
