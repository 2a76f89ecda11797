package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CLIConfig holds command-line configuration. Settings flags are parsed
// into Settings and only override the config file when set explicitly.
type CLIConfig struct {
	ConfigPath  string
	ShowVersion bool
	// Inputs are the positional batch inputs.
	Inputs []string

	Settings Config
	// set records the names of the flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{set: make(map[string]bool)}
	s := &cfg.Settings

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("MODELDRAW_CONFIG", ""),
		"Path to YAML configuration file (env: MODELDRAW_CONFIG)")

	fs.StringVar(&s.Input, "input", "", "Path to the graph_models JSON (env: MODELDRAW_INPUT)")
	fs.StringVar(&s.Input, "i", "", "Shorthand for -input")
	fs.StringVar(&s.Mappings, "mappings", "", "Path to a JSON or YAML name mapping table (env: MODELDRAW_MAPPINGS)")
	fs.StringVar(&s.Mappings, "m", "", "Shorthand for -mappings")
	fs.StringVar(&s.Output, "output", "", "Path to the output document, stdout if empty (env: MODELDRAW_OUTPUT)")
	fs.StringVar(&s.Output, "o", "", "Shorthand for -output")
	fs.StringVar(&s.OutDir, "out-dir", "", "Output directory for batch inputs (env: MODELDRAW_OUT_DIR)")

	fs.BoolVar(&s.OmitDjango, "omit-django", false, "Omit namespaces starting with 'django.' (env: MODELDRAW_OMIT_DJANGO)")
	fs.BoolVar(&s.OmitDjango, "d", false, "Shorthand for -omit-django")
	fs.Func("omit-prefix", "Comma separated namespace prefixes to omit (env: MODELDRAW_OMIT_PREFIXES)", func(v string) error {
		s.OmitPrefixes = splitList(v)
		return nil
	})

	fs.BoolVar(&s.AllRelations, "all-relations", false, "Draw every declared relation box to box (env: MODELDRAW_ALL_RELATIONS)")
	fs.BoolVar(&s.AllRelations, "a", false, "Shorthand for -all-relations")
	fs.BoolVar(&s.FKRelations, "fk-relations", false, "Link relation fields to the model named like the field (env: MODELDRAW_FK_RELATIONS)")
	fs.BoolVar(&s.FKRelations, "r", false, "Shorthand for -fk-relations")
	fs.BoolVar(&s.NoRelations, "no-relations", false, "Draw boxes only (env: MODELDRAW_NO_RELATIONS)")

	fs.StringVar(&s.IDs, "ids", "", "Identifier suffixes: random, sequence or uuid (env: MODELDRAW_IDS)")
	fs.BoolVar(&s.Inflect, "inflect", false, "Retry missed targets in singular camel case (env: MODELDRAW_INFLECT)")
	fs.BoolVar(&s.EdgeLabels, "edge-labels", false, "Label declared relations with their name (env: MODELDRAW_EDGE_LABELS)")
	fs.StringVar(&s.Stagger, "stagger", "", "Offset between successive boxes as dx,dy (env: MODELDRAW_STAGGER)")
	fs.IntVar(&s.Workers, "workers", 0, "Parallel conversions in batch mode, 0 for GOMAXPROCS (env: MODELDRAW_WORKERS)")
	fs.BoolVar(&s.Watch, "watch", false, "Convert again whenever the input or mappings change (env: MODELDRAW_WATCH)")

	fs.StringVar(&s.LogLevel, "log-level", "", "Log level: debug, info, warn, error (env: MODELDRAW_LOG_LEVEL)")
	fs.StringVar(&s.LogFormat, "log-format", "", "Log format: json, console (env: MODELDRAW_LOG_FORMAT)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")

	fs.Usage = func() {
		printDetailedHelp(fs, stderr)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		cfg.set[f.Name] = true
	})
	cfg.Inputs = fs.Args()
	return cfg, nil
}

// isSet reports whether any of the named flags was given.
func (c *CLIConfig) isSet(names ...string) bool {
	for _, n := range names {
		if c.set[n] {
			return true
		}
	}
	return false
}

// apply copies the explicitly set flags onto dst.
func (c *CLIConfig) apply(dst *Config) {
	s := c.Settings
	overrides := []struct {
		names []string
		apply func()
	}{
		{[]string{"input", "i"}, func() { dst.Input = s.Input }},
		{[]string{"mappings", "m"}, func() { dst.Mappings = s.Mappings }},
		{[]string{"output", "o"}, func() { dst.Output = s.Output }},
		{[]string{"out-dir"}, func() { dst.OutDir = s.OutDir }},
		{[]string{"omit-django", "d"}, func() { dst.OmitDjango = s.OmitDjango }},
		{[]string{"omit-prefix"}, func() { dst.OmitPrefixes = s.OmitPrefixes }},
		{[]string{"all-relations", "a"}, func() { dst.AllRelations = s.AllRelations }},
		{[]string{"fk-relations", "r"}, func() { dst.FKRelations = s.FKRelations }},
		{[]string{"no-relations"}, func() { dst.NoRelations = s.NoRelations }},
		{[]string{"ids"}, func() { dst.IDs = s.IDs }},
		{[]string{"inflect"}, func() { dst.Inflect = s.Inflect }},
		{[]string{"edge-labels"}, func() { dst.EdgeLabels = s.EdgeLabels }},
		{[]string{"stagger"}, func() { dst.Stagger = s.Stagger }},
		{[]string{"workers"}, func() { dst.Workers = s.Workers }},
		{[]string{"watch"}, func() { dst.Watch = s.Watch }},
		{[]string{"log-level"}, func() { dst.LogLevel = s.LogLevel }},
		{[]string{"log-format"}, func() { dst.LogFormat = s.LogFormat }},
	}
	for _, o := range overrides {
		if c.isSet(o.names...) {
			o.apply()
		}
	}
}

func validateFlags(cfg *Config, inputs []string) error {
	if cfg.Input == "" && len(inputs) == 0 {
		return fmt.Errorf("no input: use -i or pass files as arguments")
	}
	if cfg.Input != "" && len(inputs) > 0 {
		return fmt.Errorf("-i and positional inputs are mutually exclusive")
	}
	if len(inputs) > 0 && cfg.Output != "" {
		return fmt.Errorf("-o takes a single input; use -out-dir for batches")
	}
	if cfg.Watch && len(inputs) > 0 {
		return fmt.Errorf("-watch takes a single input")
	}
	if !contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(cfg.LogLevel)) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if !contains([]string{"json", "console"}, strings.ToLower(cfg.LogFormat)) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", cfg.Workers)
	}
	if _, _, err := cfg.stagger(); err != nil {
		return err
	}
	return nil
}

func printDetailedHelp(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintf(w, `%s - Django graph_models JSON to draw.io

Usage: %s [options] [input.json ...]

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Print the diagram of a single project, Django's own apps left out
  %s -i graph.json -d

  # Link relation fields using a mapping table, write to a file
  %s -i graph.json -r -m mappings.yaml -o erd.drawio

  # Convert several projects in parallel
  %s -a -out-dir diagrams/ shop.json blog.json

Version: %s
`, appName, appName, appName, Version)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseStagger(v string) (dx, dy int, err error) {
	if v == "" {
		return 0, 0, nil
	}
	x, y, ok := strings.Cut(v, ",")
	if dx, err = strconv.Atoi(strings.TrimSpace(x)); err != nil {
		return 0, 0, fmt.Errorf("invalid stagger %q: %w", v, err)
	}
	if !ok {
		return dx, 0, nil
	}
	if dy, err = strconv.Atoi(strings.TrimSpace(y)); err != nil {
		return 0, 0, fmt.Errorf("invalid stagger %q: %w", v, err)
	}
	return dx, dy, nil
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
