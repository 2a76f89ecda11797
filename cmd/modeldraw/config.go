package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/syssam/modeldraw/compiler"
	"github.com/syssam/modeldraw/compiler/gen"
	"github.com/syssam/modeldraw/compiler/gen/drawio"
)

// Config holds the conversion settings.
// Settings come from the YAML file given with -config, then environment
// variables, then command line flags, each overriding the previous.
type Config struct {
	Input    string `yaml:"input" env:"MODELDRAW_INPUT" env-default:""`
	Mappings string `yaml:"mappings" env:"MODELDRAW_MAPPINGS" env-default:""`
	Output   string `yaml:"output" env:"MODELDRAW_OUTPUT" env-default:""`
	OutDir   string `yaml:"out_dir" env:"MODELDRAW_OUT_DIR" env-default:""`

	OmitDjango   bool     `yaml:"omit_django" env:"MODELDRAW_OMIT_DJANGO" env-default:"false"`
	OmitPrefixes []string `yaml:"omit_prefixes" env:"MODELDRAW_OMIT_PREFIXES" env-separator:","`

	// Relation policy. AllRelations wins over FKRelations; NoRelations
	// wins over both.
	AllRelations bool `yaml:"all_relations" env:"MODELDRAW_ALL_RELATIONS" env-default:"false"`
	FKRelations  bool `yaml:"fk_relations" env:"MODELDRAW_FK_RELATIONS" env-default:"false"`
	NoRelations  bool `yaml:"no_relations" env:"MODELDRAW_NO_RELATIONS" env-default:"false"`

	IDs        string `yaml:"ids" env:"MODELDRAW_IDS" env-default:"random"`
	Inflect    bool   `yaml:"inflect" env:"MODELDRAW_INFLECT" env-default:"false"`
	EdgeLabels bool   `yaml:"edge_labels" env:"MODELDRAW_EDGE_LABELS" env-default:"false"`
	Stagger    string `yaml:"stagger" env:"MODELDRAW_STAGGER" env-default:""`
	Workers    int    `yaml:"workers" env:"MODELDRAW_WORKERS" env-default:"0"`
	Watch      bool   `yaml:"watch" env:"MODELDRAW_WATCH" env-default:"false"`

	LogLevel  string `yaml:"log_level" env:"MODELDRAW_LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"MODELDRAW_LOG_FORMAT" env-default:"console"`
}

// loadConfig reads the config file at path with environment overrides, or
// the environment alone when path is empty.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return cfg, nil
}

// policy resolves the relation switches.
func (c *Config) policy() gen.Policy {
	if c.NoRelations {
		return gen.PolicyNone
	}
	return gen.PolicyFor(c.AllRelations, c.FKRelations)
}

func (c *Config) stagger() (dx, dy int, err error) {
	return parseStagger(c.Stagger)
}

// options returns the batch-wide options. The identifier generator is
// per job, see idOption.
func (c *Config) options() ([]gen.Option, error) {
	dx, dy, err := c.stagger()
	if err != nil {
		return nil, err
	}
	opts := []gen.Option{
		gen.WithPolicy(c.policy()),
		gen.WithInflection(c.Inflect),
		gen.WithEdgeLabels(c.EdgeLabels),
		gen.WithGenerator(drawio.New(drawio.WithStagger(dx, dy))),
		compiler.MappingsFile(c.Mappings),
	}
	if c.OmitDjango {
		opts = append(opts, gen.WithOmitPrefixes())
	}
	if len(c.OmitPrefixes) > 0 {
		opts = append(opts, gen.WithOmitPrefixes(c.OmitPrefixes...))
	}
	return opts, nil
}

// idOption returns a fresh identifier generator option.
func (c *Config) idOption() (gen.Option, error) {
	ids, err := gen.NewIDGenerator(strings.ToLower(c.IDs))
	if err != nil {
		return nil, err
	}
	return gen.WithIDGenerator(ids), nil
}

// jobs builds one batch job per input. Outputs go to OutDir, or next to
// the input, with the extension replaced by .drawio.
func (c *Config) jobs(inputs []string) ([]compiler.Job, error) {
	jobs := make([]compiler.Job, 0, len(inputs))
	for _, in := range inputs {
		id, err := c.idOption()
		if err != nil {
			return nil, err
		}
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".drawio"
		dir := c.OutDir
		if dir == "" {
			dir = filepath.Dir(in)
		}
		jobs = append(jobs, compiler.Job{
			Input:   in,
			Output:  filepath.Join(dir, base),
			Options: []gen.Option{id},
		})
	}
	return jobs, nil
}
