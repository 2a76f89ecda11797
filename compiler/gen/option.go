package gen

import (
	"errors"

	"go.uber.org/zap"

	"github.com/syssam/modeldraw/compiler/load"
)

// DefaultOmitPrefix is the namespace prefix of Django's bundled apps.
const DefaultOmitPrefix = "django."

// DefaultRelationMarkers are the field type markers that make a field a
// candidate for an inferred relation. They are matched case-insensitively
// as substrings of the field type.
var DefaultRelationMarkers = []string{"FOREIGNKEY", "MANYTOMANY", "ONETOONEFIELD"}

// Config holds the options of one conversion run.
type Config struct {
	// Policy selects how relations become edges.
	Policy Policy
	// OmitPrefixes lists namespace prefixes whose entities are dropped
	// before the graph is built. Empty disables omission.
	OmitPrefixes []string
	// Mappings is the name mapping table, scanned in order.
	Mappings []*load.Mapping
	// Markers overrides DefaultRelationMarkers when set.
	Markers []string
	// IDs draws container and edge identifier suffixes.
	IDs IDGenerator
	// Inflect retries a missed target with its singular, camel-cased form.
	Inflect bool
	// EdgeLabels labels explicit edges with the relation name.
	EdgeLabels bool
	// Logger receives miss diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
	// Generator renders the graph. The compiler package defaults it to draw.io.
	Generator Generator
}

// Option configures a conversion run.
type Option func(*Config) error

// WithPolicy sets the relation policy.
func WithPolicy(p Policy) Option {
	return func(c *Config) error {
		if !p.Valid() {
			return NewConfigError("Policy", int(p), "unknown relation policy")
		}
		c.Policy = p
		return nil
	}
}

// WithOmitPrefixes enables namespace omission for the given prefixes.
// With no arguments DefaultOmitPrefix is used.
func WithOmitPrefixes(prefixes ...string) Option {
	return func(c *Config) error {
		if len(prefixes) == 0 {
			prefixes = []string{DefaultOmitPrefix}
		}
		for _, p := range prefixes {
			if p == "" {
				return NewConfigError("OmitPrefixes", nil, "empty prefix would omit every namespace")
			}
		}
		c.OmitPrefixes = append(c.OmitPrefixes, prefixes...)
		return nil
	}
}

// WithMappings sets the name mapping table.
func WithMappings(ms ...*load.Mapping) Option {
	return func(c *Config) error {
		if err := load.ValidateMappings(ms); err != nil {
			return err
		}
		c.Mappings = append(c.Mappings, ms...)
		return nil
	}
}

// WithRelationMarkers replaces the field type markers used by the
// inferred policy.
func WithRelationMarkers(markers ...string) Option {
	return func(c *Config) error {
		if len(markers) == 0 {
			return NewConfigError("Markers", nil, "at least one marker is required")
		}
		for _, m := range markers {
			if m == "" {
				return NewConfigError("Markers", nil, "empty marker matches every field")
			}
		}
		c.Markers = markers
		return nil
	}
}

// WithIDGenerator sets the identifier generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *Config) error {
		if g == nil {
			return NewConfigError("IDs", nil, "generator cannot be nil")
		}
		c.IDs = g
		return nil
	}
}

// WithInflection toggles the singular/camel-case retry on missed targets.
func WithInflection(enabled bool) Option {
	return func(c *Config) error {
		c.Inflect = enabled
		return nil
	}
}

// WithEdgeLabels toggles relation-name labels on explicit edges.
func WithEdgeLabels(enabled bool) Option {
	return func(c *Config) error {
		c.EdgeLabels = enabled
		return nil
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithGenerator sets the document generator.
func WithGenerator(g Generator) Option {
	return func(c *Config) error {
		if g == nil {
			return NewConfigError("Generator", nil, "generator cannot be nil")
		}
		c.Generator = g
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// markers returns the configured markers or the defaults.
func (c *Config) markers() []string {
	if len(c.Markers) > 0 {
		return c.Markers
	}
	return DefaultRelationMarkers
}

// logger returns the configured logger or a no-op one.
func (c *Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// ids returns the configured generator or a default random one.
func (c *Config) ids() IDGenerator {
	if c.IDs != nil {
		return c.IDs
	}
	g, _ := NewRandomGenerator(DefaultIDLength, DefaultIDAlphabet)
	return g
}
