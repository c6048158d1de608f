package rotation

import (
	"github.com/pkg/errors"

	"github.com/yurykabanov/logrot/pkg/pattern"
)

const (
	DefaultMinSize = "0"
	DefaultMaxSize = "2T"
)

// Options is a partial rotation configuration. Nil fields are unset and
// leave the value of a less specific level in place when merged.
type Options struct {
	Ignore   *bool   `mapstructure:"ignore"`
	MinSize  *string `mapstructure:"min_size"`
	MaxSize  *string `mapstructure:"max_size"`
	Interval *string `mapstructure:"interval"`
	Target   *string `mapstructure:"target"`
	Compress *string `mapstructure:"compress"`
	ExecPre  *string `mapstructure:"exec_pre"`
	ExecPost *string `mapstructure:"exec_post"`
}

// SpecDefinition overrides options for files matching any of its masks.
type SpecDefinition struct {
	Mask   []string `mapstructure:"mask"`
	Syntax string   `mapstructure:"syntax"`

	Options `mapstructure:",squash"`
}

type GlobalConfig struct {
	Defaults Options          `mapstructure:"defaults"`
	Specific []SpecDefinition `mapstructure:"specific"`
}

// RotationConfig is the effective configuration of a single file.
type RotationConfig struct {
	Ignore   bool
	MinSize  string
	MaxSize  string
	Interval string
	Target   string
	Compress string
	ExecPre  string
	ExecPost string
}

// Merge returns a copy of o with every field set in override replacing
// the corresponding field of o.
func (o Options) Merge(override Options) Options {
	if override.Ignore != nil {
		o.Ignore = override.Ignore
	}
	if override.MinSize != nil {
		o.MinSize = override.MinSize
	}
	if override.MaxSize != nil {
		o.MaxSize = override.MaxSize
	}
	if override.Interval != nil {
		o.Interval = override.Interval
	}
	if override.Target != nil {
		o.Target = override.Target
	}
	if override.Compress != nil {
		o.Compress = override.Compress
	}
	if override.ExecPre != nil {
		o.ExecPre = override.ExecPre
	}
	if override.ExecPost != nil {
		o.ExecPost = override.ExecPost
	}

	return o
}

func (o Options) Config() RotationConfig {
	return RotationConfig{
		Ignore:   o.Ignore != nil && *o.Ignore,
		MinSize:  stringOr(o.MinSize, DefaultMinSize),
		MaxSize:  stringOr(o.MaxSize, DefaultMaxSize),
		Interval: stringOr(o.Interval, ""),
		Target:   stringOr(o.Target, ""),
		Compress: stringOr(o.Compress, ""),
		ExecPre:  stringOr(o.ExecPre, ""),
		ExecPost: stringOr(o.ExecPost, ""),
	}
}

func stringOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

type compiledSpec struct {
	patterns []pattern.Pattern
	options  Options
}

// Resolver computes effective per-file configuration from a GlobalConfig.
// Masks are compiled once; the GlobalConfig itself is never modified.
type Resolver struct {
	defaults Options
	specific []compiledSpec
}

func NewResolver(config GlobalConfig) (*Resolver, error) {
	specific := make([]compiledSpec, 0, len(config.Specific))

	for i, def := range config.Specific {
		patterns, err := pattern.CompileAll(def.Syntax, def.Mask)
		if err != nil {
			return nil, errors.Wrapf(err, "specific entry #%d", i)
		}

		specific = append(specific, compiledSpec{patterns: patterns, options: def.Options})
	}

	return &Resolver{
		defaults: config.Defaults,
		specific: specific,
	}, nil
}

func (r *Resolver) Resolve(filename string) RotationConfig {
	options := r.defaults

	for _, spec := range r.specific {
		if pattern.Any(spec.patterns, filename) {
			options = options.Merge(spec.options)
		}
	}

	return options.Config()
}
