// Package config handles bibtidy configuration files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LeducH/bibtex-tidy/internal/tidy"
)

// DefaultFile is the config file looked up in the working directory
// when no path is given.
const DefaultFile = ".bibtidy.yml"

// EnvConfigPath names the environment variable overriding the config
// file location.
const EnvConfigPath = "BIBTIDY_CONFIG"

// Config mirrors the option surface of the tidying engine as a yaml
// document. Flags given on the command line take precedence over
// values loaded here.
type Config struct {
	Omit                    []string   `yaml:"omit"`
	Curly                   bool       `yaml:"curly"`
	Numeric                 bool       `yaml:"numeric"`
	Space                   int        `yaml:"space"`
	Tab                     bool       `yaml:"tab"`
	Tex                     []string   `yaml:"tex"`
	Metadata                bool       `yaml:"metadata"`
	Sort                    SortOption `yaml:"sort"`
	Merge                   bool       `yaml:"merge"`
	StripEnclosingBraces    bool       `yaml:"stripEnclosingBraces"`
	DropAllCaps             bool       `yaml:"dropAllCaps"`
	EscapeSpecialCharacters *bool      `yaml:"escapeSpecialCharacters"`
	SortProperties          bool       `yaml:"sortProperties"`
}

// SortOption accepts either a boolean (sort by citation key) or a
// list of field names.
type SortOption struct {
	Enabled bool
	Fields  []string
}

func (s *SortOption) UnmarshalYAML(node *yaml.Node) error {
	var enabled bool
	if err := node.Decode(&enabled); err == nil {
		s.Enabled = enabled
		s.Fields = nil
		return nil
	}

	var fields []string
	if err := node.Decode(&fields); err == nil {
		s.Enabled = true
		s.Fields = fields
		return nil
	}

	return fmt.Errorf("sort must be a boolean or a list of field names")
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Space < 0 {
		return nil, fmt.Errorf("%s: space must be non-negative", path)
	}

	return &cfg, nil
}

// Options converts the file values to engine options. The Tex paths
// are returned separately; the caller loads the corpus.
func (c *Config) Options() tidy.Options {
	opts := tidy.Options{
		Omit:                 c.Omit,
		Curly:                c.Curly,
		Numeric:              c.Numeric,
		Space:                c.Space,
		Tab:                  c.Tab,
		Metadata:             c.Metadata,
		Sort:                 c.Sort.Enabled,
		SortFields:           c.Sort.Fields,
		Merge:                c.Merge,
		StripEnclosingBraces: c.StripEnclosingBraces,
		DropAllCaps:          c.DropAllCaps,
		SortProperties:       c.SortProperties,
	}
	if c.EscapeSpecialCharacters != nil && !*c.EscapeSpecialCharacters {
		opts.NoEscape = true
	}
	return opts
}
