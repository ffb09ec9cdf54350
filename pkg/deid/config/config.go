// Package config loads de-identification settings from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/ukaji3/xlsdeid/pkg/deid"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
//
//	identifying_strings: [name, dob, ssn]
//	sheet: Patients
//	values:
//	  case_insensitive: false
//	  canonical_numbers: true
//	preview_rows: 10
//	debug: false
type Config struct {
	IdentifyingStrings []string `yaml:"identifying_strings"`
	Sheet              string   `yaml:"sheet"`
	Values             Values   `yaml:"values"`
	PreviewRows        int      `yaml:"preview_rows"`
	Debug              bool     `yaml:"debug"`
}

// Values configures pass two value comparison.
type Values struct {
	CaseInsensitive  bool  `yaml:"case_insensitive"`
	CanonicalNumbers *bool `yaml:"canonical_numbers"`
}

// Load reads a YAML file. An empty path returns the zero Config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.PreviewRows < 0 {
		return nil, fmt.Errorf("parse config %s: preview_rows must not be negative", path)
	}
	return cfg, nil
}

// Options converts the configuration to session options.
func (c *Config) Options() deid.Options {
	return deid.Options{
		Sheet:                 c.Sheet,
		IdentifyingStrings:    c.IdentifyingStrings,
		CaseInsensitiveValues: c.Values.CaseInsensitive,
		CanonicalNumbers:      c.Values.CanonicalNumbers,
		PreviewRows:           c.PreviewRows,
	}
}
