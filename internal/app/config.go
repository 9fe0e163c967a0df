package app

import (
	"errors"

	"github.com/zclconf/go-cty/cty"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModulesPath string // directory of .hcl declarations + Go handlers
	ConfigPath  string // optional static config file

	Outputs   []string
	Inputs    map[string]cty.Value
	Overrides map[string]cty.Value

	List        bool
	CheckCycles bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModulesPath == "" {
		return nil, errors.New("ModulesPath is a required configuration field and cannot be empty")
	}
	if len(cfg.Outputs) == 0 && !cfg.List {
		return nil, errors.New("at least one output must be requested unless listing variables")
	}
	return &cfg, nil
}
