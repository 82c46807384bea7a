package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates configuration sources in priority order.
// Sources added earlier win: build merges them with mergo, which only
// fills fields still at their zero value. Source errors are collected
// with errors.Join instead of aborting, so a broken JSON file does not
// hide a broken env variable.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{configs: make([]*StructuredConfig, 0, 4)}
}

// withEnv adds the environment as a source.
func (b *configBuilder) withEnv() *configBuilder {
	cfg := new(StructuredConfig)
	if err := parseEnv(cfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	return b.add(cfg)
}

// withFlags adds command-line flags as a source.
func (b *configBuilder) withFlags() *configBuilder {
	return b.add(ParseFlags())
}

// withJSON adds the JSON config file as a source, if any source added so
// far names one. The file sits at the lowest priority, so it has to be
// resolved from the already-collected sources rather than read eagerly.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath()
	if path == "" {
		return b
	}

	cfg, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	return b.add(cfg)
}

func (b *configBuilder) add(cfg *StructuredConfig) *configBuilder {
	b.configs = append(b.configs, cfg)
	return b
}

// jsonPath returns the config file path named by the highest-priority
// source that sets one, or "" when none does.
func (b *configBuilder) jsonPath() string {
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			return cfg.JSONFilePath
		}
	}
	return ""
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(merged, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return merged, merged.validate()
}
