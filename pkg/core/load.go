// pkg/core/load.go
package core

import (
	"os"

	"github.com/joeydtaylor/steeze-doris/pkg/codec"
	manifest "github.com/joeydtaylor/steeze-doris/pkg/manifest"
)

// LoadConfig reads a TOML or YAML manifest (by extension) and validates it.
func LoadConfig(path string) (manifest.Config, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return manifest.Config{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return manifest.Config{}, err
	}
	var cfg manifest.Config
	if err := c.Unmarshal(b, &cfg); err != nil {
		return manifest.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return manifest.Config{}, err
	}
	return cfg, nil
}
