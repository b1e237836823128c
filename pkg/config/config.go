// Package config holds the rendering options and reads them from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flytaly/mdpreview/pkg/highlight"
)

type Config struct {
	// RelativeImageURLPrefix is prepended to relative image sources.
	RelativeImageURLPrefix string `yaml:"relativeImageUrlPrefix"`
	// DetailsTagDefaultOpen renders <details> blocks expanded.
	DetailsTagDefaultOpen bool `yaml:"detailsTagDefaultOpen"`
	// CodeCopy adds copy buttons to code blocks.
	CodeCopy bool `yaml:"codeCopy"`
	// Theme is the chroma style used for highlighted code.
	Theme string `yaml:"theme"`
}

func Default() Config {
	return Config{Theme: highlight.DefaultTheme}
}

// Load reads a YAML config file. Missing keys keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Theme == "" {
		cfg.Theme = highlight.DefaultTheme
	}
	return cfg, nil
}
