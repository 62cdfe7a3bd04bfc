package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultPagesPerStep = 256

type config struct {
	Source          string `yaml:"source"`
	Destination     string `yaml:"destination"`
	SourceName      string `yaml:"source_name"`
	DestinationName string `yaml:"destination_name"`
	PagesPerStep    int    `yaml:"pages_per_step"`
}

func defaultConfig() config {
	return config{PagesPerStep: defaultPagesPerStep}
}

func loadConfig(path string) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// merge overlays the set fields of o onto c. Flags are merged after the
// config file, so they win.
func (c config) merge(o config) config {
	if o.Source != "" {
		c.Source = o.Source
	}
	if o.Destination != "" {
		c.Destination = o.Destination
	}
	if o.SourceName != "" {
		c.SourceName = o.SourceName
	}
	if o.DestinationName != "" {
		c.DestinationName = o.DestinationName
	}
	if o.PagesPerStep != 0 {
		c.PagesPerStep = o.PagesPerStep
	}
	return c
}

func (c config) validate() error {
	if c.Source == "" {
		return errors.New("source database is required (-src or config)")
	}
	if c.Destination == "" {
		return errors.New("destination database is required (-dst or config)")
	}
	if c.Source == c.Destination {
		return errors.New("source and destination must differ")
	}
	return nil
}
