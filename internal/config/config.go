// Package config handles configuration loading for the lpf command.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	// Context overrides the default LPF JSON-LD context on output.
	Context string `yaml:"context,omitempty"`

	// Terms is the path to the AAT terms JSON file.
	Terms string `yaml:"terms,omitempty"`

	PostGIS PostGIS `yaml:"postgis,omitempty"`
}

// PostGIS holds the connection parameters for the export target.
type PostGIS struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"dbname"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Config{
		PostGIS: PostGIS{Host: "localhost", Port: 5432},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
