// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	EnergyMeters MetersConfig `yaml:"energymeters"`
}

type MetersConfig struct {
	RegistersFile string          `yaml:"registers_file"`
	Listen        string          `yaml:"listen"`
	Poll          PollConfig      `yaml:"poll"`
	Cabinets      []CabinetConfig `yaml:"cabinets"`
	Meters        []MeterConfig   `yaml:"meters"`
}

// ---- CABINET ----

// A cabinet is one reachable endpoint hosting several metering nodes.
type CabinetConfig struct {
	ID       int    `yaml:"id"`
	Endpoint string `yaml:"endpoint"`
}

// ---- METER ----

type MeterConfig struct {
	Cabinet int    `yaml:"cabinet"`
	Node    int    `yaml:"node"` // device id on the cabinet bus
	Name    string `yaml:"name"`

	// Derived by Normalize.
	ID       string `yaml:"-"`
	Endpoint string `yaml:"-"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs       int `yaml:"interval_ms"`
	ConnectTimeoutMs int `yaml:"connect_timeout_ms"`
	RequestTimeoutMs int `yaml:"request_timeout_ms"`
}

func Load(path string) (*Config, error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.NewDecoder(bytes.NewReader(bb)).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return &cfg, nil
}
