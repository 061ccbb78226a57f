package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbodylab/internal/driver"
	"github.com/san-kum/nbodylab/internal/gravity"
	"github.com/san-kum/nbodylab/internal/nbody"
)

const (
	DefaultDt          = 1e-3
	DefaultTEnd        = 0.1
	DefaultWorkers     = 8
	DefaultReportEvery = 10
	DefaultBodies      = 16
)

type Config struct {
	Input          string  `yaml:"input"`
	Scenario       string  `yaml:"scenario"`
	Bodies         int     `yaml:"bodies"`
	Dt             float64 `yaml:"dt"`
	TEnd           float64 `yaml:"t_end"`
	Workers        int     `yaml:"workers"`
	ReportEvery    int     `yaml:"report_every"`
	Partition      string  `yaml:"partition"`
	ClassicKinetic bool    `yaml:"classic_kinetic"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    "binary",
		Bodies:      DefaultBodies,
		Dt:          DefaultDt,
		TEnd:        DefaultTEnd,
		Workers:     DefaultWorkers,
		ReportEvery: DefaultReportEvery,
		Partition:   "balanced",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PartitionPolicy maps the yaml partition name to the engine policy.
func (c *Config) PartitionPolicy() (gravity.Policy, error) {
	switch c.Partition {
	case "", "balanced":
		return gravity.PartitionBalanced, nil
	case "block":
		return gravity.PartitionBlock, nil
	default:
		return 0, fmt.Errorf("unknown partition policy: %s", c.Partition)
	}
}

// DriverConfig converts to the driver's runtime configuration.
func (c *Config) DriverConfig() (driver.Config, error) {
	policy, err := c.PartitionPolicy()
	if err != nil {
		return driver.Config{}, err
	}
	return driver.Config{
		Dt:             c.Dt,
		TEnd:           c.TEnd,
		Workers:        c.Workers,
		ReportEvery:    c.ReportEvery,
		Partition:      policy,
		ClassicKinetic: c.ClassicKinetic,
	}, nil
}

// MakeSystem builds the initial body set: from the input file when one is
// configured, otherwise from the named scenario generator.
func (c *Config) MakeSystem() (nbody.System, error) {
	if c.Input != "" {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return nbody.Read(f)
	}

	switch c.Scenario {
	case "binary":
		return nbody.Binary(), nil
	case "ring":
		n := c.Bodies
		if n < 1 {
			n = DefaultBodies
		}
		return nbody.Ring(n), nil
	default:
		return nil, fmt.Errorf("unknown scenario: %s", c.Scenario)
	}
}
