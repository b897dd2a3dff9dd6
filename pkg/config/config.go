package config

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTOMLFilename = "proc.toml"
	DefaultYAMLFilename = "proc.yaml"
)

// UnboundedRestarts is the effective restart limit when max_restarts is
// explicitly set to 0.
const UnboundedRestarts = math.MaxInt

// Config is the full service definition file. Dependencies must be acyclic
// and every depends_on entry must name a service in the same config; both are
// checked once at load time, before anything is spawned.
type Config struct {
	// EnvFile is an optional dotenv file whose variables are merged beneath
	// every service's environments.
	EnvFile  string             `toml:"env_file" yaml:"env_file"`
	Services map[string]Service `toml:"services" yaml:"services"`

	baseEnv map[string]string
}

type Service struct {
	Command       string            `toml:"command" yaml:"command"`
	DependsOn     []string          `toml:"depends_on" yaml:"depends_on"`
	HealthChecker *HealthChecker    `toml:"health_checker" yaml:"health_checker"`
	Environments  map[string]string `toml:"environments" yaml:"environments"`
	DelaySec      int               `toml:"delay_sec" yaml:"delay_sec"`
	Restart       bool              `toml:"restart" yaml:"restart"`
	MaxRestarts   *int              `toml:"max_restarts" yaml:"max_restarts"`
}

type HealthChecker struct {
	OutputTrigger []string `toml:"output_trigger" yaml:"output_trigger"`
}

// OutputTriggers returns the declared trigger substrings, nil-safe.
func (s Service) OutputTriggers() []string {
	if s.HealthChecker == nil {
		return nil
	}
	return s.HealthChecker.OutputTrigger
}

// EffectiveMaxRestarts resolves the max_restarts field: unset means 3,
// explicit 0 means unbounded, anything else is taken literally. A service
// without restart enabled never restarts.
func (s Service) EffectiveMaxRestarts() int {
	if !s.Restart {
		return 0
	}
	if s.MaxRestarts == nil {
		return 3
	}
	if *s.MaxRestarts == 0 {
		return UnboundedRestarts
	}
	return *s.MaxRestarts
}

// DefaultPath locates the config file in dir, preferring proc.toml over
// proc.yaml.
func DefaultPath(dir string) (string, error) {
	for _, name := range []string{DefaultTOMLFilename, DefaultYAMLFilename} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.Errorf("no %s or %s found in %s", DefaultTOMLFilename, DefaultYAMLFilename, dir)
}

// Load reads, parses, and validates a config file. The format is chosen by
// extension: .toml uses TOML, everything else is parsed as YAML.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return nil, errors.Wrap(err, "parse config toml")
		}
	} else {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, errors.Wrap(err, "parse config yaml")
		}
	}

	if cfg.EnvFile != "" {
		envPath := cfg.EnvFile
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(filepath.Dir(path), envPath)
		}
		baseEnv, err := godotenv.Read(envPath)
		if err != nil {
			return nil, errors.Wrap(err, "read env_file")
		}
		cfg.baseEnv = baseEnv
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BaseEnv returns the variables loaded from env_file, if any.
func (c *Config) BaseEnv() map[string]string {
	return c.baseEnv
}

// ServiceNames returns every service name, sorted.
func (c *Config) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
