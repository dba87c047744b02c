// Package config loads knitnet run settings from YAML, a .env file and
// KNITNET_* environment variables, in that order, and validates the result.
package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultMaxConnections = 4
	DefaultVerbosity      = 0
)

// validate is a singleton validator instance
var validate = validator.New()

// Config is the full run configuration.
type Config struct {
	Topology TopologyConfig `yaml:"topology"`
	Log      LogConfig      `yaml:"log"`
	Output   OutputConfig   `yaml:"output"`
}

// TopologyConfig tunes weft propagation.
type TopologyConfig struct {
	MaxConnections int  `yaml:"max_connections" validate:"min=1,max=64"`
	Precise        bool `yaml:"precise"`
	// StartRow is nil for "row with the longest total length".
	StartRow             *int `yaml:"start_row" validate:"omitempty,min=0"`
	ForceContinuousStart bool `yaml:"force_continuous_start"`
	ForceContinuousEnd   bool `yaml:"force_continuous_end"`
	LeastConnected       bool `yaml:"least_connected"`
}

// LogConfig holds the klog verbosity.
type LogConfig struct {
	Verbosity int `yaml:"verbosity" validate:"min=0,max=5"`
}

// OutputConfig names optional artifacts of a run.
type OutputConfig struct {
	Snapshot string `yaml:"snapshot"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Topology: TopologyConfig{MaxConnections: DefaultMaxConnections},
		Log:      LogConfig{Verbosity: DefaultVerbosity},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), the given env files (".env" when none is given; a missing
// default file is not an error) and KNITNET_* variables, then validates it.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "config: read")
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "config: parse %s", path)
		}
	}

	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil {
			klog.V(1).Infof("config: no .env file found, using environment variables")
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, errors.Wrap(err, "config: env file")
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields from KNITNET_* variables. Values that do not
// parse are logged and ignored.
func (c *Config) applyEnv() {
	c.Topology.MaxConnections = getEnvAsInt("KNITNET_MAX_CONNECTIONS", c.Topology.MaxConnections)
	c.Topology.Precise = getEnvAsBool("KNITNET_PRECISE", c.Topology.Precise)
	c.Topology.ForceContinuousStart = getEnvAsBool("KNITNET_FORCE_CONTINUOUS_START", c.Topology.ForceContinuousStart)
	c.Topology.ForceContinuousEnd = getEnvAsBool("KNITNET_FORCE_CONTINUOUS_END", c.Topology.ForceContinuousEnd)
	c.Topology.LeastConnected = getEnvAsBool("KNITNET_LEAST_CONNECTED", c.Topology.LeastConnected)
	if _, ok := os.LookupEnv("KNITNET_START_ROW"); ok {
		row := getEnvAsInt("KNITNET_START_ROW", -1)
		if row >= 0 {
			c.Topology.StartRow = &row
		}
	}
	c.Log.Verbosity = getEnvAsInt("KNITNET_VERBOSITY", c.Log.Verbosity)
	c.Output.Snapshot = getEnv("KNITNET_SNAPSHOT", c.Output.Snapshot)
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "config: invalid")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		klog.Warningf("config: invalid integer for %s, using %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		klog.Warningf("config: invalid boolean for %s, using %t", key, defaultValue)
		return defaultValue
	}

	return value
}
