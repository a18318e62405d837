package config

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"absim/internal/catalog"
	"absim/internal/errors"
	"absim/internal/population"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig `yaml:"simulation" validate:"required"`
	Server     ServerConfig     `yaml:"server" validate:"required"`
	LogLevel   string           `yaml:"log_level" validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE"`
}

// SimulationConfig holds everything that determines a run's output
type SimulationConfig struct {
	Seed         int64             `yaml:"seed" json:"seed"`
	NumConsumers int               `yaml:"num_consumers" json:"num_consumers" validate:"gt=0"`
	NumItems     int               `yaml:"num_items" json:"num_items" validate:"gt=0"`
	Workers      int               `yaml:"workers" json:"workers" validate:"gte=1,lte=1024"`
	Tests        TestConfig        `yaml:"tests" json:"tests"`
	Population   population.Config `yaml:"population" json:"population"`
	Catalog      catalog.Config    `yaml:"catalog" json:"catalog"`
}

// TestConfig holds the significance test options
type TestConfig struct {
	EqualVar        bool    `yaml:"equal_var" json:"equal_var"`
	YatesCorrection bool    `yaml:"yates_correction" json:"yates_correction"`
	Alpha           float64 `yaml:"alpha" json:"alpha" validate:"gt=0,lt=1"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `yaml:"port" validate:"required,numeric"`
	GinMode string `yaml:"gin_mode" validate:"oneof=debug release test"`
}

var validate = validator.New()

// Default returns the reference configuration
func Default() *Config {
	return &Config{
		Simulation: DefaultSimulation(),
		Server: ServerConfig{
			Port:    "8080",
			GinMode: "debug",
		},
		LogLevel: "INFO",
	}
}

// DefaultSimulation returns the reference simulation parameters
func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		Seed:         42,
		NumConsumers: 1000,
		NumItems:     30,
		Workers:      1,
		Tests: TestConfig{
			EqualVar:        true,
			YatesCorrection: true,
			Alpha:           0.05,
		},
		Population: population.DefaultConfig(),
		Catalog:    catalog.DefaultConfig(),
	}
}

// Load reads configuration from the optional ABSIM_CONFIG file and
// environment variables, then validates it. Environment wins over the file.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("ABSIM_CONFIG"))
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file.
func LoadFile(path string) (*Config, error) {
	config := Default()

	if path != "" {
		if err := loadYAML(path, config); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}

	loadSimulationEnv(&config.Simulation)
	loadServerEnv(&config.Server)
	config.LogLevel = strings.ToUpper(getEnvOrDefault("LOG_LEVEL", config.LogLevel))

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadYAML(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("read %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("parse %s: %v", path, err))
	}
	return nil
}

func loadSimulationEnv(sim *SimulationConfig) {
	sim.Seed = getEnvInt64OrDefault("SEED", sim.Seed)
	sim.NumConsumers = getEnvIntOrDefault("NUM_CONSUMERS", sim.NumConsumers)
	sim.NumItems = getEnvIntOrDefault("NUM_ITEMS", sim.NumItems)
	sim.Workers = getEnvIntOrDefault("TRIAL_WORKERS", sim.Workers)
	sim.Tests.EqualVar = getEnvBoolOrDefault("EQUAL_VAR", sim.Tests.EqualVar)
	sim.Tests.YatesCorrection = getEnvBoolOrDefault("YATES_CORRECTION", sim.Tests.YatesCorrection)
	sim.Tests.Alpha = getEnvFloatOrDefault("ALPHA", sim.Tests.Alpha)
}

func loadServerEnv(server *ServerConfig) {
	server.Port = getEnvOrDefault("PORT", server.Port)
	server.GinMode = getEnvOrDefault("GIN_MODE", server.GinMode)
}

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	return config.Simulation.Validate()
}

// Validate checks the simulation section, including the weight tables
func (s SimulationConfig) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	if err := s.Population.Validate(); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if err := s.Catalog.Validate(); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

// Hash fingerprints the parts of the configuration that shape results
// beyond seed and sizes
func (s SimulationConfig) Hash() string {
	data, err := json.Marshal(struct {
		Tests      TestConfig        `json:"tests"`
		Population population.Config `json:"population"`
		Catalog    catalog.Config    `json:"catalog"`
	}{s.Tests, s.Population, s.Catalog})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
