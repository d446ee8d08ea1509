package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/DreamyTwilight/transport-catalogue/pkg/router"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatGTFS = "gtfs"

	defaultListenAddr  = ":5000"
	defaultBusWaitTime = 6
	defaultBusVelocity = 40
	defaultWorkers     = 8
)

var ErrInvalidConfig = errors.New("invalid config")

type ServerConfig struct {
	ListenAddr     string   `yaml:"listen_addr" validate:"required"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// NetworkConfig where the transit network comes from. Source is a JSON request document or a
// GTFS static zip, depending on Format.
type NetworkConfig struct {
	Source  string `yaml:"source"`
	Format  string `yaml:"format" validate:"oneof=json gtfs"`
	Workers int    `yaml:"workers" validate:"gte=1"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

type AppConfig struct {
	Server  ServerConfig           `yaml:"server"`
	Network NetworkConfig          `yaml:"network"`
	Log     LogConfig              `yaml:"log"`
	Routing router.RoutingSettings `yaml:"routing"`
}

func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			ListenAddr:     defaultListenAddr,
			AllowedOrigins: []string{"https://*", "http://*"},
		},
		Network: NetworkConfig{
			Format:  FormatJSON,
			Workers: defaultWorkers,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Routing: router.NewRoutingSettings(defaultBusWaitTime, defaultBusVelocity),
	}
}

// Load builds the config from defaults, the YAML file at path (skipped when path is empty) and
// TC_* environment overrides, in that order.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadEnvFile loads a .env file into the process environment without overriding variables
// that are already set. a missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) {
	cfg.Server.ListenAddr = getEnv("TC_LISTEN_ADDR", cfg.Server.ListenAddr)
	cfg.Network.Source = getEnv("TC_NETWORK_SOURCE", cfg.Network.Source)
	cfg.Network.Format = getEnv("TC_NETWORK_FORMAT", cfg.Network.Format)
	cfg.Network.Workers = getIntEnv("TC_WORKERS", cfg.Network.Workers)
	cfg.Log.Level = getEnv("TC_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("TC_LOG_FORMAT", cfg.Log.Format)
	cfg.Routing.BusWaitTime = getIntEnv("TC_BUS_WAIT_TIME", cfg.Routing.BusWaitTime)
	cfg.Routing.BusVelocity = getIntEnv("TC_BUS_VELOCITY", cfg.Routing.BusVelocity)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
