// Package config holds the harness configuration: where the workspace is,
// what marker cuts a run short, how often to poll, and how the status
// server and logging behave.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sanjeeviv/shark/internal/common"
)

const (
	DefaultPollInterval = 2 * time.Second

	envPrefix = "SHARK_CI_"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// WatchConfig describes one supervised run.
type WatchConfig struct {
	// Workspace is the working directory of the supervised tool and the
	// substring used to pick kill targets out of its process group.
	Workspace string `yaml:"workspace"`
	// Marker is the literal output fragment that means the run can be
	// cut short.
	Marker string `yaml:"marker"`
	// PollInterval accepts Go duration or ISO 8601 strings.
	PollInterval string `yaml:"poll_interval"`
	// LogFile is where the run's output is teed; relative paths resolve
	// under the workspace.
	LogFile string `yaml:"log_file"`
}

type Config struct {
	Watch   WatchConfig   `yaml:"watch"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// Load builds the effective configuration: defaults, then the optional yaml
// file, then SHARK_CI_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		logrus.Debugln("Loaded configuration from:", path)
	}

	cfg.applyEnvironment()

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Watch: WatchConfig{
			PollInterval: DefaultPollInterval.String(),
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8321,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func (c *Config) applyEnvironment() {
	if v, ok := lookup("WORKSPACE"); ok {
		c.Watch.Workspace = v
	}
	if v, ok := lookup("MARKER"); ok {
		c.Watch.Marker = v
	}
	if v, ok := lookup("POLL_INTERVAL"); ok {
		c.Watch.PollInterval = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		c.Watch.LogFile = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, len(v) > 0
}

// GetPollInterval parses the configured interval, falling back to the
// default on an empty value.
func (c *Config) GetPollInterval() (time.Duration, error) {
	if len(strings.TrimSpace(c.Watch.PollInterval)) == 0 {
		return DefaultPollInterval, nil
	}
	return common.ValidateInterval(c.Watch.PollInterval)
}

// Validate checks the fields a supervised run cannot start without.
func (c *Config) Validate() error {
	if len(c.Watch.Workspace) == 0 {
		return fmt.Errorf("watch.workspace is required")
	}
	if len(c.Watch.Marker) == 0 {
		return fmt.Errorf("watch.marker is required")
	}
	if _, err := c.GetPollInterval(); err != nil {
		return fmt.Errorf("watch.poll_interval: %w", err)
	}
	return nil
}
