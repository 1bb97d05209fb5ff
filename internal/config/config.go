// Package config loads the pagerkit daemon configuration from a YAML file.
//
// Values may reference environment variables with ${VAR} syntax, which is the
// recommended way to keep webhook secrets and routing keys out of config
// files checked into version control.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Defaults applied by Load when the file omits a value.
const (
	DefaultListen = "127.0.0.1:8080"
	DefaultPath   = "/webhook"
)

// Config is the daemon configuration.
type Config struct {
	// Listen is the host:port the webhook server binds to.
	Listen string `yaml:"listen"`

	// Path is the URL path the webhook resource is mounted at.
	Path string `yaml:"path"`

	// Secrets are the shared webhook signing secrets. More than one may be
	// listed during secret rotation.
	Secrets []string `yaml:"secrets"`

	// RoutingKey is the Events API v2 integration key used by `pagerkit send`.
	RoutingKey string `yaml:"routing_key"`

	// BaseURL overrides the Events API base URL. Empty means production.
	BaseURL string `yaml:"base_url"`

	// LogLevel is DEBUG, INFO, WARN, or ERROR. Defaults to INFO.
	LogLevel string `yaml:"log_level"`
}

// Load reads, env-expands, parses, and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	expanded, err := expandEnvVars(string(data))
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}
}

// Validate checks structural constraints shared by all subcommands. Secrets
// and routing key are required only by the subcommands that use them, so they
// are checked there, not here.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path %q must start with /", c.Path)
	}
	for i, secret := range c.Secrets {
		if secret == "" {
			return fmt.Errorf("secrets[%d] is empty", i)
		}
	}
	return nil
}

// expandEnvVars replaces ${VAR} references with environment values. An unset
// variable is an error rather than an empty string, so a missing secret is
// caught at startup instead of producing a receiver that rejects everything.
func expandEnvVars(data string) (string, error) {
	var missing []string
	expanded := envVarPattern.ReplaceAllStringFunc(data, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		value, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("undefined environment variables: %s", strings.Join(missing, ", "))
	}
	return expanded, nil
}
