package connector

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is time.Duration with a human-readable YAML form ("5s", "30m").
// Bare integers are accepted as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("connector: invalid duration %q", value.Value)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(n)
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("connector: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) { return time.Duration(d).String(), nil }

// Std converts to the standard library representation.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config describes one store connection.
type Config struct {
	Driver         string            `json:"driver" yaml:"driver"`
	Host           string            `json:"host" yaml:"host"`
	Port           int               `json:"port" yaml:"port"`
	Database       string            `json:"database" yaml:"database"`
	Username       string            `json:"username" yaml:"username"`
	Password       string            `json:"password" yaml:"password"`
	SSLMode        string            `json:"ssl_mode" yaml:"ssl_mode"`
	Params         map[string]string `json:"params" yaml:"params"`
	Pool           PoolConfig        `json:"pool" yaml:"pool"`
	ConnectTimeout Duration          `json:"connect_timeout" yaml:"connect_timeout"`
	Retry          *RetryConfig      `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// PoolConfig defines connection pool settings.
type PoolConfig struct {
	MaxOpen     int      `json:"max_open" yaml:"max_open"`
	MaxIdle     int      `json:"max_idle" yaml:"max_idle"`
	MaxLifetime Duration `json:"max_lifetime" yaml:"max_lifetime"`
	MaxIdleTime Duration `json:"max_idle_time" yaml:"max_idle_time"`
}

// RetryConfig defines connect retry behavior.
type RetryConfig struct {
	MaxRetries int      `json:"max_retries" yaml:"max_retries"`
	BaseDelay  Duration `json:"base_delay" yaml:"base_delay"`
	MaxDelay   Duration `json:"max_delay" yaml:"max_delay"`
}

// LoadConfig reads a YAML connection config from path.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("connector: read config: %w", err)
	}
	return ParseConfig(raw)
}

// ParseConfig decodes a YAML connection config.
func ParseConfig(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("connector: parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields the chosen driver requires.
func (c Config) Validate() error {
	switch c.Driver {
	case "sqlite":
		if c.Database == "" {
			return fmt.Errorf("connector: sqlite requires a database path (or :memory:)")
		}
		return nil
	case "postgres", "mysql":
		if c.Host == "" {
			return fmt.Errorf("connector: %s requires a host", c.Driver)
		}
		if c.Port < 0 || c.Port > 65535 {
			return fmt.Errorf("connector: invalid port %d", c.Port)
		}
		if c.Database == "" {
			return fmt.Errorf("connector: %s requires a database name", c.Driver)
		}
		return nil
	case "":
		return fmt.Errorf("connector: driver is required")
	default:
		return fmt.Errorf("connector: unknown driver %q", c.Driver)
	}
}

// withPoolDefaults fills unset pool settings.
func (c Config) withPoolDefaults() Config {
	if c.Pool.MaxOpen <= 0 {
		c.Pool.MaxOpen = 10
	}
	if c.Pool.MaxIdle <= 0 {
		c.Pool.MaxIdle = 5
	}
	if c.Pool.MaxLifetime == 0 {
		c.Pool.MaxLifetime = Duration(time.Hour)
	}
	if c.Pool.MaxIdleTime == 0 {
		c.Pool.MaxIdleTime = Duration(30 * time.Minute)
	}
	return c
}
