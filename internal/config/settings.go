// ABOUTME: Dotted-key accessors for `fitlog config show` and `fitlog config set`.
// ABOUTME: Each key maps to one Config field with string parsing and validation.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type setting struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func durationSetter(field func(c *Config) *string) func(c *Config, v string) error {
	return func(c *Config, v string) error {
		if v != "" {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid duration %q: %w", v, err)
			}
		}
		*field(c) = v
		return nil
	}
}

func stringSetter(field func(c *Config) *string) func(c *Config, v string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

var settings = map[string]setting{
	"backend": {
		get: func(c *Config) string { return c.GetBackend() },
		set: func(c *Config, v string) error {
			prev := c.Backend
			c.Backend = v
			if err := c.Validate(); err != nil {
				c.Backend = prev
				return err
			}
			return nil
		},
	},
	"data_dir": {
		get: func(c *Config) string { return c.GetDataDir() },
		set: stringSetter(func(c *Config) *string { return &c.DataDir }),
	},
	"postgres_dsn": {
		get: func(c *Config) string { return c.PostgresDSN },
		set: stringSetter(func(c *Config) *string { return &c.PostgresDSN }),
	},
	"window": {
		get: func(c *Config) string { return strconv.Itoa(c.GetWindow()) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("window must be a positive integer, got %q", v)
			}
			c.Window = n
			return nil
		},
	},
	"mode": {
		get: func(c *Config) string { return string(c.GetMode()) },
		set: func(c *Config, v string) error {
			prev := c.Mode
			c.Mode = v
			if err := c.Validate(); err != nil {
				c.Mode = prev
				return err
			}
			return nil
		},
	},
	"log_level": {
		get: func(c *Config) string { return c.LogLevel },
		set: stringSetter(func(c *Config) *string { return &c.LogLevel }),
	},
	"log_format": {
		get: func(c *Config) string { return c.LogFormat },
		set: func(c *Config, v string) error {
			if v != "" && v != "json" && v != "console" {
				return fmt.Errorf("log_format must be json or console, got %q", v)
			}
			c.LogFormat = v
			return nil
		},
	},
	"server.addr": {
		get: func(c *Config) string { return c.GetServerAddr() },
		set: stringSetter(func(c *Config) *string { return &c.Server.Addr }),
	},
	"coach.provider": {
		get: func(c *Config) string { return c.Coach.Provider },
		set: func(c *Config, v string) error {
			prev := c.Coach.Provider
			c.Coach.Provider = v
			if _, err := c.CoachSettings(); err != nil {
				c.Coach.Provider = prev
				return err
			}
			return nil
		},
	},
	"coach.base_url": {
		get: func(c *Config) string { return c.Coach.BaseURL },
		set: stringSetter(func(c *Config) *string { return &c.Coach.BaseURL }),
	},
	"coach.model": {
		get: func(c *Config) string { return c.Coach.Model },
		set: stringSetter(func(c *Config) *string { return &c.Coach.Model }),
	},
	"coach.api_key_env": {
		get: func(c *Config) string { return c.Coach.APIKeyEnv },
		set: stringSetter(func(c *Config) *string { return &c.Coach.APIKeyEnv }),
	},
	"coach.timeout": {
		get: func(c *Config) string { return c.Coach.Timeout },
		set: durationSetter(func(c *Config) *string { return &c.Coach.Timeout }),
	},
	"redis.addr": {
		get: func(c *Config) string { return c.Redis.Addr },
		set: stringSetter(func(c *Config) *string { return &c.Redis.Addr }),
	},
	"redis.ttl": {
		get: func(c *Config) string { return c.Redis.TTL },
		set: durationSetter(func(c *Config) *string { return &c.Redis.TTL }),
	},
}

// Keys returns every settable key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the effective value of key.
func (c *Config) Get(key string) (string, error) {
	s, ok := settings[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("unknown config key: %q", key)
	}
	return s.get(c), nil
}

// Set parses value into key.
func (c *Config) Set(key, value string) error {
	s, ok := settings[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}
	return s.set(c, strings.TrimSpace(value))
}
