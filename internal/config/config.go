package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backends
	PrimaryBackend  string
	FallbackBackend string
	SQLiteDBPath    string
	FlatFileDir     string

	// Cache
	CacheTTL  time.Duration
	CacheSize int

	// AMQP (mirror queue, optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Single-tenant default when no user header is supplied
	DefaultUserID int64
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		PrimaryBackend:  getEnv("PRIMARY_BACKEND", "sqlite"),
		FallbackBackend: getEnv("FALLBACK_BACKEND", "flatfile"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/masareef.db"),
		FlatFileDir:     getEnv("FLATFILE_DIR", "./data/ledger"),

		CacheTTL:  getEnvDuration("CACHE_TTL", 120*time.Second),
		CacheSize: getEnvInt("CACHE_SIZE", 64),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "masareef"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "mirror_transactions"),

		DefaultUserID: int64(getEnvInt("DEFAULT_USER_ID", 1)),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"sqlite", "flatfile", "memory"}
	for _, b := range []string{c.PrimaryBackend, c.FallbackBackend} {
		if !containsString(validBackends, b) {
			errs = append(errs, fmt.Sprintf("invalid backend '%s': must be one of %v", b, validBackends))
		}
	}
	if c.PrimaryBackend == c.FallbackBackend {
		errs = append(errs, fmt.Sprintf("primary and fallback backend are both '%s'", c.PrimaryBackend))
	}

	if c.PrimaryBackend == "sqlite" || c.FallbackBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if (c.PrimaryBackend == "flatfile" || c.FallbackBackend == "flatfile") && c.FlatFileDir == "" {
		errs = append(errs, "flat-file directory cannot be empty when using flatfile backend")
	}

	// TTL bounds staleness even without explicit invalidation.
	if c.CacheTTL < 60*time.Second || c.CacheTTL > 300*time.Second {
		errs = append(errs, fmt.Sprintf("invalid cache TTL %v: must be between 60s and 300s", c.CacheTTL))
	}
	if c.CacheSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.DefaultUserID < 1 {
		errs = append(errs, fmt.Sprintf("invalid default user id %d: must be at least 1", c.DefaultUserID))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
