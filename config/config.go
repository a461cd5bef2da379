/*
config.go - Server configuration

PURPOSE:
  Collects the server settings from command-line flags, falling back to
  environment variables, and builds the shared logrus logger.

PRECEDENCE:
  flag > environment variable > default

VARIABLES:
  PORT          HTTP server port (default: 8080)
  DB_PATH       SQLite database path (default: interest.db)
  LOG_LEVEL     logrus level name (default: info)
  CORS_ORIGINS  Comma-separated allowed origins (default: api defaults)

SEE ALSO:
  - cmd/server/main.go: Consumer
*/
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config holds the server configuration.
type Config struct {
	Port           int
	DBPath         string
	LogLevel       string
	AllowedOrigins []string
}

// Load parses args (without the program name) on top of the environment.
func Load(args []string) (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("PORT: %w", err)
	}

	cfg := &Config{}
	var origins string

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", port, "HTTP server port")
	fs.StringVar(&cfg.DBPath, "db", getEnv("DB_PATH", "interest.db"), "SQLite database path (\":memory:\" for in-memory)")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level")
	fs.StringVar(&origins, "cors-origins", getEnv("CORS_ORIGINS", ""), "Comma-separated allowed CORS origins")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port out of range: %d", cfg.Port)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path is required")
	}
	cfg.AllowedOrigins = splitList(origins)

	return cfg, nil
}

// NewLogger returns a JSON logger at the configured level. Unknown levels
// fall back to info.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
