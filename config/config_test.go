package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "interest.db")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load(nil)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "interest.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_EnvironmentThenFlags(t *testing.T) {
	// GIVEN: Environment overrides for every setting
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/calc.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	// WHEN: Only the port and db are passed as flags
	cfg, err := Load([]string{"-port", "3000", "-db", ":memory:"})

	// THEN: Flags win, the rest comes from the environment
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load(nil)
	assert.Error(t, err)

	t.Setenv("PORT", "8080")
	_, err = Load([]string{"-port", "70000"})
	assert.Error(t, err)

	_, err = Load([]string{"-db", ""})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogLevel: "warn"}
	assert.Equal(t, logrus.WarnLevel, cfg.NewLogger().GetLevel())

	cfg.LogLevel = "loud"
	logger := cfg.NewLogger()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
