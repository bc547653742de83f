package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvVars lists every environment variable Load reads, so tests can
// start from a clean slate.
var configEnvVars = []string{
	"TASKDECK_SERVER_PORT",
	"TASKDECK_SERVER_LOG_LEVEL",
	"TASKDECK_DATABASE_URI",
	"TASKDECK_DATABASE_NAME",
	"TASKDECK_AUTH_JWT_SECRET",
	"TASKDECK_AUTH_TOKEN_LIFETIME_MINUTES",
}

// setupEnv clears all config environment variables and sets the given ones.
func setupEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()

	originalValues := make(map[string]string)
	for _, name := range configEnvVars {
		originalValues[name] = os.Getenv(name)
		os.Unsetenv(name)
	}

	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	return func() {
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies the defaults applied when only the required
// settings come from the environment.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"TASKDECK_DATABASE_URI":    "mongodb://localhost:27017",
		"TASKDECK_AUTH_JWT_SECRET": "thisisasecretkeythatis32charslong!!",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, "taskdeck", cfg.Database.Name, "Default database name should be 'taskdeck'")
	assert.Equal(t, 7*24*60, cfg.Auth.TokenLifetimeMinutes, "Default token lifetime should be 7 days")
}

// TestLoadFromEnv verifies that Load reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"TASKDECK_SERVER_PORT":                 "9090",
		"TASKDECK_SERVER_LOG_LEVEL":            "debug",
		"TASKDECK_DATABASE_URI":                "mongodb://db.internal:27017",
		"TASKDECK_DATABASE_NAME":               "taskdeck_test",
		"TASKDECK_AUTH_JWT_SECRET":             "thisisasecretkeythatis32charslong!!",
		"TASKDECK_AUTH_TOKEN_LIFETIME_MINUTES": "60",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Database.URI)
	assert.Equal(t, "taskdeck_test", cfg.Database.Name)
	assert.Equal(t, "thisisasecretkeythatis32charslong!!", cfg.Auth.JWTSecret)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
}

// TestLoadValidationErrors verifies that Load rejects invalid configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name           string
		envVars        map[string]string
		errorSubstring string
	}{
		{
			name: "Missing required fields",
			envVars: map[string]string{
				"TASKDECK_SERVER_PORT": "9090",
				// Missing database URI and JWT secret
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Invalid port number",
			envVars: map[string]string{
				"TASKDECK_SERVER_PORT":     "999999",
				"TASKDECK_DATABASE_URI":    "mongodb://localhost:27017",
				"TASKDECK_AUTH_JWT_SECRET": "thisisasecretkeythatis32charslong!!",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"TASKDECK_SERVER_LOG_LEVEL": "loud",
				"TASKDECK_DATABASE_URI":     "mongodb://localhost:27017",
				"TASKDECK_AUTH_JWT_SECRET":  "thisisasecretkeythatis32charslong!!",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Short JWT secret",
			envVars: map[string]string{
				"TASKDECK_DATABASE_URI":    "mongodb://localhost:27017",
				"TASKDECK_AUTH_JWT_SECRET": "tooshort",
			},
			errorSubstring: "validation failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			assert.Error(t, err, "Load() should return an error with invalid configuration")
			if err != nil {
				assert.Contains(t, err.Error(), tc.errorSubstring)
			}
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
