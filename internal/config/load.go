package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied when neither the environment nor a config file
// provides a setting.
const (
	defaultPort                 = 8080
	defaultLogLevel             = "info"
	defaultDatabaseName         = "taskdeck"
	defaultTokenLifetimeMinutes = 7 * 24 * 60 // 7 days
)

// Load reads configuration from environment variables and, if present, a
// config.yaml in the working directory. Environment variables use the
// TASKDECK_ prefix with underscores for nesting (TASKDECK_SERVER_PORT,
// TASKDECK_DATABASE_URI, TASKDECK_AUTH_JWT_SECRET, ...) and take precedence
// over file values. Returns a validated Config or an error describing what
// is missing or out of range.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("database.name", defaultDatabaseName)
	v.SetDefault("auth.token_lifetime_minutes", defaultTokenLifetimeMinutes)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Viper only binds env vars it has seen a key for, so register every
	// key that has no default explicitly.
	for _, key := range []string{"database.uri", "auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; the environment must carry the settings.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the loaded configuration against the struct tags and
// reports every invalid field in one error.
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(fields, ", "))
}
