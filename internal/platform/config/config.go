package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port                   int           `mapstructure:"port" validate:"min=1,max=65535"`
	DatabaseURL            string        `mapstructure:"database_url"`
	JWTSecret              string        `mapstructure:"jwt_secret"`
	SessionTTL             time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	DataEncryptionKey      string        `mapstructure:"data_encryption_key"`
	FrontendDir            string        `mapstructure:"frontend_dir" validate:"required"`
	Environment            string        `mapstructure:"app_env" validate:"oneof=development test production"`
	LogLevel               string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	SeedAdminName          string        `mapstructure:"seed_admin_name"`
	SeedAdminEmail         string        `mapstructure:"seed_admin_email"`
	SeedAdminPassword      string        `mapstructure:"seed_admin_password"`
	RunMigrations          bool          `mapstructure:"run_migrations"`
	RunSeed                bool          `mapstructure:"run_seed"`
	MaxBodyBytes           int64         `mapstructure:"max_body_bytes" validate:"min=1024"`
	MaxUploadBytes         int64         `mapstructure:"max_upload_bytes" validate:"min=1024"`
	LoginRatePerMinute     int           `mapstructure:"login_rate_per_minute" validate:"gt=0"`
	LeaveAnnualEntitlement float64       `mapstructure:"leave_annual_entitlement" validate:"gte=0"`
	ShortLeaveHours        float64       `mapstructure:"short_leave_hours" validate:"gt=0,lte=24"`
	ShutdownTimeout        time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

var defaults = map[string]any{
	"port":                     4000,
	"database_url":             "",
	"jwt_secret":               "",
	"session_ttl":              "8h",
	"data_encryption_key":      "",
	"frontend_dir":             "build",
	"app_env":                  "development",
	"log_level":                "info",
	"seed_admin_name":          "HR Administrator",
	"seed_admin_email":         "",
	"seed_admin_password":      "",
	"run_migrations":           true,
	"run_seed":                 true,
	"max_body_bytes":           1048576,
	"max_upload_bytes":         10485760,
	"login_rate_per_minute":    10,
	"leave_annual_entitlement": 20,
	"short_leave_hours":        6,
	"shutdown_timeout":         "15s",
}

// Load reads config.yml from dir when present and lets environment
// variables (PORT, DATABASE_URL, ...) override every key.
func Load(dir string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	return nil
}
