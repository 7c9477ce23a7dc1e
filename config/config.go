// Package config loads the service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read when no env file is given explicitly. It may be absent.
const DefaultEnvFile = ".env"

type Config struct {
	HTTPAddr        string
	LogMode         string
	AutoMigrate     bool
	ShutdownTimeout time.Duration
	DB              DBConfig
}

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

var defaults = map[string]any{
	"http_addr":            ":8000",
	"log_mode":             "development",
	"auto_migrate":         true,
	"shutdown_timeout":     "10s",
	"db_host":              "localhost",
	"db_port":              "5432",
	"db_user":              "postgres",
	"db_password":          "",
	"db_name":              "shop",
	"db_sslmode":           "disable",
	"db_max_open_conns":    10,
	"db_max_idle_conns":    5,
	"db_conn_max_lifetime": "30m",
	"db_slow_query":        "1s",
}

// Load reads envFile (DefaultEnvFile when empty) into the process environment
// and resolves the configuration. Variables already set in the environment win
// over the file. A missing DefaultEnvFile is ignored; a missing explicit file is not.
func Load(envFile string) (*Config, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		HTTPAddr:        v.GetString("http_addr"),
		LogMode:         v.GetString("log_mode"),
		AutoMigrate:     v.GetBool("auto_migrate"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		DB: DBConfig{
			Host:            v.GetString("db_host"),
			Port:            v.GetString("db_port"),
			User:            v.GetString("db_user"),
			Password:        v.GetString("db_password"),
			Name:            v.GetString("db_name"),
			SSLMode:         v.GetString("db_sslmode"),
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
			SlowThreshold:   v.GetDuration("db_slow_query"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.HTTPAddr == "":
		return errors.New("HTTP_ADDR must not be empty")
	case c.DB.Name == "":
		return errors.New("DB_NAME must not be empty")
	case c.DB.MaxOpenConns < 1:
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DB.MaxOpenConns)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// DSN returns the connection URL of the configured database.
func (c DBConfig) DSN() string {
	return c.dsnFor(c.Name)
}

// MaintenanceDSN returns the connection URL of the server's "postgres" database,
// used to create the configured database.
func (c DBConfig) MaintenanceDSN() string {
	return c.dsnFor("postgres")
}

func (c DBConfig) dsnFor(name string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}
