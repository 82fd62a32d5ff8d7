package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is stripped from environment variables before they are mapped
// onto config keys: REPORTS_DATABASE_HOST -> database.host.
const EnvPrefix = "REPORTS_"

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config holds all report tool configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database" yaml:"database"`
	Report   ReportConfig   `koanf:"report" yaml:"report"`
	Logging  LoggingConfig  `koanf:"logging" yaml:"logging"`
}

// DatabaseConfig describes how to reach the news database. Only Name is
// required; empty fields are left to the driver's own defaults (for
// Postgres that means PGHOST, PGUSER, ~/.pgpass and friends).
type DatabaseConfig struct {
	Driver   string `koanf:"driver" yaml:"driver"`
	Name     string `koanf:"name" yaml:"name"`
	Host     string `koanf:"host" yaml:"host"`
	Port     int    `koanf:"port" yaml:"port"`
	User     string `koanf:"user" yaml:"user"`
	Password string `koanf:"password" yaml:"password"`
	SSLMode  string `koanf:"sslmode" yaml:"sslmode"`
}

type ReportConfig struct {
	OutputPath string `koanf:"output_path" yaml:"output_path"`
	Stdout     bool   `koanf:"stdout" yaml:"stdout"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and REPORTS_* environment variables, in that order.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// envKey maps REPORTS_REPORT_OUTPUT_PATH to report.output_path. Only the
// first underscore separates the section; the rest belong to the field.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Validate reports the first problem that would stop a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Name) == "" {
		return fmt.Errorf("database name is required")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q (use %s or %s)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format %q (use console or json)", c.Logging.Format)
	}
	if c.Report.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}

// YAML renders the effective configuration with the password masked.
func (c *Config) YAML() ([]byte, error) {
	out := *c
	if out.Database.Password != "" {
		out.Database.Password = "********"
	}
	data, err := yamlv3.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
