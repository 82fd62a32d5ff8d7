package config

// DefaultConfig returns a Config populated with all default values. The
// database name and output path have no sensible default here; the CLI
// supplies them.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:  DriverPostgres,
			Name:    "",
			Host:    "",
			Port:    0,
			User:    "",
			SSLMode: "",
		},
		Report: ReportConfig{
			OutputPath: "",
			Stdout:     false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
