package config

const (
	defaultPentahoDir     = "~/pentaho/data-integration"
	defaultMigRoot        = "~/MigVisma"
	defaultHistoryEnabled = true
	defaultHistoryPath    = "~/.local/share/migrunner/history.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultConfigLocation = "~/.config/migrunner/config.toml"
	projectConfigName     = "migrunner.toml"
)

func defaultReservedDirs() []string {
	return []string{"_templates", "_archive", "logs"}
}

func defaultMigrationTypes() []string {
	return []string{"PDOL", "SDOL", "MLM"}
}

// config.properties stopped being mandatory for these types.
func defaultOptionalPropertiesTypes() []string {
	return []string{"PDOL", "SDOL"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Migration: Migration{
			ReservedDirs:            defaultReservedDirs(),
			Types:                   defaultMigrationTypes(),
			OptionalPropertiesTypes: defaultOptionalPropertiesTypes(),
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
