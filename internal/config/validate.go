package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePentaho(); err != nil {
		return err
	}
	if err := c.validateMigration(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePentaho() error {
	if strings.TrimSpace(c.Pentaho.Dir) == "" {
		return errors.New("pentaho.dir must be set (or export PENTAHO_DIR)")
	}
	return nil
}

func (c *Config) validateMigration() error {
	if strings.TrimSpace(c.Migration.Root) == "" {
		return errors.New("migration.root must be set (or export MIG_ROOT)")
	}
	if len(c.Migration.Types) == 0 {
		return errors.New("migration.types must include at least one migration type")
	}
	for _, name := range c.Migration.Types {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("migration.types: %q must not contain path separators", name)
		}
	}
	for _, name := range c.Migration.OptionalPropertiesTypes {
		if !c.HasMigrationType(name) {
			return fmt.Errorf("migration.optional_properties_types: %q is not listed in migration.types", name)
		}
	}
	for _, name := range c.Migration.ReservedDirs {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("migration.reserved_dirs: %q must be a folder name, not a path", name)
		}
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error", "critical", "fatal":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
