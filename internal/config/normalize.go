package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePentaho(); err != nil {
		return err
	}
	if err := c.normalizeMigration(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePentaho() error {
	c.Pentaho.Dir = strings.TrimSpace(c.Pentaho.Dir)
	if c.Pentaho.Dir == "" {
		if value, ok := os.LookupEnv("PENTAHO_DIR"); ok && strings.TrimSpace(value) != "" {
			c.Pentaho.Dir = strings.TrimSpace(value)
		} else {
			c.Pentaho.Dir = defaultPentahoDir
		}
	}
	var err error
	if c.Pentaho.Dir, err = expandPath(c.Pentaho.Dir); err != nil {
		return fmt.Errorf("pentaho.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMigration() error {
	c.Migration.Root = strings.TrimSpace(c.Migration.Root)
	if c.Migration.Root == "" {
		if value, ok := os.LookupEnv("MIG_ROOT"); ok && strings.TrimSpace(value) != "" {
			c.Migration.Root = strings.TrimSpace(value)
		} else {
			c.Migration.Root = defaultMigRoot
		}
	}
	var err error
	if c.Migration.Root, err = expandPath(c.Migration.Root); err != nil {
		return fmt.Errorf("migration.root: %w", err)
	}

	// Reserved names keep their case: the reserved-name check is an exact match.
	c.Migration.ReservedDirs = dedupe(c.Migration.ReservedDirs, strings.TrimSpace)
	c.Migration.Types = dedupe(c.Migration.Types, CanonicalType)
	c.Migration.OptionalPropertiesTypes = dedupe(c.Migration.OptionalPropertiesTypes, CanonicalType)
	return nil
}

func (c *Config) normalizeHistory() error {
	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Enabled && c.History.Path == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

var upperCaser = cases.Upper(language.Und)

// CanonicalType returns the canonical spelling of a migration type name
// (trimmed, upper-case), so "pdol" and " PDOL " both resolve to "PDOL".
func CanonicalType(name string) string {
	return upperCaser.String(strings.TrimSpace(name))
}

func dedupe(values []string, canon func(string) string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := canon(value)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
