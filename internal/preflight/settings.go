package preflight

import (
	"slices"

	"migrunner/internal/config"
)

// Settings is the read-only view of configuration the checks consult.
type Settings struct {
	pentahoDir string
	migRoot    string
	reserved   map[string]struct{}
	optional   []string
}

// NewSettings copies its inputs; later changes to the slices have no effect.
// Reserved names are matched exactly. Optional properties types are expected
// in canonical form.
func NewSettings(pentahoDir, migRoot string, reserved, optionalPropertiesTypes []string) Settings {
	set := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		set[name] = struct{}{}
	}
	return Settings{
		pentahoDir: pentahoDir,
		migRoot:    migRoot,
		reserved:   set,
		optional:   slices.Clone(optionalPropertiesTypes),
	}
}

// SettingsFromConfig builds Settings from a loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	if cfg == nil {
		return NewSettings("", "", nil, nil)
	}
	return NewSettings(
		cfg.Pentaho.Dir,
		cfg.Migration.Root,
		cfg.Migration.ReservedDirs,
		cfg.Migration.OptionalPropertiesTypes,
	)
}

func (s Settings) PentahoDir() string { return s.pentahoDir }

func (s Settings) MigRoot() string { return s.migRoot }

// IsReserved reports whether name is an exact, case-sensitive member of the
// reserved folder set.
func (s Settings) IsReserved(name string) bool {
	_, ok := s.reserved[name]
	return ok
}

// PropertiesOptional reports whether config.properties is advisory for migType.
func (s Settings) PropertiesOptional(migType string) bool {
	return slices.Contains(s.optional, config.CanonicalType(migType))
}

// OptionalPropertiesTypes returns a copy of the types for which
// config.properties is advisory.
func (s Settings) OptionalPropertiesTypes() []string {
	return slices.Clone(s.optional)
}
