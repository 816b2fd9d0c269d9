package testsupport

import (
	"path/filepath"
	"testing"

	"migrunner/internal/config"
	"migrunner/internal/preflight"
)

// CustomerLayout selects which parts of a customer folder NewCustomer writes.
// The customer folder itself is always created.
type CustomerLayout struct {
	Properties     bool
	Parameters     bool
	TypeDir        bool
	TypeParameters bool
}

// CompleteCustomer writes every file the checks look for.
func CompleteCustomer() CustomerLayout {
	return CustomerLayout{Properties: true, Parameters: true, TypeDir: true, TypeParameters: true}
}

// InstallPentaho creates the Pentaho directory and its Kitchen.bat launcher.
func InstallPentaho(t testing.TB, cfg *config.Config) {
	t.Helper()
	WriteFile(t, filepath.Join(cfg.Pentaho.Dir, preflight.KitchenScript))
}

// NewCustomer creates customer under the migration root following layout and
// returns the customer folder path. TypeParameters implies TypeDir.
func NewCustomer(t testing.TB, cfg *config.Config, customer, migType string, layout CustomerLayout) string {
	t.Helper()

	dir := filepath.Join(cfg.Migration.Root, customer)
	MkdirAll(t, dir)
	if layout.Properties {
		WriteFile(t, filepath.Join(dir, preflight.PropertiesFile))
	}
	if layout.Parameters {
		WriteFile(t, filepath.Join(dir, preflight.ParametersFile))
	}
	if layout.TypeDir || layout.TypeParameters {
		MkdirAll(t, filepath.Join(dir, migType))
	}
	if layout.TypeParameters {
		WriteFile(t, filepath.Join(dir, migType, preflight.TypeParametersName(migType)))
	}
	return dir
}

// NewReadyTree installs Pentaho and a complete customer folder.
func NewReadyTree(t testing.TB, cfg *config.Config, customer, migType string) string {
	t.Helper()
	InstallPentaho(t, cfg)
	return NewCustomer(t, cfg, customer, migType, CompleteCustomer())
}
