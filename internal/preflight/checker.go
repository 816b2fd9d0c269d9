package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Fixed file names looked up by the checks.
const (
	KitchenScript        = "Kitchen.bat"
	PropertiesFile       = "config.properties"
	ParametersFile       = "MigVisma_parameters.xlsx"
	typeParametersSuffix = "_parameters.xlsx"
)

// Check names used in Results.
const (
	NamePentaho        = "Pentaho installation"
	NameKitchen        = "Kitchen launcher"
	NameMigRoot        = "Migration root"
	NameReserved       = "Reserved name"
	NameCustomerDir    = "Customer directory"
	NameMigTypeDir     = "Migration type directory"
	NameProperties     = "Properties file"
	NameParameters     = "Parameters workbook"
	NameTypeParameters = "Type parameters workbook"
	NameCustomerAccess = "Customer permissions"
	NameCustomerIdle   = "Customer lock"
)

// Job identifies one customer migration.
type Job struct {
	CustomerDir string
	MigType     string
}

// Checker evaluates preflight checks against fixed Settings.
type Checker struct {
	settings Settings
	reporter Reporter
}

// New builds a Checker. A nil reporter discards messages.
func New(settings Settings, reporter Reporter) *Checker {
	if reporter == nil {
		reporter = Discard
	}
	return &Checker{settings: settings, reporter: reporter}
}

// Settings returns the settings the checker was built with.
func (c *Checker) Settings() Settings { return c.settings }

// KitchenPath is the launcher script inside the Pentaho installation.
func (c *Checker) KitchenPath() string {
	return filepath.Join(c.settings.pentahoDir, KitchenScript)
}

// CustomerPath is the customer folder under the migration root.
func (c *Checker) CustomerPath(job Job) string {
	return filepath.Join(c.settings.migRoot, job.CustomerDir)
}

// MigTypePath is the migration type folder inside the customer folder.
func (c *Checker) MigTypePath(job Job) string {
	return filepath.Join(c.settings.migRoot, job.CustomerDir, job.MigType)
}

// TypeParametersName is the workbook name for a migration type.
func TypeParametersName(migType string) string {
	return migType + typeParametersSuffix
}

// PentahoInstalled reports whether the Pentaho directory exists. Fatal.
func (c *Checker) PentahoInstalled() bool {
	return c.emit(c.pentahoInstalled()).Passed
}

// KitchenPresent reports whether Kitchen.bat is a regular file. Critical.
func (c *Checker) KitchenPresent() bool {
	return c.emit(c.kitchenPresent()).Passed
}

// MigRootPresent reports whether the migration root exists. Error.
func (c *Checker) MigRootPresent() bool {
	return c.emit(c.migRootPresent()).Passed
}

// CustomerDirPresent reports whether the customer folder exists. Critical.
func (c *Checker) CustomerDirPresent(job Job) bool {
	return c.emit(c.customerDirPresent(job)).Passed
}

// MigTypeDirPresent reports whether the migration type folder exists. It
// never reports a message.
func (c *Checker) MigTypeDirPresent(job Job) bool {
	return c.emit(c.migTypeDirPresent(job)).Passed
}

// NotReserved reports whether the customer folder name is outside the
// reserved set. It does not touch the filesystem. Critical.
func (c *Checker) NotReserved(job Job) bool {
	return c.emit(c.notReserved(job)).Passed
}

// PropertiesPresent reports whether config.properties is a regular file in the
// customer folder. A failure is a warning followed by an info hint naming the
// migration types for which the file is advisory.
func (c *Checker) PropertiesPresent(job Job) bool {
	return c.emit(c.propertiesPresent(job)).Passed
}

// ParametersPresent reports whether MigVisma_parameters.xlsx is a regular file
// in the customer folder. Critical.
func (c *Checker) ParametersPresent(job Job) bool {
	return c.emit(c.parametersPresent(job)).Passed
}

// TypeParametersPresent reports whether <type>_parameters.xlsx is a regular
// file in the migration type folder. Critical.
func (c *Checker) TypeParametersPresent(job Job) bool {
	return c.emit(c.typeParametersPresent(job)).Passed
}

func (c *Checker) pentahoInstalled() Result {
	path := c.settings.pentahoDir
	ok, err := pathExists(path)
	return outcome(NamePentaho, SeverityFatal, path, ok,
		withStatErr(fmt.Sprintf("Pentaho path doesn't exist in %s", path), err))
}

func (c *Checker) kitchenPresent() Result {
	path := c.KitchenPath()
	ok, err := isRegularFile(path)
	return outcome(NameKitchen, SeverityCritical, path, ok,
		withStatErr(fmt.Sprintf("%s script doesn't exist in %s", KitchenScript, path), err))
}

func (c *Checker) migRootPresent() Result {
	path := c.settings.migRoot
	ok, err := pathExists(path)
	return outcome(NameMigRoot, SeverityError, path, ok,
		withStatErr(fmt.Sprintf("MigVisma path %s doesn't exist", path), err))
}

func (c *Checker) customerDirPresent(job Job) Result {
	path := c.CustomerPath(job)
	ok, err := pathExists(path)
	return outcome(NameCustomerDir, SeverityCritical, path, ok,
		withStatErr(fmt.Sprintf("Customer directory doesn't exist in %s", path), err))
}

func (c *Checker) migTypeDirPresent(job Job) Result {
	path := c.MigTypePath(job)
	ok, err := pathExists(path)
	return outcome(NameMigTypeDir, SeveritySilent, path, ok,
		withStatErr(fmt.Sprintf("Migration type directory doesn't exist in %s", path), err))
}

func (c *Checker) notReserved(job Job) Result {
	return outcome(NameReserved, SeverityCritical, "", !c.settings.IsReserved(job.CustomerDir),
		fmt.Sprintf("Customer folder %s is in the reserved list", job.CustomerDir))
}

func (c *Checker) propertiesPresent(job Job) Result {
	path := filepath.Join(c.CustomerPath(job), PropertiesFile)
	ok, err := isRegularFile(path)
	res := outcome(NameProperties, SeverityWarning, path, ok,
		withStatErr(fmt.Sprintf("File %s doesn't exist in %s folder", PropertiesFile, job.CustomerDir), err))
	if !ok {
		res.Hint = propertiesHint(c.settings.optional)
	}
	return res
}

func (c *Checker) parametersPresent(job Job) Result {
	path := filepath.Join(c.CustomerPath(job), ParametersFile)
	ok, err := isRegularFile(path)
	return outcome(NameParameters, SeverityCritical, path, ok,
		withStatErr(fmt.Sprintf("File %s doesn't exist in %s folder", ParametersFile, job.CustomerDir), err))
}

func (c *Checker) typeParametersPresent(job Job) Result {
	name := TypeParametersName(job.MigType)
	path := filepath.Join(c.MigTypePath(job), name)
	ok, err := isRegularFile(path)
	return outcome(NameTypeParameters, SeverityCritical, path, ok,
		withStatErr(fmt.Sprintf("File %s doesn't exist in %s folder", name, job.CustomerDir), err))
}

// emit reports a failed result: the detail at the check's severity, then the
// hint at info. Passing and silent results report nothing.
func (c *Checker) emit(res Result) Result {
	if res.Passed || res.Severity == SeveritySilent {
		return res
	}
	c.reporter.Report(res.Severity, res.Detail)
	if res.Hint != "" {
		c.reporter.Report(SeverityInfo, res.Hint)
	}
	return res
}

func outcome(name string, severity Severity, path string, passed bool, failure string) Result {
	res := Result{Name: name, Passed: passed, Severity: severity, Path: path, Required: true}
	if !passed {
		res.Detail = failure
	}
	return res
}

func propertiesHint(optional []string) string {
	if len(optional) == 0 {
		return PropertiesFile + " is mandatory for every migration type"
	}
	return fmt.Sprintf("This is not a mandatory check for %s anymore", strings.Join(optional, " and "))
}

func withStatErr(message string, err error) string {
	if err == nil {
		return message
	}
	return fmt.Sprintf("%s (%v)", message, err)
}

// pathExists treats any stat error other than not-exist as unsatisfied and
// returns it so the message can carry it.
func pathExists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
