package preflight

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock a running migration holds inside the customer folder.
const LockFileName = ".migrunner.lock"

// LockPath is the customer lock file for job.
func (c *Checker) LockPath(job Job) string {
	return filepath.Join(c.CustomerPath(job), LockFileName)
}

// CustomerReadable reports whether the current user may list and read the
// customer folder. A missing folder passes; CustomerDirPresent reports it.
// Critical.
func (c *Checker) CustomerReadable(job Job) bool {
	return c.emit(c.customerReadable(job)).Passed
}

// CustomerIdle reports whether no other process holds the customer lock. A
// missing lock file passes and is never created. Critical.
func (c *Checker) CustomerIdle(job Job) bool {
	return c.emit(c.customerIdle(job)).Passed
}

func (c *Checker) customerReadable(job Job) Result {
	path := c.CustomerPath(job)
	info, err := os.Stat(path)
	if err != nil {
		return outcome(NameCustomerAccess, SeverityCritical, path, true, "")
	}
	if !info.IsDir() {
		return outcome(NameCustomerAccess, SeverityCritical, path, false,
			fmt.Sprintf("Customer directory %s is not a directory", path))
	}
	if err := dirReadable(path); err != nil {
		return outcome(NameCustomerAccess, SeverityCritical, path, false,
			fmt.Sprintf("Customer directory %s is not readable (%v)", path, err))
	}
	return outcome(NameCustomerAccess, SeverityCritical, path, true, "")
}

func (c *Checker) customerIdle(job Job) Result {
	path := c.LockPath(job)
	held, err := lockHeld(path)
	if err != nil {
		return outcome(NameCustomerIdle, SeverityCritical, path, false,
			withStatErr(fmt.Sprintf("Customer lock %s cannot be inspected", path), err))
	}
	if held {
		return outcome(NameCustomerIdle, SeverityCritical, path, false,
			fmt.Sprintf("Customer %s is locked by another migration (%s)", job.CustomerDir, path))
	}
	return outcome(NameCustomerIdle, SeverityCritical, path, true, "")
}

// lockHeld reports whether another process holds the lock at path. The file
// is opened read-only and never created; a missing file is not held.
func lockHeld(path string) (bool, error) {
	lock := flock.New(path, flock.SetFlag(os.O_RDONLY))
	acquired, err := lock.TryLock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if !acquired {
		return true, nil
	}
	if err := lock.Unlock(); err != nil {
		return false, fmt.Errorf("release customer lock: %w", err)
	}
	return false, nil
}

// listDir opens path and reads one entry, which needs list permission.
func listDir(path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
