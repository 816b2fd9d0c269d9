//go:build unix

package preflight

import "golang.org/x/sys/unix"

// dirReadable checks read and search permission for the real user, then lists
// the directory.
func dirReadable(path string) error {
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return err
	}
	return listDir(path)
}
