package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
)

func TestLockHeldMissingFileIsNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockFileName)

	held, err := lockHeld(path)
	if err != nil || held {
		t.Fatalf("expected missing lock to be free, held=%v err=%v", held, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("lock file must not be created, stat err=%v", err)
	}
}

func TestLockHeldReadOnlyLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockFileName)
	if err := os.WriteFile(path, nil, 0o400); err != nil {
		t.Fatalf("write lock: %v", err)
	}

	held, err := lockHeld(path)
	if err != nil || held {
		t.Fatalf("expected released lock to be free, held=%v err=%v", held, err)
	}

	other := flock.New(path, flock.SetFlag(os.O_RDONLY))
	locked, err := other.TryLock()
	if err != nil || !locked {
		t.Fatalf("acquire test lock: locked=%v err=%v", locked, err)
	}
	t.Cleanup(func() { _ = other.Unlock() })

	held, err = lockHeld(path)
	if err != nil || !held {
		t.Fatalf("expected held lock, held=%v err=%v", held, err)
	}
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	if err := listDir(dir); err != nil {
		t.Fatalf("empty directory should be listable: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "entry"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := listDir(dir); err != nil {
		t.Fatalf("directory should be listable: %v", err)
	}
	if err := listDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if err := dirReadable(dir); err != nil {
		t.Fatalf("dirReadable: %v", err)
	}
}
