package filelock

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewFileLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "settings.yaml.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}
	if lock.Path() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.Path())
	}
}

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "nested", "test.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	if err := AtomicWrite(path, []byte("enabled: true\n")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "enabled: true\n" {
		t.Errorf("Expected content %q, got %q", "enabled: true\n", string(data))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("Expected permissions 0644, got %o", info.Mode().Perm())
	}
}

func TestAtomicWriteOverwriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	for _, content := range []string{"enabled: true\n", "enabled: false\n"} {
		if err := AtomicWrite(path, []byte(content)); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}
	}

	data, _ := os.ReadFile(path)
	if string(data) != "enabled: false\n" {
		t.Errorf("Expected last write to win, got %q", string(data))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWriteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "settings.yaml")

	if err := AtomicWrite(path, []byte("x")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}

func TestLockAndWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	if err := LockAndWrite(path, []byte("extensions: [php]\n")); err != nil {
		t.Fatalf("LockAndWrite failed: %v", err)
	}

	data, found, err := LockAndRead(path)
	if err != nil {
		t.Fatalf("LockAndRead failed: %v", err)
	}
	if !found {
		t.Fatal("Expected file to be found")
	}
	if string(data) != "extensions: [php]\n" {
		t.Errorf("Unexpected content %q", string(data))
	}
}

func TestLockAndReadMissingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	data, found, err := LockAndRead(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("LockAndRead failed: %v", err)
	}
	if found || data != nil {
		t.Errorf("Expected missing file, got found=%v data=%q", found, data)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Reading a missing file should not create %s", dir)
	}
}

func TestConcurrentLockAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	const writers = 8

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			if err := LockAndWrite(path, []byte("enabled: true\n")); err != nil {
				t.Errorf("LockAndWrite failed: %v", err)
			}
		}()
	}
	wg.Wait()

	data, _ := os.ReadFile(path)
	if string(data) != "enabled: true\n" {
		t.Errorf("Expected intact content, got %q", string(data))
	}
}
