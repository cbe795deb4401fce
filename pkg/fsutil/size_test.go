package fsutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDirSizeBytes(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.bin"), bytes.Repeat([]byte{'a'}, 1000), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "nested", "deep")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.bin"), bytes.Repeat([]byte{'b'}, 500), 0644); err != nil {
		t.Fatal(err)
	}

	if got := DirSizeBytes(root); got != 1500 {
		t.Errorf("DirSizeBytes = %d, want 1500", got)
	}
}

func TestDirSizeBytesPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	if err := os.WriteFile(path, bytes.Repeat([]byte{'f'}, 321), 0644); err != nil {
		t.Fatal(err)
	}
	if got := DirSizeBytes(path); got != 321 {
		t.Errorf("DirSizeBytes = %d, want 321", got)
	}
}

func TestDirSizeBytesMissing(t *testing.T) {
	if got := DirSizeBytes(filepath.Join(t.TempDir(), "missing")); got != 0 {
		t.Errorf("DirSizeBytes = %d, want 0 for a missing path", got)
	}
}

func TestDirSizeKiBTruncates(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "f.bin"), bytes.Repeat([]byte{'x'}, 3000), 0644); err != nil {
		t.Fatal(err)
	}
	if got := DirSizeKiB(root); got != 2 {
		t.Errorf("DirSizeKiB = %d, want 2 (3000 bytes truncates)", got)
	}
}

func TestGlobSizeBytes(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.container.log"), bytes.Repeat([]byte{'a'}, 100), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "b.container.log"), bytes.Repeat([]byte{'b'}, 200), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "other.log"), bytes.Repeat([]byte{'c'}, 400), 0644); err != nil {
		t.Fatal(err)
	}

	if got := GlobSizeBytes(filepath.Join(root, "*.container.log")); got != 300 {
		t.Errorf("GlobSizeBytes = %d, want 300", got)
	}
}
