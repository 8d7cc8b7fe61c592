package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func onlyJPG(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".jpg")
}

func TestImageDirListMissingDirectory(t *testing.T) {
	dir, err := NewImageDir(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names, err := dir.List(context.Background())
	if err != nil {
		t.Fatalf("expected no error for missing directory, got %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", names)
	}
}

func TestImageDirAvailable(t *testing.T) {
	root := t.TempDir()

	missing, _ := NewImageDir(filepath.Join(root, "does-not-exist"), nil)
	if ok, err := missing.Available(context.Background()); err != nil || ok {
		t.Fatalf("expected missing directory unavailable, got ok=%v err=%v", ok, err)
	}

	present, _ := NewImageDir(root, nil)
	if ok, err := present.Available(context.Background()); err != nil || !ok {
		t.Fatalf("expected directory available, got ok=%v err=%v", ok, err)
	}

	file := filepath.Join(root, "plain.jpg")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	notDir, _ := NewImageDir(file, nil)
	if ok, _ := notDir.Available(context.Background()); ok {
		t.Error("expected a regular file not to count as an image directory")
	}
}

func TestImageDirListFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.jpg", "A.JPG", "notes.txt", "a.jpg"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(root, "sub.jpg"), 0755); err != nil {
		t.Fatal(err)
	}

	dir, _ := NewImageDir(root, onlyJPG)
	names, err := dir.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A.JPG", "a.jpg", "b.jpg"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestImageDirReadWriteStat(t *testing.T) {
	root := t.TempDir()
	dir, _ := NewImageDir(root, nil)
	ctx := context.Background()

	if err := dir.Write(ctx, "photo.jpg", []byte("first")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := dir.Write(ctx, "photo.jpg", []byte("second!")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	data, err := dir.Read(ctx, "photo.jpg")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, []byte("second!")) {
		t.Errorf("expected overwritten content, got %q", data)
	}

	info, err := dir.Stat(ctx, "photo.jpg")
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size != 7 || info.Path != filepath.Join(root, "photo.jpg") {
		t.Errorf("unexpected stat: %+v", info)
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 1 {
		t.Errorf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestImageDirMissingAndInvalidNames(t *testing.T) {
	dir, _ := NewImageDir(t.TempDir(), nil)
	ctx := context.Background()

	if _, err := dir.Read(ctx, "missing.png"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
	if ok, err := dir.Exists(ctx, "missing.png"); ok || err != nil {
		t.Errorf("expected (false, nil), got (%v, %v)", ok, err)
	}
	if _, err := dir.Read(ctx, "../etc/passwd"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected traversal to be rejected, got %v", err)
	}
}
