package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageDir gives whole-file access to the flat directory of gallery images
type ImageDir struct {
	basePath string
	accept   func(name string) bool
}

// NewImageDir creates an ImageDir rooted at basePath. The directory does not have to
// exist yet; listing a missing directory yields no files. accept filters List results.
func NewImageDir(basePath string, accept func(name string) bool) (*ImageDir, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image directory: %w", err)
	}
	if accept == nil {
		accept = func(string) bool { return true }
	}
	return &ImageDir{basePath: abs, accept: accept}, nil
}

// Root returns the absolute directory path
func (d *ImageDir) Root() string {
	return d.basePath
}

// Path returns the absolute path of name inside the directory
func (d *ImageDir) Path(name string) string {
	return filepath.Join(d.basePath, name)
}

// Available reports whether the directory itself exists
func (d *ImageDir) Available(ctx context.Context) (bool, error) {
	st, err := os.Stat(d.basePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat image directory: %w", err)
	}
	return st.IsDir(), ctx.Err()
}

// List returns accepted regular file names, sorted lexicographically
func (d *ImageDir) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.basePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !d.accept(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, ctx.Err()
}

// Read loads the whole file
func (d *ImageDir) Read(ctx context.Context, name string) ([]byte, error) {
	fullPath, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Write replaces the file contents atomically (temp file + rename)
func (d *ImageDir) Write(ctx context.Context, name string, data []byte) error {
	fullPath, err := d.resolve(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.basePath, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName) // Cleanup on error
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}

	// keep the original permissions when replacing
	if st, err := os.Stat(fullPath); err == nil {
		_ = os.Chmod(tmpName, st.Mode().Perm())
	}

	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// Stat returns size and modification time
func (d *ImageDir) Stat(ctx context.Context, name string) (*FileInfo, error) {
	fullPath, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, name)
	}

	return &FileInfo{
		Name:    name,
		Path:    fullPath,
		Size:    st.Size(),
		ModTime: st.ModTime(),
	}, nil
}

// Exists checks if a regular file with this name is present
func (d *ImageDir) Exists(ctx context.Context, name string) (bool, error) {
	_, err := d.Stat(ctx, name)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// names are flat: no separators, no dot-dot
func (d *ImageDir) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid name %q", ErrFileNotFound, name)
	}
	return filepath.Join(d.basePath, name), nil
}
