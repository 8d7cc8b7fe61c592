package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrFileNotFound = errors.New("file not found")

// FileInfo describes a file in the image directory
type FileInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Mirror receives copies of originals. Implementations must be safe for concurrent use.
type Mirror interface {
	// Put stores data under key unless an object with the same checksum is already there.
	Put(ctx context.Context, key string, reader io.Reader, contentType, checksum string) error
}

// NopMirror discards everything; used when no bucket is configured
type NopMirror struct{}

func (NopMirror) Put(context.Context, string, io.Reader, string, string) error { return nil }
