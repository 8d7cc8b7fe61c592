package image

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/familytree/gallery-api/internal/domain/events"
	"github.com/familytree/gallery-api/internal/pkg/imaging"
	"github.com/familytree/gallery-api/internal/pkg/logger"
)

// ListFilesystemImages returns supported image names in the directory, sorted.
// A missing directory yields an empty list.
func (s *Service) ListFilesystemImages(ctx context.Context) ([]string, error) {
	names, err := s.files.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list image directory: %w", err)
	}

	supported := make([]string, 0, len(names))
	for _, name := range names {
		if imaging.IsSupported(name) {
			supported = append(supported, name)
		}
	}
	return supported, nil
}

// RegisterImage reads and probes a file, then inserts or refreshes its row.
// The row is always active afterwards.
func (s *Service) RegisterImage(ctx context.Context, filename string) (*Image, error) {
	if !imaging.IsSupported(filename) {
		return nil, ErrUnsupportedFormat
	}

	data, err := s.files.Read(ctx, filename)
	if err != nil {
		return nil, err
	}

	info, err := s.codec.Probe(data)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])
	now := time.Now().UTC()

	img, err := s.repo.GetByFilename(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("get image by filename: %w", err)
	}

	changed := true
	if img != nil {
		changed = !img.Checksum.Valid || img.Checksum.String != checksum
		applyFileInfo(img, s.files.Path(filename), int64(len(data)), info, checksum, now)
		if err := s.repo.UpdateFileInfo(ctx, img); err != nil {
			return nil, fmt.Errorf("update image: %w", err)
		}
	} else {
		img = &Image{
			ID:           uuid.New(),
			Filename:     filename,
			OriginalName: filename,
			Tags:         pq.StringArray{},
			CreatedAt:    now,
		}
		applyFileInfo(img, s.files.Path(filename), int64(len(data)), info, checksum, now)
		if err := s.repo.Create(ctx, img); err != nil {
			return nil, fmt.Errorf("create image: %w", err)
		}
	}

	if changed {
		s.mirrorOriginal(ctx, img, data)
	}
	return img, nil
}

// SyncImages registers every file in the directory.
// Per-file failures are collected in the result; only listing or deactivation
// failures are returned as errors.
func (s *Service) SyncImages(ctx context.Context) (*SyncResult, error) {
	started := time.Now()

	names, err := s.ListFilesystemImages(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Errors: []string{}}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := s.RegisterImage(ctx, name); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to register %s: %v", name, err))
			logger.LogWarn(ctx, "Image registration failed", "filename", name, "error", err.Error())
			continue
		}
		result.Synced++
	}

	if s.config.DeactivateMissing {
		available, err := s.files.Available(ctx)
		if err != nil {
			return nil, fmt.Errorf("check image directory: %w", err)
		}
		if available {
			n, err := s.repo.DeactivateMissing(ctx, names)
			if err != nil {
				return nil, fmt.Errorf("deactivate missing images: %w", err)
			}
			result.Deactivated = n
		} else {
			// an absent directory is a misconfiguration, not an empty gallery
			logger.LogWarn(ctx, "Image directory missing, skipping deactivation", "path", s.files.Path(""))
		}
	}

	logger.LogInfo(ctx, "Image sync finished",
		"synced", result.Synced,
		"failed", len(result.Errors),
		"deactivated", result.Deactivated,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	s.publisher.Publish(ctx, events.New(events.TypeImagesSynced).WithData(result))
	return result, nil
}

func applyFileInfo(img *Image, path string, size int64, info *imaging.Info, checksum string, now time.Time) {
	img.Path = path
	img.Size = size
	img.Width = sql.NullInt32{Int32: int32(info.Width), Valid: true}
	img.Height = sql.NullInt32{Int32: int32(info.Height), Valid: true}
	img.MimeType = info.MimeType
	img.Checksum = sql.NullString{String: checksum, Valid: true}
	img.IsActive = true
	img.UpdatedAt = now
}

// mirror failures never fail registration
func (s *Service) mirrorOriginal(ctx context.Context, img *Image, data []byte) {
	if err := s.mirror.Put(ctx, img.Filename, bytes.NewReader(data), img.MimeType, img.Checksum.String); err != nil {
		logger.LogWarn(ctx, "Mirror upload failed", "filename", img.Filename, "error", err.Error())
	}
}
