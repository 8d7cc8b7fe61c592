package image

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/familytree/gallery-api/internal/domain/events"
	"github.com/familytree/gallery-api/internal/pkg/datetime"
	"github.com/familytree/gallery-api/internal/pkg/imaging"
	"github.com/familytree/gallery-api/internal/pkg/lock"
	"github.com/familytree/gallery-api/internal/pkg/storage"
	"github.com/familytree/gallery-api/internal/pkg/validator"
)

// Files is the image directory as the service sees it
type Files interface {
	Available(ctx context.Context) (bool, error)
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Exists(ctx context.Context, name string) (bool, error)
	Path(name string) string
}

// Config tunes sync behaviour
type Config struct {
	// DeactivateMissing marks rows whose file vanished as inactive after a sync pass
	DeactivateMissing bool
}

// Service handles image business logic: registry, sync, metadata and rotation
type Service struct {
	repo      Repository
	files     Files
	codec     imaging.Codec
	locker    lock.Locker
	publisher events.Publisher
	mirror    storage.Mirror
	config    Config
}

// NewService creates image service. publisher and mirror may be nil.
func NewService(repo Repository, files Files, codec imaging.Codec, locker lock.Locker, publisher events.Publisher, mirror storage.Mirror, config Config) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if mirror == nil {
		mirror = storage.NopMirror{}
	}
	if locker == nil {
		locker = lock.NewLocal()
	}
	return &Service{
		repo:      repo,
		files:     files,
		codec:     codec,
		locker:    locker,
		publisher: publisher,
		mirror:    mirror,
		config:    config,
	}
}

// LockKey is the per-image key shared by every operation that mutates an image or its links
func LockKey(id uuid.UUID) string {
	return "image:" + id.String()
}

// GetByID returns an image or ErrImageNotFound
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	if img == nil {
		return nil, ErrImageNotFound
	}
	return img, nil
}

// GetByFilename returns an image or ErrImageNotFound
func (s *Service) GetByFilename(ctx context.Context, filename string) (*Image, error) {
	img, err := s.repo.GetByFilename(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("get image by filename: %w", err)
	}
	if img == nil {
		return nil, ErrImageNotFound
	}
	return img, nil
}

// List returns active images, newest first
func (s *Service) List(ctx context.Context) ([]*Image, error) {
	images, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

// ReadFile returns the image row and its current bytes
func (s *Service) ReadFile(ctx context.Context, id uuid.UUID) (*Image, []byte, error) {
	img, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.files.Read(ctx, img.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, nil, ErrImageFileNotFound
		}
		return nil, nil, err
	}
	return img, data, nil
}

// UpdateMetadata applies a partial update of tags, description and capture date
func (s *Service) UpdateMetadata(ctx context.Context, id uuid.UUID, req *UpdateImageRequest) (*Image, error) {
	if req == nil || !req.HasChanges() {
		return nil, ErrNoFieldsToUpdate
	}

	img, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Tags.Present() {
		tags, _ := req.Tags.Value() // null clears
		img.Tags = normalizeTags(tags)
	}

	if req.Description.Present() {
		img.Description.String, img.Description.Valid = "", false
		if d, ok := req.Description.Value(); ok && strings.TrimSpace(d) != "" {
			img.Description.String, img.Description.Valid = d, true
		}
	}

	if req.DatePrecision.Present() {
		img.DatePrecision.String, img.DatePrecision.Valid = "", false
		if p, ok := req.DatePrecision.Value(); ok {
			if !validator.IsDatePrecision(p) {
				return nil, ErrInvalidDatePrecision
			}
			img.DatePrecision.String, img.DatePrecision.Valid = p, true
		}
	}

	if req.DateTaken.Present() {
		img.DateTaken.Time, img.DateTaken.Valid = time.Time{}, false
		if v, ok := req.DateTaken.Value(); ok {
			t, err := datetime.Parse(v)
			if err != nil {
				return nil, ErrInvalidDateTaken
			}
			img.DateTaken.Time, img.DateTaken.Valid = t, true
		}
	}

	img.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateMetadata(ctx, img); err != nil {
		return nil, fmt.Errorf("update image metadata: %w", err)
	}

	s.publisher.Publish(ctx, events.New(events.TypeImageUpdated).WithImage(img.ID))
	return img, nil
}

// Deactivate hides an image without deleting its row or file
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.SetActive(ctx, id, false)
	if err != nil {
		return fmt.Errorf("deactivate image: %w", err)
	}
	if !found {
		return ErrImageNotFound
	}
	s.publisher.Publish(ctx, events.New(events.TypeImageUpdated).WithImage(id).WithData(map[string]bool{"is_active": false}))
	return nil
}

// Stats returns counts and the total size of active images
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("image stats: %w", err)
	}
	stats.TotalSizeMB = math.Round(float64(stats.TotalSize)/(1024*1024)*100) / 100
	return stats, nil
}

// trims, drops empties and duplicates, keeps order
func normalizeTags(tags []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
