package image

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/domain/events"
	"github.com/familytree/gallery-api/internal/pkg/imaging"
	"github.com/familytree/gallery-api/internal/pkg/validator"
)

// Rotate turns the image file clockwise in place and refreshes the stored dimensions.
// Degrees are checked before anything is read.
func (s *Service) Rotate(ctx context.Context, id uuid.UUID, degrees int) (*Image, error) {
	if !validator.IsRotation(degrees) {
		return nil, ErrInvalidDegrees
	}

	release, err := s.locker.Acquire(ctx, LockKey(id))
	if err != nil {
		return nil, fmt.Errorf("acquire image lock: %w", err)
	}
	defer release()

	img, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.files.Exists(ctx, img.Filename)
	if err != nil {
		return nil, fmt.Errorf("check image file: %w", err)
	}
	if !exists {
		return nil, ErrImageFileNotFound
	}
	if !imaging.IsSupported(img.Filename) {
		return nil, ErrUnsupportedFormat
	}

	data, err := s.files.Read(ctx, img.Filename)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}

	rotated, err := s.codec.Rotate(data, degrees, imaging.FormatForFilename(img.Filename))
	if err != nil {
		return nil, fmt.Errorf("rotate %s: %w", img.Filename, err)
	}

	if err := s.files.Write(ctx, img.Filename, rotated); err != nil {
		return nil, fmt.Errorf("write rotated image: %w", err)
	}

	updated, err := s.RegisterImage(ctx, img.Filename)
	if err != nil {
		return nil, fmt.Errorf("re-register rotated image: %w", err)
	}

	s.publisher.Publish(ctx, events.New(events.TypeImageRotated).
		WithImage(updated.ID).
		WithData(map[string]interface{}{
			"degrees": degrees,
			"width":   updated.Width.Int32,
			"height":  updated.Height.Int32,
		}))

	return updated, nil
}
