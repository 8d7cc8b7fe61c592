package link

import "github.com/familytree/gallery-api/internal/pkg/apperror"

var (
	ErrAlreadyLinked          = apperror.Conflict("Person is already linked to this image")
	ErrLinkNotFound           = apperror.NotFound("No link found between this person and image")
	ErrInvalidBoundingBox     = apperror.Validation("Invalid bounding box coordinates")
	ErrBoundingBoxOutOfBounds = apperror.Validation("Bounding box exceeds image dimensions")
)
