package image

import "github.com/familytree/gallery-api/internal/pkg/apperror"

var (
	ErrImageNotFound        = apperror.NotFound("Image not found")
	ErrImageFileNotFound    = apperror.NotFound("Image file not found")
	ErrUnsupportedFormat    = apperror.Validation("File is not a supported image format")
	ErrInvalidDegrees       = apperror.Validation("Rotation must be 90, 180 or 270 degrees")
	ErrNoFieldsToUpdate     = apperror.Validation("No valid fields provided for update")
	ErrInvalidDatePrecision = apperror.Validation("date_precision must be one of hour, day, month, year, decade")
	ErrInvalidDateTaken     = apperror.Validation("date_taken must be an ISO 8601 date")
)
