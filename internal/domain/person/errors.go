package person

import "github.com/familytree/gallery-api/internal/pkg/apperror"

var (
	ErrPersonNotFound   = apperror.NotFound("Person not found")
	ErrNameRequired     = apperror.Validation("Name is required")
	ErrInvalidLifespan  = apperror.Validation("Death date must be after birth date")
	ErrInvalidBirthDate = apperror.Validation("birth_date must be an ISO 8601 date")
	ErrInvalidDeathDate = apperror.Validation("death_date must be an ISO 8601 date")
)
