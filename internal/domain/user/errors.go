package user

import "github.com/familytree/gallery-api/internal/pkg/apperror"

var ErrEmailAlreadyExists = apperror.Conflict("Email already registered")
