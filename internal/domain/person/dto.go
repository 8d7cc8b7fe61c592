package person

import (
	"time"

	"github.com/google/uuid"
)

// CreatePersonRequest for POST /people
type CreatePersonRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	BirthDate *string `json:"birth_date"`
	DeathDate *string `json:"death_date"`
	Notes     *string `json:"notes" validate:"omitempty,max=5000"`
}

// CreatePersonInput is the parsed form of CreatePersonRequest
type CreatePersonInput struct {
	Name      string
	BirthDate *time.Time
	DeathDate *time.Time
	Notes     *string
}

// PersonResponse represents a person in API responses
type PersonResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BirthDate *string   `json:"birth_date"`
	DeathDate *string   `json:"death_date"`
	Notes     *string   `json:"notes"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// PersonResponseFromEntity converts entity to response DTO
func PersonResponseFromEntity(p *Person) *PersonResponse {
	resp := &PersonResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if p.BirthDate.Valid {
		d := p.BirthDate.Time.Format(time.RFC3339)
		resp.BirthDate = &d
	}
	if p.DeathDate.Valid {
		d := p.DeathDate.Time.Format(time.RFC3339)
		resp.DeathDate = &d
	}
	if p.Notes.Valid {
		resp.Notes = &p.Notes.String
	}
	return resp
}
