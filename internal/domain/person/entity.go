package person

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Person is someone who can be tagged in photos
type Person struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	BirthDate sql.NullTime   `db:"birth_date"`
	DeathDate sql.NullTime   `db:"death_date"`
	Notes     sql.NullString `db:"notes"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Stats summarizes the people table
type Stats struct {
	TotalPeople int `db:"total_people" json:"total_people"`
}
