package person

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines person data access interface
type Repository interface {
	Create(ctx context.Context, p *Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*Person, error)
	List(ctx context.Context) ([]*Person, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new person repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Person) error {
	query := `
		INSERT INTO people (id, name, birth_date, death_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.BirthDate, p.DeathDate, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Person, error) {
	query := `SELECT * FROM people WHERE id = $1`
	var p Person
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Person, error) {
	query := `SELECT * FROM people ORDER BY created_at DESC, name`
	var people []*Person
	if err := r.db.SelectContext(ctx, &people, query); err != nil {
		return nil, err
	}
	return people, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM people`)
	return n, err
}
