package link

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/familytree/gallery-api/internal/pkg/database"
)

// Repository defines link data access interface
type Repository interface {
	// RunInTx runs fn with a repository bound to one transaction
	RunInTx(ctx context.Context, fn func(repo Repository) error) error
	Exists(ctx context.Context, imageID, personID uuid.UUID) (bool, error)
	Create(ctx context.Context, l *Link) error
	Delete(ctx context.Context, imageID, personID uuid.UUID) (bool, error)
	PeopleForImage(ctx context.Context, imageID uuid.UUID) ([]*LinkedPerson, error)
}

type repository struct {
	db   sqlx.ExtContext
	root *sqlx.DB // nil inside a transaction
}

// NewRepository creates new link repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, root: db}
}

func (r *repository) RunInTx(ctx context.Context, fn func(repo Repository) error) error {
	if r.root == nil {
		return fn(r)
	}
	return database.WithTx(ctx, r.root, func(tx *sqlx.Tx) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) Exists(ctx context.Context, imageID, personID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM image_people WHERE image_id = $1 AND person_id = $2)`
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists, query, imageID, personID)
	return exists, err
}

// Create inserts the link; a concurrent duplicate surfaces as ErrAlreadyLinked
func (r *repository) Create(ctx context.Context, l *Link) error {
	query := `
		INSERT INTO image_people (image_id, person_id, x, y, width, height, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		l.ImageID, l.PersonID, l.X, l.Y, l.Width, l.Height, l.CreatedAt,
	)
	if database.IsUniqueViolation(err) {
		return ErrAlreadyLinked
	}
	return err
}

func (r *repository) Delete(ctx context.Context, imageID, personID uuid.UUID) (bool, error) {
	query := `DELETE FROM image_people WHERE image_id = $1 AND person_id = $2`
	result, err := r.db.ExecContext(ctx, query, imageID, personID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) PeopleForImage(ctx context.Context, imageID uuid.UUID) ([]*LinkedPerson, error) {
	query := `
		SELECT p.*,
			ip.x, ip.y, ip.width AS box_width, ip.height AS box_height,
			ip.created_at AS linked_at
		FROM image_people ip
		JOIN people p ON p.id = ip.person_id
		WHERE ip.image_id = $1
		ORDER BY ip.created_at, p.name
	`
	var people []*LinkedPerson
	if err := sqlx.SelectContext(ctx, r.db, &people, query, imageID); err != nil {
		return nil, err
	}
	return people, nil
}
