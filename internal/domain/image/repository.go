package image

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines image data access interface.
// Lookups return (nil, nil) when no row matches.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Image, error)
	GetByFilename(ctx context.Context, filename string) (*Image, error)
	ListActive(ctx context.Context) ([]*Image, error)
	Create(ctx context.Context, img *Image) error
	UpdateFileInfo(ctx context.Context, img *Image) error
	UpdateMetadata(ctx context.Context, img *Image) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error)
	DeactivateMissing(ctx context.Context, present []string) (int64, error)
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new image repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Image, error) {
	query := `SELECT * FROM images WHERE id = $1`
	var img Image
	err := r.db.GetContext(ctx, &img, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *repository) GetByFilename(ctx context.Context, filename string) (*Image, error) {
	query := `SELECT * FROM images WHERE filename = $1`
	var img Image
	err := r.db.GetContext(ctx, &img, query, filename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *repository) ListActive(ctx context.Context) ([]*Image, error) {
	query := `SELECT * FROM images WHERE is_active = TRUE ORDER BY created_at DESC, filename`
	var images []*Image
	if err := r.db.SelectContext(ctx, &images, query); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *repository) Create(ctx context.Context, img *Image) error {
	query := `
		INSERT INTO images (id, filename, original_name, path, size, width, height, mime_type, checksum, is_active, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	if img.Tags == nil {
		img.Tags = pq.StringArray{}
	}
	_, err := r.db.ExecContext(ctx, query,
		img.ID,
		img.Filename,
		img.OriginalName,
		img.Path,
		img.Size,
		img.Width,
		img.Height,
		img.MimeType,
		img.Checksum,
		img.IsActive,
		img.Tags,
		img.CreatedAt,
		img.UpdatedAt,
	)
	return err
}

// UpdateFileInfo stores what registration learned from the file and marks the row active
func (r *repository) UpdateFileInfo(ctx context.Context, img *Image) error {
	query := `
		UPDATE images SET
			path = $2, size = $3, width = $4, height = $5,
			mime_type = $6, checksum = $7, is_active = TRUE, updated_at = $8
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		img.ID, img.Path, img.Size, img.Width, img.Height,
		img.MimeType, img.Checksum, img.UpdatedAt,
	)
	return err
}

func (r *repository) UpdateMetadata(ctx context.Context, img *Image) error {
	query := `
		UPDATE images SET
			tags = $2, description = $3, date_taken = $4, date_precision = $5, updated_at = $6
		WHERE id = $1
	`
	if img.Tags == nil {
		img.Tags = pq.StringArray{}
	}
	_, err := r.db.ExecContext(ctx, query,
		img.ID, img.Tags, img.Description, img.DateTaken, img.DatePrecision, img.UpdatedAt,
	)
	return err
}

// SetActive reports false when no row has this id
func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	query := `UPDATE images SET is_active = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// DeactivateMissing marks every active row whose filename is not in present as inactive
func (r *repository) DeactivateMissing(ctx context.Context, present []string) (int64, error) {
	query := `
		UPDATE images SET is_active = FALSE, updated_at = NOW()
		WHERE is_active = TRUE AND filename <> ALL($1)
	`
	if present == nil {
		present = []string{} // NULL would match nothing
	}
	result, err := r.db.ExecContext(ctx, query, pq.Array(present))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active) AS active,
			COUNT(*) FILTER (WHERE NOT is_active) AS inactive,
			COALESCE(SUM(size) FILTER (WHERE is_active), 0) AS total_size
		FROM images
	`
	var stats Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}
