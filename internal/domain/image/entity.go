package image

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DatePrecision qualifies how exact DateTaken is
type DatePrecision string

const (
	PrecisionHour   DatePrecision = "hour"
	PrecisionDay    DatePrecision = "day"
	PrecisionMonth  DatePrecision = "month"
	PrecisionYear   DatePrecision = "year"
	PrecisionDecade DatePrecision = "decade"
)

// Image is a file in the image directory plus its metadata.
// Rows are never deleted; IsActive tracks whether the file was present at the last sync.
type Image struct {
	ID            uuid.UUID      `db:"id"`
	Filename      string         `db:"filename"`
	OriginalName  string         `db:"original_name"`
	Path          string         `db:"path"`
	Size          int64          `db:"size"`
	Width         sql.NullInt32  `db:"width"`
	Height        sql.NullInt32  `db:"height"`
	MimeType      string         `db:"mime_type"`
	Checksum      sql.NullString `db:"checksum"`
	IsActive      bool           `db:"is_active"`
	Description   sql.NullString `db:"description"`
	Tags          pq.StringArray `db:"tags"`
	DateTaken     sql.NullTime   `db:"date_taken"`
	DatePrecision sql.NullString `db:"date_precision"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Dimensions returns the stored width and height when both are known
func (i *Image) Dimensions() (width, height int, ok bool) {
	if !i.Width.Valid || !i.Height.Valid {
		return 0, 0, false
	}
	return int(i.Width.Int32), int(i.Height.Int32), true
}

// Stats summarizes the image table
type Stats struct {
	Total       int     `db:"total" json:"total"`
	Active      int     `db:"active" json:"active"`
	Inactive    int     `db:"inactive" json:"inactive"`
	TotalSize   int64   `db:"total_size" json:"total_size"`
	TotalSizeMB float64 `db:"-" json:"total_size_mb"`
}

// SyncResult is the outcome of one sync pass.
// Per-file failures are data here, not errors.
type SyncResult struct {
	Synced      int      `json:"synced"`
	Errors      []string `json:"errors"`
	Deactivated int64    `json:"deactivated"`
}
