package link

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/domain/person"
)

// Link ties a person to an image. Box columns are all set or all null.
type Link struct {
	ImageID   uuid.UUID     `db:"image_id"`
	PersonID  uuid.UUID     `db:"person_id"`
	X         sql.NullInt32 `db:"x"`
	Y         sql.NullInt32 `db:"y"`
	Width     sql.NullInt32 `db:"width"`
	Height    sql.NullInt32 `db:"height"`
	CreatedAt time.Time     `db:"created_at"`
}

// NewLink builds a link row; a nil box leaves all four columns null
func NewLink(imageID, personID uuid.UUID, box *BoundingBox, now time.Time) *Link {
	l := &Link{ImageID: imageID, PersonID: personID, CreatedAt: now}
	if box != nil {
		l.X = sql.NullInt32{Int32: int32(box.X), Valid: true}
		l.Y = sql.NullInt32{Int32: int32(box.Y), Valid: true}
		l.Width = sql.NullInt32{Int32: int32(box.Width), Valid: true}
		l.Height = sql.NullInt32{Int32: int32(box.Height), Valid: true}
	}
	return l
}

// Box returns the stored bounding box, nil when absent
func (l *Link) Box() *BoundingBox {
	return boxFromColumns(l.X, l.Y, l.Width, l.Height)
}

// LinkedPerson is a person joined with their link on one image
type LinkedPerson struct {
	person.Person
	X        sql.NullInt32 `db:"x"`
	Y        sql.NullInt32 `db:"y"`
	BoxW     sql.NullInt32 `db:"box_width"`
	BoxH     sql.NullInt32 `db:"box_height"`
	LinkedAt time.Time     `db:"linked_at"`
}

// Box returns the link's bounding box, nil when absent
func (lp *LinkedPerson) Box() *BoundingBox {
	return boxFromColumns(lp.X, lp.Y, lp.BoxW, lp.BoxH)
}

func boxFromColumns(x, y, w, h sql.NullInt32) *BoundingBox {
	if !x.Valid || !y.Valid || !w.Valid || !h.Valid {
		return nil
	}
	return &BoundingBox{X: int(x.Int32), Y: int(y.Int32), Width: int(w.Int32), Height: int(h.Int32)}
}
