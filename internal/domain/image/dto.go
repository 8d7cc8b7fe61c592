package image

import (
	"time"

	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/pkg/optional"
)

// UpdateImageRequest for PATCH /images/{id}.
// Each field may be omitted (unchanged), null (cleared) or set.
type UpdateImageRequest struct {
	Tags          optional.Field[[]string] `json:"tags"`
	Description   optional.Field[string]   `json:"description"`
	DateTaken     optional.Field[string]   `json:"date_taken"`
	DatePrecision optional.Field[string]   `json:"date_precision"`
}

// HasChanges reports whether any field was sent
func (r *UpdateImageRequest) HasChanges() bool {
	return r.Tags.Present() || r.Description.Present() || r.DateTaken.Present() || r.DatePrecision.Present()
}

// RotateRequest for POST /images/{id}/rotate
type RotateRequest struct {
	Degrees int `json:"degrees" validate:"required,rotation"`
}

// ImageResponse represents an image in API responses
type ImageResponse struct {
	ID            uuid.UUID `json:"id"`
	Filename      string    `json:"filename"`
	OriginalName  string    `json:"original_name"`
	URL           string    `json:"url"`
	Size          int64     `json:"size"`
	Width         *int      `json:"width"`
	Height        *int      `json:"height"`
	MimeType      string    `json:"mime_type"`
	Checksum      *string   `json:"checksum"`
	IsActive      bool      `json:"is_active"`
	Description   *string   `json:"description"`
	Tags          []string  `json:"tags"`
	DateTaken     *string   `json:"date_taken"`
	DatePrecision *string   `json:"date_precision"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
}

// ImageResponseFromEntity converts entity to response DTO
func ImageResponseFromEntity(i *Image) *ImageResponse {
	resp := &ImageResponse{
		ID:           i.ID,
		Filename:     i.Filename,
		OriginalName: i.OriginalName,
		URL:          "/api/v1/images/" + i.ID.String() + "/file",
		Size:         i.Size,
		MimeType:     i.MimeType,
		IsActive:     i.IsActive,
		Tags:         []string(i.Tags),
		CreatedAt:    i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    i.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}

	if i.Width.Valid {
		w := int(i.Width.Int32)
		resp.Width = &w
	}
	if i.Height.Valid {
		h := int(i.Height.Int32)
		resp.Height = &h
	}
	if i.Checksum.Valid {
		resp.Checksum = &i.Checksum.String
	}
	if i.Description.Valid {
		resp.Description = &i.Description.String
	}
	if i.DateTaken.Valid {
		d := i.DateTaken.Time.Format(time.RFC3339)
		resp.DateTaken = &d
	}
	if i.DatePrecision.Valid {
		resp.DatePrecision = &i.DatePrecision.String
	}

	return resp
}

// ImageResponsesFromEntities converts a list
func ImageResponsesFromEntities(images []*Image) []*ImageResponse {
	items := make([]*ImageResponse, len(images))
	for i, img := range images {
		items[i] = ImageResponseFromEntity(img)
	}
	return items
}
