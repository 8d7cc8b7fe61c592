package link

import (
	"time"

	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/domain/person"
)

// LinkRequest for POST /people/link-to-image
type LinkRequest struct {
	PersonID    uuid.UUID    `json:"person_id" validate:"required"`
	ImageID     uuid.UUID    `json:"image_id" validate:"required"`
	BoundingBox *BoundingBox `json:"bounding_box"`
}

// LinkInput is what the service needs to create a link
type LinkInput struct {
	PersonID    uuid.UUID
	ImageID     uuid.UUID
	BoundingBox *BoundingBox
}

// LinkResponse represents a created link
type LinkResponse struct {
	ImageID     uuid.UUID    `json:"image_id"`
	PersonID    uuid.UUID    `json:"person_id"`
	BoundingBox *BoundingBox `json:"bounding_box"`
	CreatedAt   string       `json:"created_at"`
}

func LinkResponseFromEntity(l *Link) *LinkResponse {
	return &LinkResponse{
		ImageID:     l.ImageID,
		PersonID:    l.PersonID,
		BoundingBox: l.Box(),
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

// LinkedPersonResponse is a person tagged on an image
type LinkedPersonResponse struct {
	*person.PersonResponse
	BoundingBox *BoundingBox `json:"bounding_box"`
	LinkedAt    string       `json:"linked_at"`
}

func LinkedPersonResponsesFromEntities(items []*LinkedPerson) []*LinkedPersonResponse {
	out := make([]*LinkedPersonResponse, len(items))
	for i, lp := range items {
		out[i] = &LinkedPersonResponse{
			PersonResponse: person.PersonResponseFromEntity(&lp.Person),
			BoundingBox:    lp.Box(),
			LinkedAt:       lp.LinkedAt.Format(time.RFC3339),
		}
	}
	return out
}
