package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type of a gallery event
type Type string

const (
	TypeImagesSynced   Type = "images.synced"
	TypeImageUpdated   Type = "image.updated"
	TypeImageRotated   Type = "image.rotated"
	TypePersonCreated  Type = "person.created"
	TypePersonLinked   Type = "person.linked"
	TypePersonUnlinked Type = "person.unlinked"
)

// Event is pushed to websocket clients as JSON
type Event struct {
	Type     Type        `json:"type"`
	ImageID  *uuid.UUID  `json:"image_id,omitempty"`
	PersonID *uuid.UUID  `json:"person_id,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	At       time.Time   `json:"at"`
}

// Publisher delivers events. Publishing never fails the caller's operation.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Nop drops events
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

// New builds an event with the current timestamp
func New(t Type) Event {
	return Event{Type: t, At: time.Now().UTC()}
}

func (e Event) WithImage(id uuid.UUID) Event {
	e.ImageID = &id
	return e
}

func (e Event) WithPerson(id uuid.UUID) Event {
	e.PersonID = &id
	return e
}

func (e Event) WithData(data interface{}) Event {
	e.Data = data
	return e
}
