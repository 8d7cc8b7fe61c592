package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestHubPublishLocal(t *testing.T) {
	hub := NewHub(nil)
	c := &Client{Send: make(chan []byte, 1)}
	hub.Register(c)

	imageID := uuid.New()
	hub.Publish(context.Background(), New(TypeImageRotated).WithImage(imageID).WithData(map[string]int{"degrees": 90}))

	select {
	case data := <-c.Send:
		var got struct {
			Type    Type      `json:"type"`
			ImageID uuid.UUID `json:"image_id"`
		}
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if got.Type != TypeImageRotated || got.ImageID != imageID {
			t.Errorf("unexpected event: %+v", got)
		}
	default:
		t.Fatal("expected event to be delivered")
	}
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil)
	c := &Client{Send: make(chan []byte, 1)}
	hub.Register(c)

	hub.Publish(context.Background(), New(TypeImagesSynced))
	hub.Publish(context.Background(), New(TypeImagesSynced))

	if len(c.Send) != 1 {
		t.Fatalf("expected one buffered event, got %d", len(c.Send))
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub(nil)
	c := &Client{Send: make(chan []byte, 1)}
	hub.Register(c)
	hub.Unregister(c)
	hub.Unregister(c)

	if _, ok := <-c.Send; ok {
		t.Fatal("expected send channel to be closed")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("expected no clients, got %d", hub.ClientCount())
	}
}

func TestNewPublisherWithoutRedis(t *testing.T) {
	if _, ok := NewPublisher(nil).(Nop); !ok {
		t.Fatal("expected Nop publisher without redis")
	}
}
