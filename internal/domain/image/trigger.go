package image

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SyncWakeChannel wakes the sync worker for an immediate pass
const SyncWakeChannel = "gallery:sync:wake"

// SyncTrigger starts a sync without waiting for it
type SyncTrigger interface {
	Trigger(ctx context.Context) error
}

// RedisTrigger asks the sync worker to run
type RedisTrigger struct {
	client *redis.Client
}

func NewRedisTrigger(client *redis.Client) *RedisTrigger {
	return &RedisTrigger{client: client}
}

func (t *RedisTrigger) Trigger(ctx context.Context) error {
	return t.client.Publish(ctx, SyncWakeChannel, time.Now().UTC().Format(time.RFC3339)).Err()
}

// LocalTrigger runs the sync in a goroutine of this process, one at a time
type LocalTrigger struct {
	service *Service
	timeout time.Duration
	running atomic.Bool
}

func NewLocalTrigger(service *Service, timeout time.Duration) *LocalTrigger {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &LocalTrigger{service: service, timeout: timeout}
}

// Trigger is a no-op while a previous background sync is still running
func (t *LocalTrigger) Trigger(context.Context) error {
	if !t.running.CompareAndSwap(false, true) {
		return nil
	}

	go func() {
		defer t.running.Store(false)

		// the request context ends before the sync does
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		if _, err := t.service.SyncImages(ctx); err != nil {
			log.Error().Err(err).Msg("Background sync failed")
		}
	}()
	return nil
}

// NewTrigger prefers the worker when redis is available
func NewTrigger(client *redis.Client, service *Service) SyncTrigger {
	if client != nil {
		return NewRedisTrigger(client)
	}
	return NewLocalTrigger(service, 0)
}
