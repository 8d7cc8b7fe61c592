package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/familytree/gallery-api/internal/domain/image"
)

type syncer interface {
	SyncImages(ctx context.Context) (*image.SyncResult, error)
}

// worker runs one sync at a time; requests that arrive mid-sync collapse into one follow-up run
type worker struct {
	syncer  syncer
	pending chan struct{}
	done    func(*image.SyncResult, error)
}

func newWorker(s syncer) *worker {
	return &worker{syncer: s, pending: make(chan struct{}, 1)}
}

// request schedules a sync without blocking
func (w *worker) request() {
	select {
	case w.pending <- struct{}{}:
	default:
	}
}

func (w *worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pending:
		}

		result, err := w.syncer.SyncImages(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Sync pass failed")
		} else {
			log.Info().
				Int("synced", result.Synced).
				Int("failed", len(result.Errors)).
				Int64("deactivated", result.Deactivated).
				Msg("Sync pass finished")
		}
		if w.done != nil {
			w.done(result, err)
		}
	}
}

func subscribeWakeups(ctx context.Context, rdb *redis.Client, w *worker) {
	sub := rdb.Subscribe(ctx, image.SyncWakeChannel)
	defer func() { _ = sub.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			log.Debug().Str("payload", msg.Payload).Msg("Sync wake-up received")
			w.request()
		}
	}
}
