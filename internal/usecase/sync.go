package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultSyncQueueSize = 64
	defaultSyncTimeout   = 10 * time.Second
)

type syncJob struct {
	name   string
	userID string
	run    func(ctx context.Context, store boardStore) error
}

// remoteSync pushes writes to the remote store in the background, one at a time and
// in submission order. Failures are logged and never reach the caller.
type remoteSync struct {
	logger  *slog.Logger
	store   boardStore
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	jobs   chan syncJob
	done   chan struct{}
}

func newRemoteSync(logger *slog.Logger, store boardStore, queueSize int, timeout time.Duration) *remoteSync {
	that := &remoteSync{
		logger:  logger.With("component", "remote-sync"),
		store:   store,
		timeout: timeout,
		jobs:    make(chan syncJob, queueSize),
		done:    make(chan struct{}),
	}

	go that.loop()

	return that
}

func (that *remoteSync) loop() {
	defer close(that.done)

	for job := range that.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), that.timeout)
		err := job.run(ctx, that.store)
		cancel()

		if err != nil {
			that.logger.Error("remote sync failed", "job", job.name, "user_id", job.userID, "error", err)
			continue
		}

		that.logger.Debug("remote sync done", "job", job.name, "user_id", job.userID)
	}
}

// enqueue never blocks: with a full queue the job is dropped.
func (that *remoteSync) enqueue(job syncJob) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.closed {
		that.logger.Warn("remote sync closed, dropping job", "job", job.name, "user_id", job.userID)
		return
	}

	select {
	case that.jobs <- job:
	default:
		that.logger.Warn("remote sync queue is full, dropping job", "job", job.name, "user_id", job.userID)
	}
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (that *remoteSync) Close() {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		<-that.done
		return
	}
	that.closed = true
	close(that.jobs)
	that.mu.Unlock()

	<-that.done
}
