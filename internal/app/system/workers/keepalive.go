// internal/app/system/workers/keepalive.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// KeepAlive is a background worker that periodically pings MongoDB so
// idle deployments keep their connections warm. It is the only in-process
// background task the service runs.
type KeepAlive struct {
	client   *mongo.Client
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewKeepAlive creates a keep-alive worker pinging at the given interval.
func NewKeepAlive(client *mongo.Client, logger *zap.Logger, interval time.Duration) *KeepAlive {
	return &KeepAlive{
		client:   client,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the ping loop.
func (w *KeepAlive) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("keep-alive worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *KeepAlive) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("keep-alive worker stopped")
}

func (w *KeepAlive) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := w.client.Ping(ctx, readpref.Primary()); err != nil {
				w.log.Warn("keep-alive ping failed", zap.Error(err))
			}
			cancel()
		}
	}
}
