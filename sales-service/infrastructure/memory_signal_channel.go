package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
)

// MemorySignalChannel is an in-process SignalChannel used in tests and local
// runs. Like the Redis mailbox it keeps the latest signal per kind per order
// and Await consumes what it returns.
type MemorySignalChannel struct {
	mu      sync.Mutex
	signals map[models.ID]map[domain.SignalKind]*domain.Signal
	wakeup  chan struct{}
}

// NewMemorySignalChannel creates an empty in-memory mailbox
func NewMemorySignalChannel() *MemorySignalChannel {
	return &MemorySignalChannel{
		signals: make(map[models.ID]map[domain.SignalKind]*domain.Signal),
		wakeup:  make(chan struct{}),
	}
}

// Send buffers the signal and wakes any waiting sagas
func (c *MemorySignalChannel) Send(_ context.Context, signal *domain.Signal) error {
	c.mu.Lock()
	box, ok := c.signals[signal.OrderID]
	if !ok {
		box = make(map[domain.SignalKind]*domain.Signal)
		c.signals[signal.OrderID] = box
	}
	box[signal.Kind] = signal
	close(c.wakeup)
	c.wakeup = make(chan struct{})
	c.mu.Unlock()
	return nil
}

// Peek returns the buffered signal without consuming it, nil when none
func (c *MemorySignalChannel) Peek(_ context.Context, orderID models.ID, kind domain.SignalKind) (*domain.Signal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signals[orderID][kind], nil
}

// Await blocks until a signal of one of the kinds arrives or the timeout
// elapses, consuming the signal it returns
func (c *MemorySignalChannel) Await(ctx context.Context, orderID models.ID, kinds []domain.SignalKind, timeout time.Duration) (*domain.Signal, error) {
	if timeout <= 0 {
		return nil, nil
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		c.mu.Lock()
		for _, kind := range kinds {
			if sig := c.signals[orderID][kind]; sig != nil {
				delete(c.signals[orderID], kind)
				c.mu.Unlock()
				return sig, nil
			}
		}
		wakeup := c.wakeup
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, nil
		case <-wakeup:
		}
	}
}
