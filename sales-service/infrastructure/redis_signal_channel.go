package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	signalKeyPrefix = "order:signal:"

	// Signals outlive the longest saga wait window so a decision sent early
	// is still there when the saga reaches its wait point.
	signalTTL = 8 * 24 * time.Hour

	signalPollInterval = 500 * time.Millisecond
)

// RedisSignalChannel implements SignalChannel as a per-order, per-kind Redis
// mailbox. Send keeps only the latest signal of each kind; Await polls the
// mailbox and consumes the signal it returns.
type RedisSignalChannel struct {
	client *redis.Client
}

// NewRedisSignalChannel creates a new RedisSignalChannel
func NewRedisSignalChannel(client *redis.Client) *RedisSignalChannel {
	return &RedisSignalChannel{client: client}
}

func signalKey(orderID models.ID, kind domain.SignalKind) string {
	return signalKeyPrefix + string(kind) + ":" + orderID.String()
}

// Send buffers the signal, replacing any earlier signal of the same kind
func (c *RedisSignalChannel) Send(ctx context.Context, signal *domain.Signal) error {
	payload, err := json.Marshal(signal)
	if err != nil {
		return errors.Wrap(err, "failed to marshal signal")
	}
	if err := c.client.Set(ctx, signalKey(signal.OrderID, signal.Kind), payload, signalTTL).Err(); err != nil {
		return domain.Transient(errors.Wrap(err, "failed to send signal"))
	}
	return nil
}

// Peek returns the buffered signal without consuming it, nil when none
func (c *RedisSignalChannel) Peek(ctx context.Context, orderID models.ID, kind domain.SignalKind) (*domain.Signal, error) {
	payload, err := c.client.Get(ctx, signalKey(orderID, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, domain.Transient(errors.Wrap(err, "failed to peek signal"))
	}
	return c.decode(payload)
}

// Await polls for a signal of one of the given kinds, consuming and returning
// the first one found. Returns nil, nil when the timeout elapses first.
func (c *RedisSignalChannel) Await(ctx context.Context, orderID models.ID, kinds []domain.SignalKind, timeout time.Duration) (*domain.Signal, error) {
	if timeout <= 0 {
		return nil, nil
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(signalPollInterval)
	defer ticker.Stop()

	for {
		for _, kind := range kinds {
			payload, err := c.client.GetDel(ctx, signalKey(orderID, kind)).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				return nil, domain.Transient(errors.Wrap(err, "failed to receive signal"))
			}
			return c.decode(payload)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, nil
		case <-ticker.C:
		}
	}
}

func (c *RedisSignalChannel) decode(payload []byte) (*domain.Signal, error) {
	var signal domain.Signal
	if err := json.Unmarshal(payload, &signal); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal signal")
	}
	return &signal, nil
}
