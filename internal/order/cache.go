package order

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

const customerKeyPrefix = "customer:"

// CachedCustomerDirectory asks the wrapped directory first and keeps the latest
// snapshot of every found customer in Redis for ttl. The snapshot is served only
// when the directory itself fails; a customer the directory no longer knows is evicted.
type CachedCustomerDirectory struct {
	next   CustomerDirectory
	rdb    redis.Cmdable
	ttl    time.Duration
	logger observability.Logger
}

func NewCachedCustomerDirectory(next CustomerDirectory, rdb redis.Cmdable, ttl time.Duration, logger observability.Logger) *CachedCustomerDirectory {
	return &CachedCustomerDirectory{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (d *CachedCustomerDirectory) FindCustomerByID(ctx context.Context, id string) (events.Customer, bool, error) {
	key := customerKeyPrefix + id

	customer, ok, err := d.next.FindCustomerByID(ctx, id)
	switch {
	case err != nil:
		if cached, hit := d.load(ctx, key); hit {
			d.logger.Warn("⚠️ Customer directory failed, serving cached snapshot",
				zap.String("customer_id", id),
				zap.Error(err),
			)
			return cached, true, nil
		}
		return events.Customer{}, false, err
	case !ok:
		if delErr := d.rdb.Del(ctx, key).Err(); delErr != nil {
			d.logger.Warn("⚠️ Customer cache eviction failed", zap.String("customer_id", id), zap.Error(delErr))
		}
		return events.Customer{}, false, nil
	}

	d.store(ctx, key, customer)
	return customer, true, nil
}

func (d *CachedCustomerDirectory) load(ctx context.Context, key string) (events.Customer, bool) {
	raw, err := d.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			d.logger.Warn("⚠️ Customer cache read failed", zap.String("key", key), zap.Error(err))
		}
		return events.Customer{}, false
	}

	var customer events.Customer
	if err := json.Unmarshal(raw, &customer); err != nil {
		d.logger.Warn("⚠️ Discarding unreadable cached customer", zap.String("key", key), zap.Error(err))
		return events.Customer{}, false
	}
	return customer, true
}

func (d *CachedCustomerDirectory) store(ctx context.Context, key string, customer events.Customer) {
	payload, err := json.Marshal(customer)
	if err != nil {
		return
	}
	if err := d.rdb.Set(ctx, key, payload, d.ttl).Err(); err != nil {
		d.logger.Warn("⚠️ Customer cache write failed", zap.String("key", key), zap.Error(err))
	}
}
