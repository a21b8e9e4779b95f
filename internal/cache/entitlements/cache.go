// Package entitlements mirrors remote billing state on-device: per-user
// usage counters and subscription snapshots, plus the process-wide product
// catalog, plan limits, offers, and feature flags. Values are opaque JSON
// blobs replaced wholesale on every write; there is no merge logic. The
// mirror is best-effort: setters silently no-op on a missing user id, and
// losing it only degrades the offline experience.
package entitlements

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/clauseguard/clauseguard/internal/common"
	"github.com/clauseguard/clauseguard/internal/kvstore"
	"github.com/clauseguard/clauseguard/internal/logging"
)

// Cache is the entitlement mirror over the key-value store.
type Cache struct {
	store kvstore.Store
	log   logging.Logger
}

func New(store kvstore.Store, log logging.Logger) *Cache {
	if log == nil {
		log = logging.Nop()
	}
	return &Cache{store: store, log: log}
}

// Usage returns a user's cached usage snapshot. ok is false when nothing
// was ever fetched for this user (or the stored bytes are corrupt), which
// is distinct from an empty snapshot.
func (c *Cache) Usage(ctx context.Context, userID string) (json.RawMessage, bool, error) {
	if userID == "" {
		return nil, false, nil
	}
	return c.getRaw(ctx, kvstore.UsageKey(userID))
}

func (c *Cache) SetUsage(ctx context.Context, userID string, snapshot json.RawMessage) error {
	if userID == "" {
		return nil
	}
	return c.store.Set(ctx, kvstore.UsageKey(userID), snapshot)
}

// Subscription returns a user's cached subscription snapshot.
func (c *Cache) Subscription(ctx context.Context, userID string) (json.RawMessage, bool, error) {
	if userID == "" {
		return nil, false, nil
	}
	return c.getRaw(ctx, kvstore.SubscriptionKey(userID))
}

func (c *Cache) SetSubscription(ctx context.Context, userID string, snapshot json.RawMessage) error {
	if userID == "" {
		return nil
	}
	return c.store.Set(ctx, kvstore.SubscriptionKey(userID), snapshot)
}

// Products returns the process-wide cached product catalog.
func (c *Cache) Products(ctx context.Context) (json.RawMessage, bool, error) {
	return c.getRaw(ctx, kvstore.KeyProducts)
}

func (c *Cache) SetProducts(ctx context.Context, v json.RawMessage) error {
	return c.store.Set(ctx, kvstore.KeyProducts, v)
}

// Limits returns the process-wide cached plan limits.
func (c *Cache) Limits(ctx context.Context) (json.RawMessage, bool, error) {
	return c.getRaw(ctx, kvstore.KeyLimits)
}

func (c *Cache) SetLimits(ctx context.Context, v json.RawMessage) error {
	return c.store.Set(ctx, kvstore.KeyLimits, v)
}

// Offers returns the process-wide cached offer list.
func (c *Cache) Offers(ctx context.Context) (json.RawMessage, bool, error) {
	return c.getRaw(ctx, kvstore.KeyOffers)
}

func (c *Cache) SetOffers(ctx context.Context, v json.RawMessage) error {
	return c.store.Set(ctx, kvstore.KeyOffers, v)
}

// Features returns the process-wide cached feature-flag snapshot.
func (c *Cache) Features(ctx context.Context) (json.RawMessage, bool, error) {
	return c.getRaw(ctx, kvstore.KeyFeatures)
}

func (c *Cache) SetFeatures(ctx context.Context, v json.RawMessage) error {
	return c.store.Set(ctx, kvstore.KeyFeatures, v)
}

// getRaw reads one opaque blob. Absent and corrupt both report ok=false;
// the caller cannot tell them apart, matching the "corruption is a cache
// miss" contract.
func (c *Cache) getRaw(ctx context.Context, key string) (json.RawMessage, bool, error) {
	data, err := c.store.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !json.Valid(data) {
		c.log.Warn(ctx, "discarding corrupt cached snapshot", "key", key)
		return nil, false, nil
	}
	return data, true, nil
}
