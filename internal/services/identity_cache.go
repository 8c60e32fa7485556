package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"spin-history-dashboard/internal/config"
	"spin-history-dashboard/internal/models"
)

const defaultLoadTimeout = 10 * time.Second

type IdentityLookup interface {
	Lookup(ctx context.Context, address string) (*models.ENSIdentity, error)
}

// IdentityStore is the optional second cache level shared between processes.
type IdentityStore interface {
	GetIdentity(ctx context.Context, address string) (*models.ENSIdentity, bool, error)
	StoreIdentity(ctx context.Context, address string, identity *models.ENSIdentity) error
}

// IdentityCache memoizes ENS lookups for the lifetime of the process. Entries
// are never evicted. A nil entry is a cached miss, only written under FailureCache.
type IdentityCache struct {
	lookup  IdentityLookup
	store   IdentityStore
	policy  config.FailurePolicy
	timeout time.Duration
	log     *zap.Logger

	mu      sync.RWMutex
	entries map[string]*models.ENSIdentity

	group   singleflight.Group
	lookups atomic.Int64
}

// NewIdentityCache builds the cache; store may be nil to run without the shared level.
func NewIdentityCache(lookup IdentityLookup, store IdentityStore, policy config.FailurePolicy, log *zap.Logger) *IdentityCache {
	if policy == "" {
		policy = config.FailureRetry
	}
	return &IdentityCache{
		lookup:  lookup,
		store:   store,
		policy:  policy,
		timeout: defaultLoadTimeout,
		log:     log,
		entries: make(map[string]*models.ENSIdentity),
	}
}

// SetLoadTimeout bounds one shared lookup (store read, ENS call, store write).
func (c *IdentityCache) SetLoadTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Resolve returns the identity of address, or nil when none is available.
// Concurrent calls for the same address share one lookup. The shared lookup is
// detached from ctx cancellation so one departing caller cannot fail the others;
// it is bounded by the load timeout instead.
func (c *IdentityCache) Resolve(ctx context.Context, address string) *models.ENSIdentity {
	if identity, ok := c.cached(address); ok {
		return identity
	}

	v, _, _ := c.group.Do(address, func() (any, error) {
		if identity, ok := c.cached(address); ok {
			return identity, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		identity, err := c.load(loadCtx, address)
		if err != nil {
			c.log.Error("Error fetching ENS data",
				zap.String("address", address),
				zap.String("kind", ErrorKind(err)),
				zap.Error(err),
			)
			if c.policy == config.FailureCache && !isContextError(err) {
				c.put(address, nil)
			}
			return (*models.ENSIdentity)(nil), nil
		}

		c.put(address, identity)
		return identity, nil
	})

	return v.(*models.ENSIdentity)
}

func (c *IdentityCache) load(ctx context.Context, address string) (*models.ENSIdentity, error) {
	if c.store != nil {
		identity, ok, err := c.store.GetIdentity(ctx, address)
		if err != nil {
			c.log.Warn("identity store read failed", zap.String("address", address), zap.Error(err))
		} else if ok {
			return identity, nil
		}
	}

	c.lookups.Add(1)
	identity, err := c.lookup.Lookup(ctx, address)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if err := c.store.StoreIdentity(ctx, address, identity); err != nil {
			c.log.Warn("identity store write failed", zap.String("address", address), zap.Error(err))
		}
	}
	return identity, nil
}

// isContextError reports a lookup that ended because time ran out, not because
// the name service answered.
func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (c *IdentityCache) cached(address string) (*models.ENSIdentity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	identity, ok := c.entries[address]
	return identity, ok
}

func (c *IdentityCache) put(address string, identity *models.ENSIdentity) {
	c.mu.Lock()
	c.entries[address] = identity
	c.mu.Unlock()
}

// Len is the number of addresses held in memory, cached misses included.
func (c *IdentityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Lookups counts the calls made to the name service.
func (c *IdentityCache) Lookups() int64 {
	return c.lookups.Load()
}
