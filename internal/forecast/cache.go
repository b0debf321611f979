package forecast

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"renewable-invest/internal/model"
)

type cacheEntry struct {
	factors   model.WeatherFactors
	expiresAt time.Time
}

// Cached memoizes another provider's answers per location for a fixed TTL.
// Errors are not cached.
type Cached struct {
	next Provider
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	store map[string]cacheEntry
}

// NewCached wraps next. A non-positive ttl defaults to one hour.
func NewCached(next Provider, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cached{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		store: make(map[string]cacheEntry),
	}
}

func (c *Cached) WeatherAdjustmentFactors(ctx context.Context, loc model.Location) (model.WeatherFactors, error) {
	key := cacheKey(loc)

	c.mu.RLock()
	entry, ok := c.store[key]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expiresAt) {
		return copyFactors(entry.factors), nil
	}

	factors, err := c.next.WeatherAdjustmentFactors(ctx, loc)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.store[key] = cacheEntry{factors: copyFactors(factors), expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return factors, nil
}

// Len reports the number of entries, expired or not.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Sweep drops expired entries.
func (c *Cached) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if !now.Before(entry.expiresAt) {
			delete(c.store, key)
		}
	}
}

// Run sweeps every interval until ctx is cancelled.
func (c *Cached) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// cacheKey rounds coordinates to four decimals (about 11 m).
func cacheKey(loc model.Location) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%.4f:%.4f", loc.Latitude, loc.Longitude)))
	return hex.EncodeToString(hash[:])
}

func copyFactors(in model.WeatherFactors) model.WeatherFactors {
	out := make(model.WeatherFactors, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
