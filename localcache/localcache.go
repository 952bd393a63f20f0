package localcache

import (
	"sync"
	"time"

	"github.com/anyproto/any-sync/app"
)

const CName = "localcache"

type Kind uint8

const (
	KindPreferences Kind = iota
	KindState
)

type Config struct {
	PreferencesTTLSec int `yaml:"preferencesTTLSec"`
	StateTTLSec       int `yaml:"stateTTLSec"`
}

// TTL returns the per-kind time-to-live. State changes more often than
// preferences and must not be stale for long.
func (c Config) TTL(kind Kind) time.Duration {
	switch kind {
	case KindState:
		if c.StateTTLSec > 0 {
			return time.Duration(c.StateTTLSec) * time.Second
		}
		return 5 * time.Minute
	default:
		if c.PreferencesTTLSec > 0 {
			return time.Duration(c.PreferencesTTLSec) * time.Second
		}
		return time.Hour
	}
}

type configSource interface {
	GetCache() Config
}

var timeNow = time.Now

func New() LocalCache {
	return &localCache{entries: map[cacheKey]entry{}}
}

// LocalCache is the per-process cache consulted before any remote read and
// refreshed after any remote write. Entries are keyed by (userId, kind): the
// cached documents are whole-user multi-platform aggregates, so platform is a
// field inside the value, not part of the key. An expired entry is absent,
// never returned.
type LocalCache interface {
	Get(userId string, kind Kind) (value any, ok bool)
	Put(userId string, kind Kind, value any)
	Invalidate(userId string, kind Kind)
	app.Component
}

type cacheKey struct {
	userId string
	kind   Kind
}

type entry struct {
	value    any
	cachedAt time.Time
}

type localCache struct {
	conf    Config
	mu      sync.RWMutex
	entries map[cacheKey]entry
}

func (c *localCache) Init(a *app.App) (err error) {
	c.conf = a.MustComponent("config").(configSource).GetCache()
	return
}

func (c *localCache) Name() (name string) {
	return CName
}

func (c *localCache) Get(userId string, kind Kind) (value any, ok bool) {
	c.mu.RLock()
	e, ok := c.entries[cacheKey{userId, kind}]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if timeNow().Sub(e.cachedAt) >= c.conf.TTL(kind) {
		return nil, false
	}
	return e.value, true
}

func (c *localCache) Put(userId string, kind Kind, value any) {
	c.mu.Lock()
	c.entries[cacheKey{userId, kind}] = entry{value: value, cachedAt: timeNow()}
	c.mu.Unlock()
}

func (c *localCache) Invalidate(userId string, kind Kind) {
	c.mu.Lock()
	delete(c.entries, cacheKey{userId, kind})
	c.mu.Unlock()
}
