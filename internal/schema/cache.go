package schema

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/tliron/commonlog"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/singleflight"
)

// errorCooldown is how long a failed load suppresses re-fetch attempts.
const errorCooldown = 60 * time.Second

// ErrCooldown wraps the recorded error while a failed URL is on cooldown.
var ErrCooldown = errors.New("schema fetch on cooldown")

var cacheLog = commonlog.GetLogger("schema.cache")

// Loaded is a schema ready for use: the parsed root for navigation and the
// compiled form for validation.
type Loaded struct {
	Root     *Node
	Compiled *gojsonschema.Schema
	BaseURL  string
}

type entry struct {
	loaded  *Loaded
	err     error
	expires time.Time
}

// Cache is a TTL-and-capacity bounded schema cache. Concurrent misses for
// one URL coalesce into a single loader call; failures are remembered for
// errorCooldown so editors hammering a dead URL do not re-fetch. Loaded and
// failed entries share the capacity bound.
type Cache struct {
	mu     sync.Mutex
	lru    *lru.Cache // nil when capacity is zero (caching disabled)
	ttl    time.Duration
	loader LoadFunc
	group  singleflight.Group
	now    func() time.Time
}

// NewCache creates a Cache over loader. ttl <= 0 means successful loads are
// never retained; capacity 0 disables storage entirely (every request is a
// fresh, still-coalesced load).
func NewCache(loader LoadFunc, ttl time.Duration, capacity int) *Cache {
	c := &Cache{
		ttl:    ttl,
		loader: loader,
		now:    time.Now,
	}
	if capacity > 0 {
		c.lru = lru.New(capacity)
	}
	return c
}

// GetOrLoad returns the schema for url, loading it on a miss.
func (c *Cache) GetOrLoad(url string) (*Loaded, error) {
	if loaded, err, ok := c.lookup(url); ok {
		return loaded, err
	}

	v, err, _ := c.group.Do(url, func() (any, error) {
		// A concurrent flight may have populated the cache between the
		// miss above and acquiring the flight.
		if loaded, err, ok := c.lookup(url); ok {
			return loaded, err
		}

		loaded, err := c.load(url)
		c.store(url, loaded, err)
		if err != nil {
			return nil, err
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Loaded), nil
}

// Invalidate drops the entry for url, forcing the next request to load.
func (c *Cache) Invalidate(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lru != nil {
		c.lru.Remove(lru.Key(url))
	}
}

func (c *Cache) lookup(url string) (*Loaded, error, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lru == nil {
		return nil, nil, false
	}
	v, ok := c.lru.Get(lru.Key(url))
	if !ok {
		return nil, nil, false
	}
	e := v.(*entry)
	if c.now().After(e.expires) {
		c.lru.Remove(lru.Key(url))
		return nil, nil, false
	}
	if e.err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrCooldown, url, e.err), true
	}
	return e.loaded, nil, true
}

func (c *Cache) load(url string) (*Loaded, error) {
	raw, err := c.loader(url)
	if err != nil {
		cacheLog.Warningf("schema load failed for %s: %s", url, err.Error())
		return nil, err
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(raw.Value))
	if err != nil {
		cacheLog.Warningf("schema compile failed for %s: %s", url, err.Error())
		return nil, fmt.Errorf("compile schema %s: %w", url, err)
	}

	cacheLog.Debugf("schema loaded: %s", url)
	return &Loaded{
		Root:     NewNode(raw.Value, raw.Value),
		Compiled: compiled,
		BaseURL:  raw.BaseURL,
	}, nil
}

func (c *Cache) store(url string, loaded *Loaded, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lru == nil {
		return
	}
	if err != nil {
		c.lru.Add(lru.Key(url), &entry{err: err, expires: c.now().Add(errorCooldown)})
		return
	}
	if c.ttl <= 0 {
		return
	}
	c.lru.Add(lru.Key(url), &entry{loaded: loaded, expires: c.now().Add(c.ttl)})
}
