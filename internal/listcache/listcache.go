// Package listcache caches list pages keyed by resource type and page. A successful
// mutation invalidates every page of its resource, for every scope, so the next read
// goes back to the SPEET API.
package listcache

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const keySeparator = "|"

// Resource cache keys
const (
	Users              = "users"
	Badges             = "badges"
	InterestCategories = "interest-categories"
	Interests          = "interests"
	Reports            = "reports"
)

type Cache struct {
	store *gocache.Cache
}

func New(ttl time.Duration) *Cache {
	cleanup := ttl * 2
	if ttl <= 0 {
		ttl = gocache.NoExpiration
		cleanup = 0
	}
	return &Cache{store: gocache.New(ttl, cleanup)}
}

// Key identifies one cached page. Scope separates principals (the admin's user ID) so a
// page fetched with one access token is never served to another.
type Key struct {
	Resource string
	Scope    string
	Page     int
	Limit    int
}

func (k Key) String() string {
	return strings.Join([]string{k.Resource, k.Scope, fmt.Sprint(k.Page), fmt.Sprint(k.Limit)}, keySeparator)
}

func (c *Cache) Get(key Key) (any, bool) {
	return c.store.Get(key.String())
}

func (c *Cache) Set(key Key, value any) {
	c.store.SetDefault(key.String(), value)
}

// Invalidate drops every cached page of resource.
func (c *Cache) Invalidate(resource string) {
	prefix := resource + keySeparator
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			c.store.Delete(k)
		}
	}
	log.Debug().Str("resource", resource).Msg("list cache invalidated")
}

func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Scoped binds a cache to one principal.
func (c *Cache) Scoped(scope string) *Scoped {
	return &Scoped{cache: c, scope: scope}
}

type Scoped struct {
	cache *Cache
	scope string
}

// Fetch returns the cached page for resource/page/limit or loads and stores it.
// Failed loads are not cached.
func Fetch[T any](ctx context.Context, s *Scoped, resource string, page, limit int, load func(context.Context) (T, error)) (T, error) {
	if s == nil || s.cache == nil {
		return load(ctx)
	}
	key := Key{Resource: resource, Scope: s.scope, Page: page, Limit: limit}
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	s.cache.Set(key, v)
	return v, nil
}

func (s *Scoped) Invalidate(resources ...string) {
	if s == nil || s.cache == nil {
		return
	}
	for _, r := range resources {
		s.cache.Invalidate(r)
	}
}
