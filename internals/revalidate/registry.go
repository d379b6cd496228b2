package revalidate

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Registry keeps one version counter per route. Invalidating an entity
// bumps the versions of every dependent route; clients holding an older
// ETag re-fetch, clients holding the current one get a 304.
type Registry struct {
	mu        sync.RWMutex
	deps      map[string][]string
	versions  map[string]uint64
	listeners []func(entity string, routes []string)
	// epoch keeps tags issued before a restart from matching again.
	epoch int64
}

func NewRegistry(deps map[string][]string) *Registry {
	if deps == nil {
		deps = Dependencies
	}
	return &Registry{
		deps:     deps,
		versions: make(map[string]uint64),
		epoch:    time.Now().Unix(),
	}
}

// Invalidate marks every route depending on entity as stale.
func (r *Registry) Invalidate(entity string) []string {
	routes, ok := r.deps[entity]
	if !ok {
		log.Printf("[REVALIDATE] entité inconnue %q, invalidation globale", entity)
		routes = AllRoutes
	}

	r.mu.Lock()
	for _, rt := range routes {
		r.versions[rt]++
	}
	listeners := append([]func(string, []string){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(entity, routes)
	}
	return routes
}

func (r *Registry) Version(route string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.versions[route]
}

// OnInvalidate registers fn; it is called outside the lock.
func (r *Registry) OnInvalidate(fn func(entity string, routes []string)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

func (r *Registry) ETag(route string) string {
	return fmt.Sprintf(`W/"%s@%d.%d"`, route, r.epoch, r.Version(route))
}

// Conditional guards a GET handler serving the data of route.
func (r *Registry) Conditional(route string) fiber.Handler {
	return r.ConditionalScoped(route, nil)
}

// ConditionalScoped is Conditional for routes whose content depends on the
// caller (the parent portal): scope(c) is folded into the tag.
func (r *Registry) ConditionalScoped(route string, scope func(*fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tag := r.ETag(route)
		if scope != nil {
			tag = strings.TrimSuffix(tag, `"`) + "~" + scope(c) + `"`
		}
		c.Set(fiber.HeaderCacheControl, "no-cache")
		if match := c.Get(fiber.HeaderIfNoneMatch); match != "" && etagMatches(match, tag) {
			c.Set(fiber.HeaderETag, tag)
			return c.SendStatus(fiber.StatusNotModified)
		}
		if err := c.Next(); err != nil {
			return err
		}
		// failed renders must not be revalidated as fresh
		if c.Response().StatusCode() == fiber.StatusOK {
			c.Set(fiber.HeaderETag, tag)
		}
		return nil
	}
}

func etagMatches(header, tag string) bool {
	for _, part := range strings.Split(header, ",") {
		if strings.TrimSpace(part) == tag {
			return true
		}
	}
	return false
}
