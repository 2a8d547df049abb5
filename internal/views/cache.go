package views

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/veyrascripts/gallery/internal/colors"
	"github.com/veyrascripts/gallery/internal/models"
)

// Views whose data is cached and must be refreshed after a mutation.
const (
	Gallery = "gallery"
	Admin   = "admin"
)

// Cache keeps the script listings behind the gallery and admin pages until a
// mutation invalidates them.
type Cache struct {
	store *cache.Cache

	mu          sync.Mutex
	generations map[string]uint64
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{store: cache.New(ttl, 2*ttl), generations: make(map[string]uint64)}
}

// Scripts returns the cached listing for view, loading it on a miss. Failed
// loads are not cached and degrade to an empty listing.
func (c *Cache) Scripts(ctx context.Context, view string, load func(context.Context) ([]*models.Script, error)) []*models.Script {
	if cached, ok := c.store.Get(view); ok {
		return cached.([]*models.Script)
	}

	generation := c.generation(view)
	scripts, err := load(ctx)
	if err != nil {
		log.Printf("[%v] loading %s view: %v", colors.Error("cache"), view, err)
		return []*models.Script{}
	}

	// A load that overlapped an Invalidate may hold pre-mutation rows.
	c.mu.Lock()
	if c.generations[view] == generation {
		c.store.SetDefault(view, scripts)
	}
	c.mu.Unlock()
	return scripts
}

func (c *Cache) generation(view string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[view]
}

// Invalidate drops the cached data of the given views.
func (c *Cache) Invalidate(views ...string) {
	c.mu.Lock()
	for _, view := range views {
		c.generations[view]++
		c.store.Delete(view)
	}
	c.mu.Unlock()
	log.Printf("[%v] %v", colors.Removed("invalidated"), views)
}
