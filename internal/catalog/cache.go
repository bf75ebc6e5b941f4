package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vatastudio/concierge/internal/synonym"
)

// DefaultFetchTimeout bounds a single sheet fetch during reload.
const DefaultFetchTimeout = 30 * time.Second

// Cache owns the loaded catalog. Reload publishes a fresh snapshot per
// category under the write lock; readers keep seeing the previous data
// while a reload is in flight, and a category whose fetch fails keeps its
// prior snapshot.
type Cache struct {
	mu       sync.RWMutex
	source   Source
	sheets   map[Category]Sheet
	timeout  time.Duration
	records  map[Category][]Record
	loadedAt map[Category]time.Time
	synonyms *synonym.Table
}

// New builds a cache over the given source and sheet configuration.
func New(source Source, sheets map[Category]Sheet) *Cache {
	return &Cache{
		source:   source,
		sheets:   sheets,
		timeout:  DefaultFetchTimeout,
		records:  make(map[Category][]Record),
		loadedAt: make(map[Category]time.Time),
		synonyms: synonym.NewTable(),
	}
}

// SetFetchTimeout overrides the per-category fetch deadline.
func (c *Cache) SetFetchTimeout(d time.Duration) {
	c.timeout = d
}

// Records returns the current snapshot of a category. The returned slice
// must be treated as read-only.
func (c *Cache) Records(category Category) []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records[category]
}

// Loaded reports whether the category has ever been fetched successfully.
func (c *Cache) Loaded(category Category) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.loadedAt[category]
	return ok
}

// LoadedAt returns the time of the category's last successful fetch.
func (c *Cache) LoadedAt(category Category) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.loadedAt[category]
	return t, ok
}

// Synonyms returns the table derived from the synonyms category.
func (c *Cache) Synonyms() *synonym.Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.synonyms
}

// ReloadResult reports the outcome of one category's fetch.
type ReloadResult struct {
	Category Category
	Count    int
	Err      error
}

// Reload fetches every configured category concurrently and publishes the
// successful ones. A failed category logs and keeps its previous data;
// the rest still update. Results come back in Categories() order.
func (c *Cache) Reload(ctx context.Context) []ReloadResult {
	var categories []Category
	for _, cat := range Categories() {
		if _, ok := c.sheets[cat]; ok {
			categories = append(categories, cat)
		}
	}

	results := make([]ReloadResult, len(categories))
	fetched := make([][]Record, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range categories {
		i, cat := i, cat
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, c.timeout)
			defer cancel()

			records, err := c.source.Fetch(fctx, c.sheets[cat])
			results[i] = ReloadResult{Category: cat, Count: len(records), Err: err}
			fetched[i] = records
			// Errors stay per-category; never fail the group.
			return nil
		})
	}
	_ = g.Wait()

	now := time.Now()
	c.mu.Lock()
	for i, cat := range categories {
		if results[i].Err != nil {
			log.Printf("❌ reload %s failed: %v", cat, results[i].Err)
			continue
		}
		c.records[cat] = fetched[i]
		c.loadedAt[cat] = now
		log.Printf("✅ reload %s: %d records", cat, results[i].Count)

		if cat == Synonyms {
			rows := make([]map[string]string, len(fetched[i]))
			for j, rec := range fetched[i] {
				rows[j] = rec
			}
			c.synonyms = synonym.Build(rows, synonym.DefaultMarker)
			log.Printf("📝 synonyms: %d groups", c.synonyms.Len())
		}
	}
	c.mu.Unlock()

	return results
}
