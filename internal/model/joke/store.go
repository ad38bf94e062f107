package joke

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrEmptyCatalog is returned by Pick when there is nothing to tell.
var ErrEmptyCatalog = errors.New("joke catalog is empty")

// Store exposes joke retrieval for HTTP handlers.
type Store interface {
	List() []Joke
	FindByID(id string) (Joke, bool)
}

// Source hands out the next joke to tell.
type Source interface {
	Pick(ctx context.Context) (Joke, error)
}

// Catalog implements Store and Source with an in-memory slice.
type Catalog struct {
	items []Joke

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewCatalog returns a Catalog preloaded with the supplied jokes.
func NewCatalog(items []Joke) *Catalog {
	return NewCatalogWithRand(items, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewCatalogWithRand is NewCatalog with a caller supplied random source.
func NewCatalogWithRand(items []Joke, rnd *rand.Rand) *Catalog {
	return &Catalog{items: append([]Joke(nil), items...), rnd: rnd}
}

// List returns the catalog contents.
func (c *Catalog) List() []Joke {
	return append([]Joke(nil), c.items...)
}

// FindByID looks up a joke by identifier.
func (c *Catalog) FindByID(id string) (Joke, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Joke{}, false
}

// Pick returns a random joke.
func (c *Catalog) Pick(_ context.Context) (Joke, error) {
	if len(c.items) == 0 {
		return Joke{}, ErrEmptyCatalog
	}

	c.mu.Lock()
	idx := c.rnd.Intn(len(c.items))
	c.mu.Unlock()

	return c.items[idx], nil
}
