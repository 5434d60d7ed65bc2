package client

import (
	"slices"
	"strings"
	"sync"

	sb "github.com/spetersoncode/switchboard"
)

// modelCache holds the result of the most recent successful model refresh.
// It is either empty or exactly that result; replace swaps the whole contents
// under one write lock so readers never observe a partial refresh.
type modelCache struct {
	mu     sync.RWMutex
	models map[sb.ModelID]sb.Model
}

func newModelCache() *modelCache {
	return &modelCache{models: make(map[sb.ModelID]sb.Model)}
}

func (c *modelCache) get(id sb.ModelID) (sb.Model, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.models[id]
	return m, ok
}

func (c *modelCache) replace(models []sb.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.models)
	for _, m := range models {
		c.models[m.ID] = m
	}
}

// snapshot returns the cached models ordered by ID.
func (c *modelCache) snapshot() []sb.Model {
	c.mu.RLock()
	out := make([]sb.Model, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, m)
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b sb.Model) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return out
}

func (c *modelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}
