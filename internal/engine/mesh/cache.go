package mesh

import (
	"sync"

	"github.com/Faultbox/flora/internal/scene"
)

// Cache shares tessellated meshes between primitives with the same key.
type Cache struct {
	mu     sync.Mutex
	meshes map[string]*Mesh
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{meshes: make(map[string]*Mesh)}
}

// Get returns the mesh for p, building it on first request. Primitives
// without a key are never cached.
func (c *Cache) Get(p *scene.Primitive) *Mesh {
	if p.Key == "" {
		return Build(*p)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.meshes[p.Key]; ok {
		return m
	}
	m := Build(*p)
	c.meshes[p.Key] = m
	return m
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.meshes)
}

// Each visits every cached mesh.
func (c *Cache) Each(fn func(key string, m *Mesh)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, m := range c.meshes {
		fn(k, m)
	}
}
