package equality

import (
	"sync"

	"github.com/seitarof/eqcheck/internal/descriptor"
)

// Cache memoises top-level answers by ordered identity pair. It is safe for
// concurrent use and may be shared by comparers within one analysis pass.
// Answers for nested pairs are never stored because they can depend on
// cycle assumptions of the enclosing call.
type Cache struct {
	m sync.Map
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) load(key pair) (bool, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return false, false
	}
	return v.(bool), true
}

func (c *Cache) store(key pair, v bool) {
	c.m.Store(key, v)
}

// Lookup returns a cached answer for left against right.
func (c *Cache) Lookup(left, right descriptor.Identity) (bool, bool) {
	return c.load(pair{left: left, right: right})
}

// Len returns the number of cached answers.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
