package variable

import (
	"sync"

	"github.com/skillsenselab/fpipe/errors"
)

// reservedNames are slot names the library keeps for itself on a Context.
var reservedNames = map[string]struct{}{
	"target":    {},
	"parent":    {},
	"variables": {},
	"closed":    {},
}

// Context is a general-purpose mapping target for scopes and attribute
// references. It is what pipelines run against when the application has no
// context struct of its own.
type Context struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewContext creates a context pre-populated with initial values. Reserved
// slot names are rejected.
func NewContext(initial map[string]any) (*Context, error) {
	c := &Context{values: make(map[string]any, len(initial))}
	for name, value := range initial {
		if err := c.Put(name, value); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns the value stored under name.
func (c *Context) Get(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[name]
	return v, ok
}

// Put stores value under name. Reserved names cannot be written.
func (c *Context) Put(name string, value any) error {
	if _, ok := reservedNames[name]; ok {
		return errors.ReservedName(name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
	return nil
}

// Delete removes the value stored under name.
func (c *Context) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, name)
}

// Len returns the number of stored values.
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// Snapshot returns a copy of the stored values.
func (c *Context) Snapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
