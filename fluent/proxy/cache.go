package proxy

import (
	"reflect"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"golang.org/x/sync/singleflight"
)

// Cache maps a base wrapper type to its descriptor. Descriptors are held
// weakly: one that no live wrapper references may be collected and is then
// rebuilt on the next request.
type Cache struct {
	mu          sync.RWMutex
	entries     map[reflect.Type]weak.Pointer[AugmentedType]
	group       singleflight.Group
	registry    *Registry
	generations atomic.Int64
	onGenerate  func(reflect.Type)
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithRegistry makes the cache validate base types against r.
func WithRegistry(r *Registry) CacheOption {
	return func(c *Cache) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithGenerateHook calls fn at the start of every generator run.
func WithGenerateHook(fn func(reflect.Type)) CacheOption {
	return func(c *Cache) {
		c.onGenerate = fn
	}
}

// NewCache returns an empty cache over the default registry unless
// WithRegistry says otherwise.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries:  make(map[reflect.Type]weak.Pointer[AugmentedType]),
		registry: DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCache = NewCache()

// DefaultCache returns the process-wide cache shared by every container.
func DefaultCache() *Cache {
	return defaultCache
}

// Registry returns the registry the cache validates against.
func (c *Cache) Registry() *Registry {
	return c.registry
}

// Generations returns how many times the generator has run.
func (c *Cache) Generations() int64 {
	return c.generations.Load()
}

// Len returns the number of live descriptors.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0

	for _, wp := range c.entries {
		if wp.Value() != nil {
			n++
		}
	}

	return n
}

// Augment returns the descriptor of base, generating it on a miss.
// Concurrent misses for the same base share one generator run.
func (c *Cache) Augment(base reflect.Type) (*AugmentedType, error) {
	if base == nil {
		return nil, failure.Misconfigured("Cache.Augment", "base type is nil")
	}

	if aug := c.load(base); aug != nil {
		return aug, nil
	}

	v, err, _ := c.group.Do(base.String(), func() (any, error) {
		if aug := c.load(base); aug != nil {
			return aug, nil
		}

		aug, err := c.generate(base)
		if err != nil {
			return nil, err
		}

		c.store(base, aug)

		return aug, nil
	})
	if err != nil {
		return nil, err
	}

	aug, _ := v.(*AugmentedType)
	if aug.base != base {
		// Two distinct types share a name; retry outside the shared flight.
		return c.augmentAlone(base)
	}

	return aug, nil
}

func (c *Cache) augmentAlone(base reflect.Type) (*AugmentedType, error) {
	aug, err := c.generate(base)
	if err != nil {
		return nil, err
	}

	c.store(base, aug)

	return aug, nil
}

func (c *Cache) load(base reflect.Type) *AugmentedType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	wp, ok := c.entries[base]
	if !ok {
		return nil
	}

	return wp.Value()
}

func (c *Cache) store(base reflect.Type, aug *AugmentedType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[base] = weak.Make(aug)
}

func (c *Cache) generate(base reflect.Type) (*AugmentedType, error) {
	const op = "Cache.Augment"

	if c.onGenerate != nil {
		c.onGenerate(base)
	}

	generation := c.generations.Add(1)

	if err := checkWrapperType(op, base); err != nil {
		return nil, err
	}

	if _, err := c.registry.Lookup(base); err != nil {
		return nil, failure.Misconfigured(op, "%v has no registered constructor", base)
	}

	aug := describe(base, generation)

	for _, m := range aug.methods {
		if !m.Navigates {
			continue
		}

		if _, err := c.registry.Lookup(m.Result); err != nil {
			return nil, failure.Misconfigured(op, "%v.%s returns unregistered wrapper %v", base, m.Name, m.Result)
		}
	}

	return aug, nil
}
