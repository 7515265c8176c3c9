package cache

import (
	"time"

	"github.com/plgd-dev/coapmsg/pkg/sync"
)

type Element[T any] struct {
	validUntil time.Time
	data       T
	onExpire   func(d T)
}

// NewElement creates element that can be stored in the cache. A zero
// validUntil never expires.
func NewElement[T any](data T, validUntil time.Time, onExpire func(d T)) *Element[T] {
	if onExpire == nil {
		onExpire = func(T) {
			// NO-OP as default
		}
	}
	return &Element[T]{data: data, validUntil: validUntil, onExpire: onExpire}
}

func (e *Element[T]) IsExpired(now time.Time) bool {
	if e.validUntil.IsZero() {
		return false
	}
	return now.After(e.validUntil)
}

func (e *Element[T]) ValidUntil() time.Time {
	return e.validUntil
}

func (e *Element[T]) Data() T {
	return e.data
}

type Cache[K comparable, V any] struct {
	data *sync.Map[K, *Element[V]]
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		data: sync.NewMap[K, *Element[V]](),
	}
}

// LoadOrStore loads or creates a new element for key.
//
// If an unexpired element for the key exists it is returned with loaded
// set to true. Otherwise e replaces the expired or missing element and
// (e, false) is returned.
func (c *Cache[K, V]) LoadOrStore(key K, e *Element[V], now time.Time) (actual *Element[V], loaded bool) {
	c.data.Update(key, func(oldValue *Element[V], oldLoaded bool) (*Element[V], bool) {
		if oldLoaded && !oldValue.IsExpired(now) {
			actual = oldValue
			return oldValue, false
		}
		actual = e
		return e, false
	})
	return actual, actual != e
}

// Load returns the element for key when it exists and has not expired.
func (c *Cache[K, V]) Load(key K, now time.Time) *Element[V] {
	a, ok := c.data.Load(key)
	if !ok || a.IsExpired(now) {
		return nil
	}
	return a
}

// Delete removes the element for given key from the cache.
func (c *Cache[K, V]) Delete(key K) (deleted bool) {
	return c.data.Delete(key)
}

// CheckExpirations deletes expired elements and invokes their onExpire
// function.
func (c *Cache[K, V]) CheckExpirations(now time.Time) {
	c.data.Range(func(key K, e *Element[V]) bool {
		if c.data.DeleteIf(key, func(v *Element[V]) bool { return v == e && e.IsExpired(now) }) {
			e.onExpire(e.data)
		}
		return true
	})
}

// Length returns number of elements, expired ones included.
func (c *Cache[K, V]) Length() int {
	return c.data.Length()
}

// PullOutAll removes all elements from the cache and returns them in a map.
func (c *Cache[K, V]) PullOutAll() map[K]V {
	res := make(map[K]V)
	for key, value := range c.data.PullOutAll() {
		res[key] = value.Data()
	}
	return res
}
