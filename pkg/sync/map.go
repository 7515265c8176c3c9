package sync

import (
	"sync"

	"golang.org/x/exp/maps"
)

// Map is a generic map guarded by a RWMutex, safe for concurrent use.
type Map[K comparable, V any] struct {
	mutex sync.RWMutex
	data  map[K]V
}

// NewMap creates map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		data: make(map[K]V),
	}
}

// Store sets the value for a key.
func (m *Map[K, V]) Store(key K, value V) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data[key] = value
}

// Load returns the value stored in the map for a key.
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok = m.data[key]
	return value, ok
}

// Update calls f with the current value under the write lock. f returns the
// value to store, or doDelete to remove the key.
func (m *Map[K, V]) Update(key K, f func(oldValue V, oldLoaded bool) (newValue V, doDelete bool)) (oldValue V, oldLoaded bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	oldValue, oldLoaded = m.data[key]
	newValue, del := f(oldValue, oldLoaded)
	if del {
		delete(m.data, key)
		return oldValue, oldLoaded
	}
	m.data[key] = newValue
	return oldValue, oldLoaded
}

// Delete deletes the value for a key.
func (m *Map[K, V]) Delete(key K) (deleted bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, ok := m.data[key]
	delete(m.data, key)
	return ok
}

// DeleteIf removes the key when pred holds for its current value.
func (m *Map[K, V]) DeleteIf(key K, pred func(value V) bool) (deleted bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	value, ok := m.data[key]
	if !ok || !pred(value) {
		return false
	}
	delete(m.data, key)
	return true
}

// Range calls f for each key and value on a copy taken under the read lock,
// so f may modify the map. If f returns false, range stops the iteration.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.mutex.RLock()
	mCopy := maps.Clone(m.data)
	m.mutex.RUnlock()
	for key, value := range mCopy {
		if !f(key, value) {
			return
		}
	}
}

// PullOutAll extracts internal map data and replace it with empty map.
func (m *Map[K, V]) PullOutAll() map[K]V {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	data := m.data
	m.data = make(map[K]V)
	return data
}

// Length returns number of stored values.
func (m *Map[K, V]) Length() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.data)
}
