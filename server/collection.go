package server

import (
	"slices"
	"sync"
)

// collection is an in-memory table of T keyed by an auto-incremented integer id.
type collection[T any] struct {
	mu     sync.RWMutex
	nextID int
	items  []T
	id     func(*T) int
	setID  func(*T, int)
}

func newCollection[T any](id func(*T) int, setID func(*T, int)) *collection[T] {
	return &collection[T]{nextID: 1, id: id, setID: setID}
}

func (c *collection[T]) insert(item T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setID(&item, c.nextID)
	c.nextID++
	c.items = append(c.items, item)
	return item
}

func (c *collection[T]) get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// update applies fn to a copy of the item and stores the copy only when fn succeeds.
func (c *collection[T]) update(id int, fn func(*T) error) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	i := c.index(id)
	if i < 0 {
		return zero, false, nil
	}
	item := c.items[i]
	if err := fn(&item); err != nil {
		return zero, true, err
	}
	c.setID(&item, id)
	c.items[i] = item
	return item, true, nil
}

func (c *collection[T]) remove(id int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	i := c.index(id)
	if i < 0 {
		return zero, false
	}
	item := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	return item, true
}

func (c *collection[T]) all() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *collection[T]) find(pred func(*T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if pred(&c.items[i]) {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) count(pred func(*T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for i := range c.items {
		if pred(&c.items[i]) {
			n++
		}
	}
	return n
}

func (c *collection[T]) index(id int) int {
	for i := range c.items {
		if c.id(&c.items[i]) == id {
			return i
		}
	}
	return -1
}
