package alloc

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rueian/idalloc/pkg/idnum"
)

func NewKeys[T comparable, N idnum.Number[T]](ids *Manager[T, N]) *Keys[T, N] {
	return &Keys[T, N]{
		ids:    ids,
		keys:   make(map[string]T),
		owners: make(map[T]string),
	}
}

// Keys leases at most one id per key.
type Keys[T comparable, N idnum.Number[T]] struct {
	ids    *Manager[T, N]
	mu     sync.Mutex
	keys   map[string]T
	owners map[T]string
}

// Acquire returns the id leased to key, allocating one on first use.
func (k *Keys[T, N]) Acquire(key string) (id T, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if id, ok := k.keys[key]; ok {
		return id, nil
	}
	if id, err = k.ids.Allocate(); err == nil {
		k.keys[key] = id
		k.owners[id] = key
	}
	return
}

// Release frees the id leased to key. Unknown keys are ignored.
func (k *Keys[T, N]) Release(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if id, ok := k.keys[key]; ok {
		delete(k.keys, key)
		delete(k.owners, id)
		return k.ids.Free(id)
	}
	return nil
}

// Free gives back an id allocated directly from the underlying Manager. Ids
// leased to a key can only be given back through Release.
func (k *Keys[T, N]) Free(id T) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if key, ok := k.owners[id]; ok {
		var n N
		return errors.Wrapf(ErrInvalidRelease, "id %s is leased to %s", n.Format(id), key)
	}
	return k.ids.Free(id)
}

func (k *Keys[T, N]) Get(key string) (id T, ok bool) {
	k.mu.Lock()
	id, ok = k.keys[key]
	k.mu.Unlock()
	return
}

func (k *Keys[T, N]) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}
