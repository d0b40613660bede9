package alloc

type freer[T any] interface {
	Free(id T) error
}

func newHandle[T any](owner freer[T], id T) *Handle[T] {
	return &Handle[T]{owner: owner, id: id, owns: true}
}

// Handle owns exactly one allocated id and gives it back to the allocator it
// came from when closed, unless Release was called first. Callers are
// expected to
//
//	h, err := m.AllocateID()
//	if err != nil {
//		return err
//	}
//	defer h.Close()
//
// A Handle is meant to be used by one goroutine at a time.
type Handle[T any] struct {
	owner freer[T]
	id    T
	owns  bool
}

// Value returns the held id whether or not the handle still owns it.
func (h *Handle[T]) Value() T { return h.id }

func (h *Handle[T]) Owns() bool { return h.owns }

// Release hands the id over to the caller; Close becomes a no-op.
func (h *Handle[T]) Release() T {
	h.owns = false
	return h.id
}

// Close frees the id if the handle still owns it. It is safe to call more
// than once.
func (h *Handle[T]) Close() error {
	if !h.owns {
		return nil
	}
	h.owns = false
	return h.owner.Free(h.id)
}
