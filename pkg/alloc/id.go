package alloc

import (
	"github.com/pkg/errors"
	"github.com/rueian/idalloc/pkg/idnum"
	"github.com/rueian/idalloc/pkg/interval"
)

var (
	ErrExhausted      = errors.New("no free id")
	ErrInvalidRelease = errors.New("id is not currently allocated")
)

// NewID returns an allocator over the whole range of T.
func NewID[T any, N idnum.Number[T]](policy ReusePolicy) *ID[T, N] {
	var n N
	id, _ := NewIDRange[T, N](policy, n.Min(), n.Max())
	return id
}

// NewIDRange returns an allocator handing out ids in [lower, upper].
func NewIDRange[T any, N idnum.Number[T]](policy ReusePolicy, lower, upper T) (*ID[T, N], error) {
	free := interval.NewSet[T, N]()
	if _, err := free.InsertInterval(lower, upper); err != nil {
		return nil, err
	}
	return &ID[T, N]{
		free:   free,
		policy: policy,
		lower:  lower,
		upper:  upper,
		next:   lower,
	}, nil
}

// ID tracks the free ids of a domain. It is not safe for concurrent use, see
// Manager for that.
type ID[T any, N idnum.Number[T]] struct {
	free   *interval.Set[T, N]
	policy ReusePolicy
	lower  T
	upper  T
	next   T
}

func (i *ID[T, N]) Policy() ReusePolicy { return i.policy }

func (i *ID[T, N]) Bounds() (lower, upper T) { return i.lower, i.upper }

func (i *ID[T, N]) Dump() string { return i.free.Dump() }

func (i *ID[T, N]) CanAllocate() bool { return !i.free.IsEmpty() }

func (i *ID[T, N]) Allocate() (id T, err error) {
	if i.free.IsEmpty() {
		return id, ErrExhausted
	}
	if i.policy == ReuseFast {
		return i.free.RemoveFirstValue()
	}

	// The first free id at or after the cursor, wrapping round the domain.
	var ok bool
	if id, ok = i.free.Ceil(i.next); !ok {
		id, _ = i.free.Ceil(i.lower)
	}
	i.free.RemoveValue(id)
	i.next = i.advance(id)
	return id, nil
}

// AllocateID allocates an id and wraps it in a Handle that gives it back on
// Close.
func (i *ID[T, N]) AllocateID() (*Handle[T], error) {
	id, err := i.Allocate()
	if err != nil {
		return nil, err
	}
	return newHandle[T](i, id), nil
}

func (i *ID[T, N]) Free(id T) error {
	var n N
	if n.Compare(id, i.lower) < 0 || n.Compare(id, i.upper) > 0 {
		return errors.Wrapf(ErrInvalidRelease, "id %s is outside [%s,%s]", n.Format(id), n.Format(i.lower), n.Format(i.upper))
	}
	if !i.free.InsertValue(id) {
		return errors.Wrapf(ErrInvalidRelease, "id %s", n.Format(id))
	}
	return nil
}

func (i *ID[T, N]) Stats() Stats {
	var n N
	s := Stats{Policy: i.policy, Intervals: i.free.Len()}
	i.free.Ascend(func(iv interval.Interval[T, N]) bool {
		s.Free += n.Float(iv.Upper()) - n.Float(iv.Lower()) + 1
		return true
	})
	return s
}

func (i *ID[T, N]) advance(id T) T {
	var n N
	if n.Compare(id, i.upper) == 0 {
		return i.lower
	}
	return n.Inc(id)
}

// Stats is a point in time summary of an allocator.
type Stats struct {
	Policy    ReusePolicy
	Intervals int
	// Free is approximate for domains wider than 2^53.
	Free float64
}
