package interval

import (
	"strings"

	"github.com/google/btree"
	"github.com/pkg/errors"
	"github.com/rueian/idalloc/pkg/idnum"
)

var ErrEmptySet = errors.New("interval set is empty")

const degree = 16

// Set is an ordered collection of disjoint intervals. After every exported
// operation no two members overlap and no two members are adjacent: adjacent
// ranges are always merged into one.
//
// A Set is not safe for concurrent use.
type Set[T any, N idnum.Number[T]] struct {
	tree *btree.BTreeG[Interval[T, N]]
}

func NewSet[T any, N idnum.Number[T]]() *Set[T, N] {
	return &Set[T, N]{tree: btree.NewG[Interval[T, N]](degree, Interval[T, N].Less)}
}

func (s *Set[T, N]) IsEmpty() bool { return s.tree.Len() == 0 }

// Len returns the number of intervals, not the number of values.
func (s *Set[T, N]) Len() int { return s.tree.Len() }

func (s *Set[T, N]) InsertInterval(lower, upper T) (bool, error) {
	iv, err := New[T, N](lower, upper)
	if err != nil {
		return false, err
	}
	return s.Insert(iv), nil
}

func (s *Set[T, N]) InsertValue(value T) bool {
	return s.Insert(Single[T, N](value))
}

// Insert adds iv to the set, merging it with the neighbours it touches. It
// returns false and leaves the set untouched when iv overlaps a member.
func (s *Set[T, N]) Insert(iv Interval[T, N]) bool {
	next, hasNext := s.next(iv)
	if hasNext && next.Overlaps(iv) {
		return false
	}
	prev, hasPrev := s.prev(iv)
	if hasPrev && prev.Overlaps(iv) {
		return false
	}

	merged := iv
	if hasNext && next.ExtendsLower(iv) {
		s.tree.Delete(next)
		merged.upper = next.upper
	}
	if hasPrev && prev.ExtendsUpper(iv) {
		s.tree.Delete(prev)
		merged.lower = prev.lower
	}
	s.tree.ReplaceOrInsert(merged)
	return true
}

// RemoveValue takes value out of the member containing it, splitting that
// member around it. It returns false when no member contains value.
func (s *Set[T, N]) RemoveValue(value T) bool {
	iv, ok := s.find(Single[T, N](value))
	if !ok {
		return false
	}
	s.tree.Delete(iv)

	var n N
	if n.Compare(value, iv.lower) > 0 {
		s.tree.ReplaceOrInsert(Interval[T, N]{lower: iv.lower, upper: n.Dec(value)})
	}
	if n.Compare(value, iv.upper) < 0 {
		s.tree.ReplaceOrInsert(Interval[T, N]{lower: n.Inc(value), upper: iv.upper})
	}
	return true
}

func (s *Set[T, N]) RemoveFirstInterval() (Interval[T, N], error) {
	iv, ok := s.tree.DeleteMin()
	if !ok {
		return iv, ErrEmptySet
	}
	return iv, nil
}

func (s *Set[T, N]) RemoveFirstValue() (T, error) {
	iv, err := s.RemoveFirstInterval()
	if err != nil {
		var zero T
		return zero, err
	}
	if !iv.IsSingle() {
		var n N
		s.tree.ReplaceOrInsert(Interval[T, N]{lower: n.Inc(iv.lower), upper: iv.upper})
	}
	return iv.lower, nil
}

// Contains reports whether value is a member of some interval.
func (s *Set[T, N]) Contains(value T) bool {
	_, ok := s.find(Single[T, N](value))
	return ok
}

// Ceil returns the smallest member value that is >= value.
func (s *Set[T, N]) Ceil(value T) (T, bool) {
	single := Single[T, N](value)
	if prev, ok := s.prev(single); ok && prev.Contains(value) {
		return value, true
	}
	if next, ok := s.next(single); ok {
		if next.Contains(value) {
			return value, true
		}
		return next.lower, true
	}
	var zero T
	return zero, false
}

// Ascend calls fn for every interval in order until fn returns false.
func (s *Set[T, N]) Ascend(fn func(iv Interval[T, N]) bool) {
	s.tree.Ascend(btree.ItemIteratorG[Interval[T, N]](fn))
}

func (s *Set[T, N]) Intervals() []Interval[T, N] {
	out := make([]Interval[T, N], 0, s.tree.Len())
	s.Ascend(func(iv Interval[T, N]) bool {
		out = append(out, iv)
		return true
	})
	return out
}

// Dump renders the intervals in ascending order separated by ", ".
func (s *Set[T, N]) Dump() string {
	var sb strings.Builder
	s.Ascend(func(iv Interval[T, N]) bool {
		if sb.Len() != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(iv.String())
		return true
	})
	return sb.String()
}

func (s *Set[T, N]) String() string { return s.Dump() }

// find returns the member overlapping iv, looking at the closest members on
// either side of it.
func (s *Set[T, N]) find(iv Interval[T, N]) (Interval[T, N], bool) {
	if prev, ok := s.prev(iv); ok && prev.Overlaps(iv) {
		return prev, true
	}
	if next, ok := s.next(iv); ok && next.Overlaps(iv) {
		return next, true
	}
	return Interval[T, N]{}, false
}

// next returns the smallest member >= iv.
func (s *Set[T, N]) next(iv Interval[T, N]) (out Interval[T, N], ok bool) {
	s.tree.AscendGreaterOrEqual(iv, func(item Interval[T, N]) bool {
		out, ok = item, true
		return false
	})
	return
}

// prev returns the largest member <= iv.
func (s *Set[T, N]) prev(iv Interval[T, N]) (out Interval[T, N], ok bool) {
	s.tree.DescendLessOrEqual(iv, func(item Interval[T, N]) bool {
		out, ok = item, true
		return false
	})
	return
}
