// Package interval keeps sets of free identifiers as sorted, maximally merged
// closed ranges.
package interval

import (
	"github.com/pkg/errors"
	"github.com/rueian/idalloc/pkg/idnum"
)

var ErrInvalidRange = errors.New("upper must be >= lower")

// Interval is the closed range [lower, upper]. A single value is stored as
// lower == upper.
type Interval[T any, N idnum.Number[T]] struct {
	lower T
	upper T
}

func New[T any, N idnum.Number[T]](lower, upper T) (Interval[T, N], error) {
	var n N
	if n.Compare(upper, lower) < 0 {
		return Interval[T, N]{}, ErrInvalidRange
	}
	return Interval[T, N]{lower: lower, upper: upper}, nil
}

func Single[T any, N idnum.Number[T]](value T) Interval[T, N] {
	return Interval[T, N]{lower: value, upper: value}
}

func (i Interval[T, N]) Lower() T { return i.lower }

func (i Interval[T, N]) Upper() T { return i.upper }

func (i Interval[T, N]) IsSingle() bool {
	var n N
	return n.Compare(i.lower, i.upper) == 0
}

func (i Interval[T, N]) Contains(value T) bool {
	var n N
	return n.Compare(i.lower, value) <= 0 && n.Compare(value, i.upper) <= 0
}

func (i Interval[T, N]) Overlaps(other Interval[T, N]) bool {
	var n N
	return n.Compare(other.upper, i.lower) >= 0 && n.Compare(other.lower, i.upper) <= 0
}

// ExtendsLower reports whether i starts right after other ends. An interval
// ending at the type maximum is never followed by anything.
func (i Interval[T, N]) ExtendsLower(other Interval[T, N]) bool {
	var n N
	if n.Compare(other.upper, n.Max()) == 0 {
		return false
	}
	return n.Compare(n.Inc(other.upper), i.lower) == 0
}

// ExtendsUpper reports whether i ends right before other starts. An interval
// starting at the type minimum is never preceded by anything.
func (i Interval[T, N]) ExtendsUpper(other Interval[T, N]) bool {
	var n N
	if n.Compare(other.lower, n.Min()) == 0 {
		return false
	}
	return n.Compare(n.Dec(other.lower), i.upper) == 0
}

// Less orders intervals by lower bound, then by upper bound.
func (i Interval[T, N]) Less(other Interval[T, N]) bool {
	var n N
	if c := n.Compare(i.lower, other.lower); c != 0 {
		return c < 0
	}
	return n.Compare(i.upper, other.upper) < 0
}

func (i Interval[T, N]) Equal(other Interval[T, N]) bool {
	var n N
	return n.Compare(i.lower, other.lower) == 0 && n.Compare(i.upper, other.upper) == 0
}

// String renders [v] for a single value and [lower,upper] otherwise.
func (i Interval[T, N]) String() string {
	var n N
	if i.IsSingle() {
		return "[" + n.Format(i.lower) + "]"
	}
	return "[" + n.Format(i.lower) + "," + n.Format(i.upper) + "]"
}
