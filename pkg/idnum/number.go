// Package idnum describes the arithmetic an identifier type has to support
// for it to be handed out by an allocator.
package idnum

import (
	"strconv"
)

// Number is the capability set of an identifier type T. Implementations are
// zero sized and used as type parameters, so calls compile down to plain
// arithmetic on T.
type Number[T any] interface {
	Min() T
	Max() T
	Compare(a, b T) int
	// Inc returns v+1, wrapping Max back to Min.
	Inc(v T) T
	// Dec returns v-1, wrapping Min back to Max.
	Dec(v T) T
	Format(v T) string
	Float(v T) float64
}

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Native implements Number for the built-in unsigned integer types.
type Native[T Unsigned] struct{}

func (Native[T]) Min() T { return 0 }

func (Native[T]) Max() T { return ^T(0) }

func (Native[T]) Compare(a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (Native[T]) Inc(v T) T { return v + 1 }

func (Native[T]) Dec(v T) T { return v - 1 }

func (Native[T]) Format(v T) string { return strconv.FormatUint(uint64(v), 10) }

func (Native[T]) Float(v T) float64 { return float64(v) }
