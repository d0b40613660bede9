package interval

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rueian/idalloc/pkg/idnum"
)

func newSet() *Set[uint8, idnum.Native[uint8]] {
	return NewSet[uint8, idnum.Native[uint8]]()
}

func mustInsert(t *testing.T, s *Set[uint8, idnum.Native[uint8]], lower, upper uint8, want bool, dump string) {
	t.Helper()
	ok, err := s.InsertInterval(lower, upper)
	if err != nil {
		t.Fatalf("insert [%d,%d]: %v", lower, upper, err)
	}
	if ok != want {
		t.Fatalf("insert [%d,%d]: expect %v, but get %v", lower, upper, want, ok)
	}
	if got := s.Dump(); got != dump {
		t.Fatalf("insert [%d,%d]: expect %q, but get %q", lower, upper, dump, got)
	}
}

func mustInsertValue(t *testing.T, s *Set[uint8, idnum.Native[uint8]], v uint8, want bool, dump string) {
	t.Helper()
	if ok := s.InsertValue(v); ok != want {
		t.Fatalf("insert %d: expect %v, but get %v", v, want, ok)
	}
	if got := s.Dump(); got != dump {
		t.Fatalf("insert %d: expect %q, but get %q", v, dump, got)
	}
}

func TestEmptySet(t *testing.T) {
	s := newSet()
	if !s.IsEmpty() || s.Dump() != "" {
		t.Fatalf("expect empty set, but get %q", s.Dump())
	}
	if _, err := s.RemoveFirstInterval(); !errors.Is(err, ErrEmptySet) {
		t.Fatalf("expect ErrEmptySet, but get %v", err)
	}
	if _, err := s.RemoveFirstValue(); !errors.Is(err, ErrEmptySet) {
		t.Fatalf("expect ErrEmptySet, but get %v", err)
	}
	if s.RemoveValue(4) {
		t.Fatal("nothing to remove from an empty set")
	}
}

func TestInsertInvalidRange(t *testing.T) {
	s := newSet()
	if _, err := s.InsertInterval(5, 4); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expect ErrInvalidRange, but get %v", err)
	}
}

func TestInsertValue(t *testing.T) {
	s := newSet()
	mustInsertValue(t, s, 4, true, "[4]")
	mustInsertValue(t, s, 10, true, "[4], [10]")
	mustInsertValue(t, s, 4, false, "[4], [10]")
	if s.IsEmpty() {
		t.Fatal("expect non-empty set")
	}
}

func TestInsertDuplicateValueRequiresSorting(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 10, 20, true, "[10,20]")
	mustInsertValue(t, s, 8, true, "[8], [10,20]")
	mustInsertValue(t, s, 11, false, "[8], [10,20]")
}

func TestInsertValueMerges(t *testing.T) {
	s := newSet()
	mustInsertValue(t, s, 4, true, "[4]")
	mustInsertValue(t, s, 3, true, "[3,4]")
	mustInsertValue(t, s, 5, true, "[3,5]")
	mustInsertValue(t, s, 7, true, "[3,5], [7]")
	mustInsertValue(t, s, 6, true, "[3,7]")
}

func TestInsertValuePositions(t *testing.T) {
	s := newSet()
	mustInsertValue(t, s, 10, true, "[10]")
	mustInsertValue(t, s, 2, true, "[2], [10]")
	mustInsertValue(t, s, 5, true, "[2], [5], [10]")
	mustInsertValue(t, s, 6, true, "[2], [5,6], [10]")
	mustInsertValue(t, s, 18, true, "[2], [5,6], [10], [18]")
	mustInsertValue(t, s, 15, true, "[2], [5,6], [10], [15], [18]")
}

func TestInsertOverlappingInterval(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 2, 6, true, "[2,6]")
	for _, c := range [][2]uint8{{2, 6}, {3, 4}, {4, 5}, {5, 6}, {5, 7}, {0, 2}, {0, 9}} {
		mustInsert(t, s, c[0], c[1], false, "[2,6]")
	}
}

func TestInsertIntervalMerges(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 4, 6, true, "[4,6]")
	mustInsert(t, s, 1, 3, true, "[1,6]")
	mustInsert(t, s, 7, 9, true, "[1,9]")
	mustInsert(t, s, 18, 20, true, "[1,9], [18,20]")
	mustInsert(t, s, 12, 13, true, "[1,9], [12,13], [18,20]")
	mustInsert(t, s, 14, 17, true, "[1,9], [12,20]")
	mustInsert(t, s, 10, 11, true, "[1,20]")
}

func TestInsertIntervalSorting(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 4, 10, true, "[4,10]")
	mustInsert(t, s, 5, 10, false, "[4,10]")
	mustInsert(t, s, 5, 12, false, "[4,10]")
	mustInsert(t, s, 12, 20, true, "[4,10], [12,20]")
	mustInsert(t, s, 10, 12, false, "[4,10], [12,20]")
	mustInsert(t, s, 9, 9, false, "[4,10], [12,20]")
	mustInsert(t, s, 4, 9, false, "[4,10], [12,20]")
	mustInsert(t, s, 8, 11, false, "[4,10], [12,20]")
}

func TestInsertAtTypeBounds(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 250, 255, true, "[250,255]")
	mustInsertValue(t, s, 0, true, "[0], [250,255]")
	mustInsert(t, s, 1, 249, true, "[0,255]")
}

func TestRemoveFirstInterval(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 4, 10, true, "[4,10]")
	mustInsert(t, s, 12, 20, true, "[4,10], [12,20]")

	first, err := s.RemoveFirstInterval()
	if err != nil || first.Lower() != 4 || first.Upper() != 10 {
		t.Fatalf("expect [4,10], but get %v, %v", first, err)
	}
	if got := s.Dump(); got != "[12,20]" {
		t.Fatalf("expect [12,20], but get %s", got)
	}
}

func TestRemoveFirstValue(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 4, 5, true, "[4,5]")
	mustInsert(t, s, 12, 20, true, "[4,5], [12,20]")

	for _, c := range []struct {
		want uint8
		dump string
	}{
		{4, "[5], [12,20]"},
		{5, "[12,20]"},
		{12, "[13,20]"},
	} {
		v, err := s.RemoveFirstValue()
		if err != nil || v != c.want {
			t.Fatalf("expect %d, but get %d, %v", c.want, v, err)
		}
		if got := s.Dump(); got != c.dump {
			t.Fatalf("expect %q, but get %q", c.dump, got)
		}
	}
}

func TestRemoveFirstValueDrainsDomain(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 0, math.MaxUint8, true, "[0,255]")
	for i := 0; i <= math.MaxUint8; i++ {
		v, err := s.RemoveFirstValue()
		if err != nil || int(v) != i {
			t.Fatalf("expect %d, but get %d, %v", i, v, err)
		}
	}
	if got := s.Dump(); got != "" {
		t.Fatalf("expect empty dump, but get %q", got)
	}
}

func TestRemoveValue(t *testing.T) {
	cases := []struct {
		value uint8
		dump  string
	}{
		{4, "[5,10]"},
		{6, "[4,5], [7,10]"},
		{10, "[4,9]"},
	}
	for _, c := range cases {
		s := newSet()
		mustInsert(t, s, 4, 10, true, "[4,10]")
		if !s.RemoveValue(c.value) {
			t.Fatalf("expect %d to be removed", c.value)
		}
		if got := s.Dump(); got != c.dump {
			t.Fatalf("remove %d: expect %q, but get %q", c.value, c.dump, got)
		}
		if s.RemoveValue(c.value) {
			t.Fatalf("expect %d to be gone", c.value)
		}
	}
}

func TestRemoveValueDrainsDomain(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 0, math.MaxUint8, true, "[0,255]")
	for i := 0; i <= math.MaxUint8; i++ {
		if !s.RemoveValue(uint8(i)) {
			t.Fatalf("expect %d to be removed", i)
		}
	}
	if !s.IsEmpty() {
		t.Fatalf("expect empty set, but get %q", s.Dump())
	}
}

func TestSplitThenMergeRoundTrip(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 0, 255, true, "[0,255]")
	before := s.Intervals()

	for _, v := range []uint8{0, 17, 128, 255} {
		if !s.RemoveValue(v) {
			t.Fatalf("expect %d to be removed", v)
		}
		if s.Contains(v) {
			t.Fatalf("expect %d to be absent", v)
		}
		if !s.InsertValue(v) {
			t.Fatalf("expect %d to be inserted back", v)
		}
		if diff := cmp.Diff(before, s.Intervals(), cmp.Comparer(func(a, b u8) bool { return a.Equal(b) })); diff != "" {
			t.Fatalf("round trip of %d changed the set (-want +got):\n%s", v, diff)
		}
	}
}

func TestIntervals(t *testing.T) {
	s := newSet()
	mustInsert(t, s, 12, 20, true, "[12,20]")
	mustInsertValue(t, s, 4, true, "[4], [12,20]")

	want := []u8{iv(4, 4), iv(12, 20)}
	if diff := cmp.Diff(want, s.Intervals(), cmp.Comparer(func(a, b u8) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("unexpected intervals (-want +got):\n%s", diff)
	}
	if s.Len() != 2 {
		t.Fatalf("expect 2, but get %d", s.Len())
	}
}

func TestCeil(t *testing.T) {
	s := newSet()
	if v, ok := s.Ceil(0); ok {
		t.Fatalf("expect nothing from an empty set, but get %d", v)
	}

	mustInsert(t, s, 2, 4, true, "[2,4]")
	mustInsert(t, s, 8, 10, true, "[2,4], [8,10]")
	mustInsertValue(t, s, 255, true, "[2,4], [8,10], [255]")

	for _, c := range []struct {
		value uint8
		want  uint8
		ok    bool
	}{
		{0, 2, true},
		{2, 2, true},
		{3, 3, true},
		{4, 4, true},
		{5, 8, true},
		{7, 8, true},
		{10, 10, true},
		{11, 255, true},
		{255, 255, true},
	} {
		v, ok := s.Ceil(c.value)
		if ok != c.ok || v != c.want {
			t.Fatalf("ceil %d: expect %d, %v, but get %d, %v", c.value, c.want, c.ok, v, ok)
		}
	}

	if !s.RemoveValue(255) {
		t.Fatal("expect 255 to be removed")
	}
	if v, ok := s.Ceil(11); ok {
		t.Fatalf("expect nothing past the last member, but get %d", v)
	}
	if v, ok := s.Ceil(255); ok {
		t.Fatalf("expect nothing past the last member, but get %d", v)
	}
}
