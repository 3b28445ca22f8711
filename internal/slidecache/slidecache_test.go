package slidecache

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRingAddressing(t *testing.T) {
	r := New[string](3)
	if r.Cap() != 8 {
		t.Fatalf("Cap() = %d, want 8", r.Cap())
	}

	r.Put(3, "three")
	if v, ok := r.Get(3); !ok || v != "three" {
		t.Fatalf("Get(3) = (%q, %v), want (three, true)", v, ok)
	}
	// 11 shares the slot of 3 and sees its value unconditionally.
	if v, ok := r.Get(11); !ok || v != "three" {
		t.Fatalf("Get(11) = (%q, %v), want (three, true)", v, ok)
	}

	r.Put(11, "eleven")
	if v, _ := r.Get(3); v != "eleven" {
		t.Fatalf("Get(3) after Put(11) = %q, want eleven", v)
	}
	if _, ok := r.Get(4); ok {
		t.Fatalf("Get(4) on empty slot reported a value")
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	r.Clear()
	if _, ok := r.Get(3); ok || r.Len() != 0 {
		t.Fatalf("ring not empty after Clear")
	}
}

func TestPrefetchWindowHasDistinctSlots(t *testing.T) {
	r := New[int](3)
	const current, radius = 100, 3
	if err := CheckRadius(r.Cap(), radius); err != nil {
		t.Fatalf("CheckRadius(8, 3) = %v", err)
	}

	var indices []int
	seen := make(map[int]int)
	for i := current - radius; i <= current+radius; i++ {
		indices = append(indices, i)
		if prev, ok := seen[r.Slot(i)]; ok {
			t.Fatalf("indices %d and %d share slot %d", prev, i, r.Slot(i))
		}
		seen[r.Slot(i)] = i
		r.Put(i, i)
	}
	if diff := cmp.Diff([]int{97, 98, 99, 100, 101, 102, 103}, indices); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	for _, i := range indices {
		if v, ok := r.Get(i); !ok || v != i {
			t.Fatalf("Get(%d) = (%d, %v); window evicted itself", i, v, ok)
		}
	}
}

func TestCheckRadius(t *testing.T) {
	tests := []struct {
		capacity, radius int
		ok               bool
	}{
		{8, 3, true},
		{8, 4, false},
		{4, 1, true},
		{4, 2, false},
		{2, 0, true},
		{8, -1, false},
	}
	for _, tc := range tests {
		err := CheckRadius(tc.capacity, tc.radius)
		if (err == nil) != tc.ok {
			t.Errorf("CheckRadius(%d, %d) = %v, want ok=%v", tc.capacity, tc.radius, err, tc.ok)
		}
	}
}

func TestNewRejectsHugeCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("New(MaxExponent+1) did not panic")
		}
	}()
	New[int](MaxExponent + 1)
}

func TestPendingNeverDowngrades(t *testing.T) {
	p := NewPending[int]()

	if !p.RequestPrefetch(7, 1) {
		t.Fatalf("first RequestPrefetch must issue a fetch")
	}
	if p.RequestPrefetch(7, 2) {
		t.Fatalf("second RequestPrefetch must not issue a fetch")
	}
	if p.RequestPresent(7, 3) {
		t.Fatalf("RequestPresent on a pending fetch must not issue another")
	}
	f, ok := p.Lookup(7)
	if !ok || f.Intent != PresentImmediately || f.Ticket != 1 {
		t.Fatalf("Lookup(7) = (%+v, %v), want present with ticket 1", f, ok)
	}

	if p.RequestPrefetch(7, 4) {
		t.Fatalf("RequestPrefetch after present must not issue a fetch")
	}
	if f, _ := p.Lookup(7); f.Intent != PresentImmediately {
		t.Fatalf("prefetch downgraded a present intent to %v", f.Intent)
	}
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
}

func TestPendingPresentFirst(t *testing.T) {
	p := NewPending[string]()
	if !p.RequestPresent("a", 9) {
		t.Fatalf("RequestPresent on empty table must issue a fetch")
	}
	p.Reassign("a", 10)
	if f, _ := p.Lookup("a"); f.Ticket != 10 || f.Intent != PresentImmediately {
		t.Fatalf("Reassign lost intent or ticket: %+v", f)
	}
	p.Reassign("b", 11)
	if f, ok := p.Lookup("b"); !ok || f.Intent != PrefetchOnly {
		t.Fatalf("Reassign on missing key = (%+v, %v), want prefetch entry", f, ok)
	}
	p.Remove("a")
	if _, ok := p.Lookup("a"); ok {
		t.Fatalf("entry survived Remove")
	}
	p.Clear()
	if p.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", p.Len())
	}
}
