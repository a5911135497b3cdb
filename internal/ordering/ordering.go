// Package ordering keeps the orderId sequence shared by Points within a Section
// and Sections within a Platform.
//
// An Index owns the order numbers of its entries. Entities never carry their own
// orderId; callers ask the Index for it. Every mutation ends with a consistency
// check, and a violation panics with *InvariantError because a broken sequence
// would corrupt the stitching matrix.
package ordering

import (
	"fmt"
	"sort"
)

// InvariantError reports a duplicate or out-of-order orderId.
type InvariantError struct {
	Op     string
	Orders []int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ordering: invariant violated after %s: orders %v", e.Op, e.Orders)
}

type entry[T comparable] struct {
	order int
	value T
}

// Index is an ordered set of values keyed by orderId.
// The zero value is an empty, ready to use Index.
type Index[T comparable] struct {
	entries []entry[T]
}

// Len returns the number of entries.
func (x *Index[T]) Len() int {
	return len(x.entries)
}

// Max returns the highest orderId, or -1 when the index is empty.
func (x *Index[T]) Max() int {
	if len(x.entries) == 0 {
		return -1
	}
	return x.entries[len(x.entries)-1].order
}

// Values returns the values in ascending orderId.
func (x *Index[T]) Values() []T {
	out := make([]T, len(x.entries))
	for i, e := range x.entries {
		out[i] = e.value
	}
	return out
}

// Orders returns the orderIds in ascending order.
func (x *Index[T]) Orders() []int {
	out := make([]int, len(x.entries))
	for i, e := range x.entries {
		out[i] = e.order
	}
	return out
}

// At returns the value holding order.
func (x *Index[T]) At(order int) (T, bool) {
	i := x.search(order)
	if i < len(x.entries) && x.entries[i].order == order {
		return x.entries[i].value, true
	}
	var zero T
	return zero, false
}

// OrderOf returns the orderId of v.
func (x *Index[T]) OrderOf(v T) (int, bool) {
	for _, e := range x.entries {
		if e.value == v {
			return e.order, true
		}
	}
	return 0, false
}

// Place registers a newly discovered value that arrived carrying orderId from,
// usually the orderId of the sibling it was duplicated from, and returns the
// orderId it was assigned.
//
// If from is the current maximum (or beyond it) the value is appended at
// max+1. Otherwise the value takes from+1 and every sibling at or after from+1
// moves forward by one. An empty index always assigns 0.
func (x *Index[T]) Place(from int, v T) int {
	if _, dup := x.OrderOf(v); dup {
		panic(&InvariantError{Op: "place (value already indexed)", Orders: x.Orders()})
	}

	max := x.Max()
	var order int
	switch {
	case len(x.entries) == 0:
		order = 0
	case from >= max:
		order = max + 1
	default:
		if from < -1 {
			from = -1
		}
		order = from + 1
	}

	// Build the shifted sequence aside and swap it in, so readers never observe
	// a half-applied shift.
	next := make([]entry[T], 0, len(x.entries)+1)
	inserted := false
	for _, e := range x.entries {
		if !inserted && e.order >= order {
			next = append(next, entry[T]{order: order, value: v})
			inserted = true
		}
		if e.order >= order {
			e.order++
		}
		next = append(next, e)
	}
	if !inserted {
		next = append(next, entry[T]{order: order, value: v})
	}

	x.entries = next
	x.check("place")
	return order
}

// Remove deletes the value at order. The gap is left in place.
func (x *Index[T]) Remove(order int) (T, bool) {
	i := x.search(order)
	if i >= len(x.entries) || x.entries[i].order != order {
		var zero T
		return zero, false
	}
	v := x.entries[i].value
	x.entries = append(x.entries[:i:i], x.entries[i+1:]...)
	x.check("remove")
	return v, true
}

// Compact renumbers the entries contiguously from 0, keeping their relative
// order. It reports whether any orderId changed.
func (x *Index[T]) Compact() bool {
	changed := false
	for i := range x.entries {
		if x.entries[i].order != i {
			x.entries[i].order = i
			changed = true
		}
	}
	x.check("compact")
	return changed
}

// Map returns a new index holding fn applied to every value, with the same
// orderIds, gaps included.
func Map[T, U comparable](x *Index[T], fn func(T) U) *Index[U] {
	out := &Index[U]{entries: make([]entry[U], len(x.entries))}
	for i, e := range x.entries {
		out.entries[i] = entry[U]{order: e.order, value: fn(e.value)}
	}
	out.check("map")
	return out
}

// Contiguous reports whether the orderIds are exactly 0..Len()-1.
func (x *Index[T]) Contiguous() bool {
	for i, e := range x.entries {
		if e.order != i {
			return false
		}
	}
	return true
}

func (x *Index[T]) search(order int) int {
	return sort.Search(len(x.entries), func(i int) bool {
		return x.entries[i].order >= order
	})
}

func (x *Index[T]) check(op string) {
	for i := 1; i < len(x.entries); i++ {
		if x.entries[i].order <= x.entries[i-1].order {
			panic(&InvariantError{Op: op, Orders: x.Orders()})
		}
	}
}
