// Package kbest implements a bounded top-k accumulator: a max-heap
// capped at k items, keyed by ascending distance with ties broken by
// lower id, so the caller always knows both "is this a top-k result"
// and the current k-th-best distance to use as an early-halting
// threshold.
package kbest

import (
	"container/heap"
	"math"
	"sort"
)

// Item is a single candidate: a point id and its distance to the
// query.
type Item struct {
	ID   uint64
	Dist float64
}

// items is a max-heap (by Dist, ties broken toward the larger id so
// the lower id survives) so the worst current member always sits at
// the root and can be evicted in O(log k).
type items []Item

func (h items) Len() int { return len(h) }
func (h items) Less(i, j int) bool {
	if h[i].Dist != h[j].Dist {
		return h[i].Dist > h[j].Dist
	}
	return h[i].ID > h[j].ID
}
func (h items) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *items) Push(x any)        { *h = append(*h, x.(Item)) }
func (h *items) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Accumulator keeps the k closest items seen so far.
type Accumulator struct {
	k int
	h items
}

// New returns an accumulator that keeps at most k items.
func New(k int) *Accumulator {
	return &Accumulator{k: k, h: make(items, 0, k)}
}

// Add offers a candidate to the accumulator. It is kept if the
// accumulator has fewer than k items, or if it beats the current
// worst kept item (strictly closer, or tied on distance with a lower
// id).
func (a *Accumulator) Add(id uint64, dist float64) {
	if len(a.h) < a.k {
		heap.Push(&a.h, Item{ID: id, Dist: dist})
		return
	}
	if a.k == 0 {
		return
	}
	worst := a.h[0]
	if dist < worst.Dist || (dist == worst.Dist && id < worst.ID) {
		a.h[0] = Item{ID: id, Dist: dist}
		heap.Fix(&a.h, 0)
	}
}

// Threshold returns the distance beyond which no further candidate
// can improve the result: the current worst kept distance once the
// accumulator holds k items, or +Inf before then.
func (a *Accumulator) Threshold() float64 {
	if len(a.h) < a.k {
		return math.Inf(1)
	}
	return a.h[0].Dist
}

// Len returns the number of items currently kept.
func (a *Accumulator) Len() int { return len(a.h) }

// Result drains the accumulator into ascending-distance order, ties
// broken by lower id.
func (a *Accumulator) Result() []Item {
	out := make([]Item, len(a.h))
	copy(out, a.h)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dist != out[j].Dist {
			return out[i].Dist < out[j].Dist
		}
		return out[i].ID < out[j].ID
	})
	return out
}
