package kbest

import (
	"math"
	"testing"
)

func TestAccumulatorKeepsClosest(t *testing.T) {
	acc := New(3)
	acc.Add(0, 5.0)
	acc.Add(1, 1.0)
	acc.Add(2, 9.0)
	acc.Add(3, 2.0)
	acc.Add(4, 0.5)

	got := acc.Result()
	want := []Item{{ID: 4, Dist: 0.5}, {ID: 1, Dist: 1.0}, {ID: 3, Dist: 2.0}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result[%d] = %+v, want %+v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestAccumulatorTieBreakByID(t *testing.T) {
	acc := New(2)
	acc.Add(5, 1.0)
	acc.Add(2, 1.0)
	acc.Add(9, 1.0)

	got := acc.Result()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	if got[0].ID != 2 || got[1].ID != 5 {
		t.Fatalf("expected lowest ids 2,5 to survive on tie, got %v", got)
	}
}

func TestAccumulatorThreshold(t *testing.T) {
	acc := New(2)
	if !math.IsInf(acc.Threshold(), 1) {
		t.Fatalf("empty accumulator threshold = %v, want +Inf", acc.Threshold())
	}
	acc.Add(0, 3.0)
	if !math.IsInf(acc.Threshold(), 1) {
		t.Fatalf("under-capacity accumulator threshold = %v, want +Inf", acc.Threshold())
	}
	acc.Add(1, 1.0)
	if acc.Threshold() != 3.0 {
		t.Fatalf("threshold = %v, want 3.0", acc.Threshold())
	}
	acc.Add(2, 2.0)
	if acc.Threshold() != 2.0 {
		t.Fatalf("threshold = %v, want 2.0 after evicting the worst", acc.Threshold())
	}
}

func TestAccumulatorZeroCapacity(t *testing.T) {
	acc := New(0)
	acc.Add(0, 1.0)
	if acc.Len() != 0 {
		t.Fatalf("Len = %d, want 0", acc.Len())
	}
	if got := acc.Result(); len(got) != 0 {
		t.Fatalf("Result = %v, want empty", got)
	}
}
