package ecp

import (
	"testing"
)

func scenario2Dataset() [][]float32 {
	return [][]float32{
		{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}, {10, 11, 12}, {10, 11, 12},
		{2, 2, 3}, {2, 5, 6}, {2, 8, 9}, {2, 11, 12}, {2, 11, 12}, {2, 11, 12},
	}
}

func TestSeedScenario5QueryExactnessWithFullProbe(t *testing.T) {
	ix, err := CreateIndex(scenario2Dataset(), 2, WithSpan(0.3))
	if err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	got, err := ix.Query([]float32{10, 11, 12}, 1, 6)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if got[0].Distance != 0 {
		t.Fatalf("distance = %v, want 0", got[0].Distance)
	}
	switch got[0].ID {
	case 3, 4, 5:
	default:
		t.Fatalf("id = %d, want one of {3,4,5}", got[0].ID)
	}
}

func TestSeedScenario6KBestOrdering(t *testing.T) {
	ix, err := CreateIndex(scenario2Dataset(), 2, WithSpan(0.3))
	if err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	got, err := ix.Query([]float32{1, 2, 3}, 3, 6)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if got[0].ID != 0 || got[0].Distance != 0 {
		t.Fatalf("first result = %+v, want id 0 distance 0", got[0])
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance < got[i-1].Distance {
			t.Fatalf("results not ascending: %+v", got)
		}
	}
}

func TestQueryKExceedsSize(t *testing.T) {
	dataset := [][]float32{{1, 1}, {2, 2}, {3, 3}}
	ix, err := CreateIndex(dataset, 2, WithSpan(0))
	if err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	got, err := ix.Query([]float32{1, 1}, 100, 100)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3 (all points)", len(got))
	}
}

func TestQueryEmptyIndexAndDimensionMismatch(t *testing.T) {
	ix, err := CreateIndex([][]float32{{1, 2}}, 1, WithSpan(0))
	if err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	if _, err := ix.Query([]float32{1, 2, 3}, 1, 1); err == nil {
		t.Fatal("expected DimensionMismatch error")
	} else if e, ok := err.(*Error); !ok || e.Kind != DimensionMismatch {
		t.Fatalf("expected DimensionMismatch, got %v", err)
	}

	if _, err := ix.Query([]float32{1, 2}, 0, 1); err == nil {
		t.Fatal("expected InvalidInput error for k=0")
	}
	if _, err := ix.Query([]float32{1, 2}, 1, 0); err == nil {
		t.Fatal("expected InvalidInput error for b=0")
	}

	empty := &Index{dim: 2, metric: Euclidean}
	if _, err := empty.Query([]float32{1, 2}, 1, 1); err == nil {
		t.Fatal("expected EmptyIndex")
	} else if e, ok := err.(*Error); !ok || e.Kind != EmptyIndex {
		t.Fatalf("expected EmptyIndex, got %v", err)
	}
}

func TestAngularMetricQuery(t *testing.T) {
	dataset := [][]float32{{1, 0}, {0, 1}, {-1, 0}}
	ix, err := CreateIndex(dataset, 1, WithSpan(0), WithMetric(Angular))
	if err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	got, err := ix.Query([]float32{1, 0}, 1, 3)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got[0].ID != 0 || got[0].Distance != 0 {
		t.Fatalf("got %+v, want id 0 distance 0", got[0])
	}
}
