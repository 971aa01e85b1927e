package nabo

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSelectKindAuto(t *testing.T) {
	tests := []struct {
		name     string
		dims, n  int
		expected Kind
	}{
		{
			name:     "tiny cloud → brute_force",
			dims:     3,
			n:        10,
			expected: KindBruteForce,
		},
		{
			name:     "n=32 → brute_force",
			dims:     3,
			n:        32,
			expected: KindBruteForce,
		},
		{
			name:     "n=33 → kdtree",
			dims:     3,
			n:        33,
			expected: KindKDTree,
		},
		{
			name:     "dim=60 → kdtree",
			dims:     60,
			n:        1000,
			expected: KindKDTree,
		},
		{
			name:     "dim=61 → brute_force",
			dims:     61,
			n:        1000,
			expected: KindBruteForce,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectKind(KindAuto, mat.NewDense(tt.dims, tt.n, nil))
			if got != tt.expected {
				t.Errorf("selectKind(auto) = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSelectKindExplicit(t *testing.T) {
	cloud := mat.NewDense(2, 5, nil)
	for _, kind := range []Kind{KindBruteForce, KindKDTree} {
		if got := selectKind(kind, cloud); got != kind {
			t.Errorf("selectKind(%q) = %q, want it unchanged", kind, got)
		}
	}
}

func TestNewIndex_Auto(t *testing.T) {
	idx, err := NewIndex(mat.NewDense(2, 4, []float64{0, 1, 0, 5, 0, 0, 1, 5}), KindAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := idx.(*BruteForce); !ok {
		t.Errorf("auto on 4 points built %T, want *BruteForce", idx)
	}

	idx, err = NewIndex(generateCloud(500, 3), KindAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := idx.(*KDTree); !ok {
		t.Errorf("auto on 500 points built %T, want *KDTree", idx)
	}

	if _, err := NewIndex(nil, KindAuto); err == nil {
		t.Error("expected an error for a nil cloud")
	}
}
