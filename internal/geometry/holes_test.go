package geometry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func square(minX, minY, size float64, clockwise bool) []Vertex {
	maxX, maxY := minX+size, minY+size
	if clockwise {
		return []Vertex{XY(minX, minY), XY(minX, maxY), XY(maxX, maxY), XY(maxX, minY), XY(minX, minY)}
	}
	return []Vertex{XY(minX, minY), XY(maxX, minY), XY(maxX, maxY), XY(minX, maxY), XY(minX, minY)}
}

func TestClassifyHoles(t *testing.T) {
	tests := []struct {
		name  string
		rings [][]Vertex
		want  []bool
	}{
		{
			name:  "single ring",
			rings: [][]Vertex{square(0, 0, 10, true)},
			want:  []bool{false},
		},
		{
			name:  "hole inside outer",
			rings: [][]Vertex{square(0, 0, 10, true), square(2, 2, 2, false)},
			want:  []bool{false, true},
		},
		{
			name:  "hole listed before outer",
			rings: [][]Vertex{square(2, 2, 2, false), square(0, 0, 10, true)},
			want:  []bool{true, false},
		},
		{
			name:  "disjoint rings",
			rings: [][]Vertex{square(0, 0, 10, true), square(20, 20, 9, true)},
			want:  []bool{false, false},
		},
		{
			name:  "island inside hole",
			rings: [][]Vertex{square(0, 0, 10, true), square(2, 2, 6, false), square(4, 4, 2, true)},
			want:  []bool{false, true, false},
		},
		{
			// Inner ring's rectangle lies inside the L's rectangle but the
			// ring sits in the notch, outside the L itself.
			name: "bbox contained but outside ring",
			rings: [][]Vertex{
				{XY(0, 0), XY(0, 10), XY(4, 10), XY(4, 4), XY(10, 4), XY(10, 0), XY(0, 0)},
				square(6, 6, 2, true),
			},
			want: []bool{false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(KindPolygon)
			for _, ring := range tt.rings {
				rec.AppendPart(ring...)
			}
			require.Equal(t, tt.want, rec.ClassifyHoles())
			for i, want := range tt.want {
				ring, err := rec.Ring(i)
				require.NoError(t, err)
				require.Equal(t, want, ring.IsHole(), "part %d", i)
			}
		})
	}
}

func TestClassifyHolesNonPolygonal(t *testing.T) {
	rec := NewRecord(KindPolyLine)
	rec.AppendPart(square(0, 0, 10, true)...)
	rec.AppendPart(square(2, 2, 2, false)...)
	require.Equal(t, []bool{false, false}, rec.ClassifyHoles())
}

func TestClassifyHolesRecomputedAfterMutation(t *testing.T) {
	rec := NewRecord(KindPolygon)
	rec.AppendPart(square(0, 0, 10, true)...)
	rec.AppendPart(square(2, 2, 2, false)...)
	require.Equal(t, []bool{false, true}, rec.ClassifyHoles())

	require.NoError(t, rec.DeletePart(0))
	require.Equal(t, []bool{false}, rec.ClassifyHoles())
}

func TestRayThroughVertex(t *testing.T) {
	// Diamond whose left and right vertices lie exactly on y=0.
	diamond := []Vertex{XY(-2, 0), XY(0, 2), XY(2, 0), XY(0, -2), XY(-2, 0)}
	require.True(t, pointInRing(0, 0, diamond))
	require.False(t, pointInRing(-3, 1.5, diamond))
	require.False(t, pointInRing(3, 0, diamond))
}

func TestContains(t *testing.T) {
	rec := NewRecord(KindPolygon)
	rec.AppendPart(square(0, 0, 10, true)...)

	in, err := rec.Contains(0, 5, 5)
	require.NoError(t, err)
	require.True(t, in)

	in, err = rec.Contains(0, 15, 5)
	require.NoError(t, err)
	require.False(t, in)

	_, err = rec.Contains(3, 0, 0)
	require.Error(t, err)
}

func TestHoleOwners(t *testing.T) {
	tests := []struct {
		name        string
		rings       [][]Vertex
		expect      []int
		description string
	}{
		{
			name:        "hole after its outer",
			rings:       [][]Vertex{square(0, 0, 10, true), square(2, 2, 2, false)},
			expect:      []int{-1, 0},
			description: "hole should belong to the ring before it",
		},
		{
			name: "hole after another outer",
			rings: [][]Vertex{
				square(0, 0, 10, true), square(20, 20, 10, true), square(2, 2, 2, false),
			},
			expect:      []int{-1, -1, 0},
			description: "hole should belong to the ring containing it, not the nearest one",
		},
		{
			name: "hole inside island",
			rings: [][]Vertex{
				square(0, 0, 10, true), square(1, 1, 8, false), square(2, 2, 6, true), square(3, 3, 1, false),
			},
			expect:      []int{-1, 0, -1, 2},
			description: "innermost container should own the hole",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(KindPolygon)
			for _, ring := range tt.rings {
				rec.AppendPart(ring...)
			}

			owners := rec.HoleOwners()
			if len(owners) != len(tt.expect) {
				t.Fatalf("%s: expected %d owners, got %d", tt.description, len(tt.expect), len(owners))
			}
			for i := range owners {
				if owners[i] != tt.expect[i] {
					t.Errorf("%s: part %d expected owner %d, got %d", tt.description, i, tt.expect[i], owners[i])
				}
			}
		})
	}
}

func TestDerivedReadsConcurrent(t *testing.T) {
	rec := NewRecord(KindPolygon)
	rec.AppendPart(square(0, 0, 10, true)...)
	rec.AppendPart(square(2, 2, 2, false)...)

	var wg sync.WaitGroup
	areas := make([]float64, 8)
	for i := range areas {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ring, _ := rec.Ring(1)
			_ = ring.IsHole()
			_, _ = rec.Centroid()
			areas[i] = rec.Area()
		}(i)
	}
	wg.Wait()

	for i, a := range areas {
		if a != 96 {
			t.Errorf("Expected area 96 from reader %d, got %g", i, a)
		}
	}
}
