package emath

import(
	"math"
	"path/filepath"
	"testing"
)

func gridOf(w, h int, vals ...float64) FloatGrid {
	g := NewFloatGrid(w, h)
	copy(g.values, vals)
	return g
}

func TestWindowVariance(t *testing.T) {
	// 4x2 grid: two 2x2 windows, one flat and one {0,1,0,1}
	g := gridOf(4, 2,
		0.5, 0.5, 0, 1,
		0.5, 0.5, 0, 1)

	if got := g.WindowVariance(1); got != 0 {
		t.Errorf("1x1 windows have no variance, got %g", got)
	}
	if got, want := g.WindowVariance(2), 0.125; math.Abs(got - want) > 1e-15 {
		t.Errorf("WindowVariance(2) = %g, want %g", got, want)
	}
	// One window covering the whole grid (clipped): mean 0.5, E[x^2]=0.375
	if got, want := g.WindowVariance(4), 0.125; math.Abs(got - want) > 1e-15 {
		t.Errorf("WindowVariance(4) = %g, want %g", got, want)
	}
}

func TestWindowVarianceClipsEdges(t *testing.T) {
	// 3x1 with window 2: windows {0,1} (var .25) and {1} (var 0)
	g := gridOf(3, 1, 0, 1, 1)
	if got, want := g.WindowVariance(2), 0.125; math.Abs(got - want) > 1e-15 {
		t.Errorf("WindowVariance(2) = %g, want %g", got, want)
	}
}

func TestMinMaxAndToImg(t *testing.T) {
	g := gridOf(2, 2, 0.25, -1, 3, 0)
	if min, max := g.MinMax(); min != -1 || max != 3 {
		t.Errorf("MinMax = %g,%g", min, max)
	}
	empty := FloatGrid{}
	if empty.Dy() != 0 {
		t.Errorf("empty grid Dy = %d", empty.Dy())
	}

	if err := g.ToImg("test", filepath.Join(t.TempDir(), "grid.png")); err != nil {
		t.Errorf("ToImg: %v", err)
	}
}
