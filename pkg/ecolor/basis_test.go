package ecolor

import(
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/abworrall/noisesynth/pkg/emath"
)

func TestBasisRoundTrip(t *testing.T) {
	evs := [3]emath.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	b := NewBasis(evs, emath.Vec3{0.1, 0.2, 0.3}, emath.Vec3{0.5, 0.2, 0.9})

	if diff := cmp.Diff(emath.Vec3{0.1, 0.2, 0.3}, b.Origin); diff != "" {
		t.Errorf("origin (-want +got):\n%s", diff)
	}
	// A zero range channel keeps its (constant) value in the origin
	if diff := cmp.Diff(emath.Vec3{}, b.Axes[1]); diff != "" {
		t.Errorf("degenerate axis (-want +got):\n%s", diff)
	}

	got := b.ToRGB(emath.Vec3{0.5, 0.0, 1.0})
	want := emath.Vec3{0.3, 0.2, 0.9}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("ToRGB (-want +got):\n%s", diff)
	}
}

func TestSwatches(t *testing.T) {
	evs := [3]emath.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	b := NewBasis(evs, emath.Vec3{0, 0, 0}, emath.Vec3{1, 2, 1})
	sw := b.Swatches()
	if len(sw) != 4 {
		t.Fatalf("got %d swatches, want 4", len(sw))
	}
	wantHex := []string{"#000000", "#ff0000", "#00ff00", "#0000ff"}
	for i, c := range sw {
		if c.Hex() != wantHex[i] {
			t.Errorf("swatch %d = %s, want %s", i, c.Hex(), wantHex[i])
		}
	}
}
