package synth

import(
	"math"
	"testing"

	"github.com/abworrall/noisesynth/pkg/emath"
)

// xorshift64; deterministic across platforms, unlike math/rand's sources
type testRand uint64

func (r *testRand)Float64() float64 {
	x := uint64(*r)
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*r = testRand(x)
	return float64(x>>11) / float64(1<<53)
}

// testImage is a smooth, correlated RGB pattern plus some noise, with
// every channel in [0,1].
func testImage(w, h int) *ImageBuffer {
	rnd := testRand(1)
	ib := NewImageBuffer(w, h, 3)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			n1, n2, n3 := rnd.Float64(), rnd.Float64(), rnd.Float64()
			r := emath.Clamp(0.5 + 0.3*math.Sin(float64(x)/5.0)*math.Cos(float64(y)/7.0) + 0.15*(n1-0.5), 0, 1)
			g := emath.Clamp(0.8*r + 0.1*n2, 0, 1)
			b := emath.Clamp(0.2 + 0.3*n3 + 0.3*r, 0, 1)
			ib.SetColorAt(x, y, emath.Vec3{r, g, b})
		}
	}
	return ib
}

// solidImage is every pixel the same color
func solidImage(w, h int, col emath.Vec3) *ImageBuffer {
	ib := NewImageBuffer(w, h, 3)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			ib.SetColorAt(x, y, col)
		}
	}
	return ib
}

// grayImage is a gradient with R=G=B
func grayImage(w, h int) *ImageBuffer {
	ib := NewImageBuffer(w, h, 3)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			v := float64(y*w+x) / float64(w*h-1)
			ib.SetColorAt(x, y, emath.Vec3{v, v, v})
		}
	}
	return ib
}

func checkRange(t *testing.T, name string, vals []float64, min, max float64) {
	t.Helper()
	for i, v := range vals {
		if math.IsNaN(v) || v < min || v > max {
			t.Fatalf("%s[%d] = %g, outside [%g,%g]", name, i, v, min, max)
		}
	}
}
