package ecolor

import(
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/noisesynth/pkg/emath"
)

// A Basis is the affine map from the decorrelated, range-normalized
// color space back into RGB:
//
//   rgb = Origin + u*Axes[0] + v*Axes[1] + w*Axes[2]
//
// Each axis is an eigenvector of the color covariance, scaled by the
// range of the image along it. These four vectors are what a renderer
// uploads as uniforms.
type Basis struct {
	Origin emath.Vec3
	Axes   [3]emath.Vec3
}

// NewBasis scales each (unit) eigenvector by its channel range, and
// builds the origin from the channel minimums.
func NewBasis(eigenvectors [3]emath.Vec3, mins, maxs emath.Vec3) Basis {
	b := Basis{}
	for c:=0; c<3; c++ {
		b.Origin = b.Origin.Add(eigenvectors[c].Scale(mins[c]))
		b.Axes[c] = eigenvectors[c].Scale(maxs[c] - mins[c])
	}
	return b
}

func (b Basis)ToRGB(uvw emath.Vec3) emath.Vec3 {
	rgb := b.Origin
	for c:=0; c<3; c++ {
		rgb = rgb.Add(b.Axes[c].Scale(uvw[c]))
	}
	return rgb
}

// Swatches returns the colors at the origin, and at the far end of
// each axis (Origin + Axes[i]), clamped into gamut. Handy for eyeballing
// what each decorrelated channel does.
func (b Basis)Swatches() []colorful.Color {
	toCol := func(v emath.Vec3) colorful.Color {
		return colorful.Color{R: v[0], G: v[1], B: v[2]}.Clamped()
	}

	ret := []colorful.Color{toCol(b.Origin)}
	for c:=0; c<3; c++ {
		ret = append(ret, toCol(b.Origin.Add(b.Axes[c])))
	}
	return ret
}

func (b Basis)String() string {
	str := fmt.Sprintf("origin %s\n", b.Origin)
	for c:=0; c<3; c++ {
		str += fmt.Sprintf("axis%d  %s\n", c, b.Axes[c])
	}
	return str
}
