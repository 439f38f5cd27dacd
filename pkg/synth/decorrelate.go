package synth

import(
	"fmt"
	"math"

	"github.com/abworrall/noisesynth/pkg/ecolor"
	"github.com/abworrall/noisesynth/pkg/emath"
)

// Decorrelation is the result of rotating an image's colors onto the
// principal axes of its color histogram, and normalizing each new
// channel into [0,1].
type Decorrelation struct {
	Image        *ImageBuffer  // the decorrelated, normalized pixels
	Basis        ecolor.Basis  // maps normalized (u,v,w) back to RGB
	Eigen        emath.Eigen   // of the color covariance matrix
	Covariance   emath.Mat3
	Mins, Maxs   emath.Vec3    // per channel range, before normalization
}

func (d Decorrelation)Eigenvector(c int) emath.Vec3 { return d.Eigen.Vectors.Column(c) }

// Decorrelate does the PCA. If a channel has (close to) zero range it
// can't be normalized; its values are set to 0, and a
// *DegenerateChannelError is returned alongside an otherwise complete
// result. Any other error means there is no result.
func Decorrelate(img *ImageBuffer, cfg Config) (Decorrelation, error) {
	d := Decorrelation{}

	if img.Channels() != 3 {
		return d, fmt.Errorf("decorrelate: %w (got %d)", ErrInvalidChannelCount, img.Channels())
	} else if img.NumPixels() == 0 {
		return d, fmt.Errorf("decorrelate: %w (%s)", ErrEmptyHistogram, img)
	}

	d.Covariance = covariance(img)
	d.Eigen = cfg.EigenSolver().Solve(d.Covariance)

	w, h := img.Width(), img.Height()
	out := NewImageBuffer(w, h, 3)

	// Rotate into eigenvector space; the rows of V^T are the eigenvectors
	rot := d.Eigen.Vectors.Transpose()
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			out.SetColorAt(x, y, rot.Apply(img.ColorAt(x, y)))
		}
	}

	// Ranges of the new color space
	d.Mins = emath.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	d.Maxs = emath.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			for c:=0; c<3; c++ {
				v := out.Pixel(x, y, c)
				d.Mins[c] = math.Min(d.Mins[c], v)
				d.Maxs[c] = math.Max(d.Maxs[c], v)
			}
		}
	}

	var degen *DegenerateChannelError
	for c:=0; c<3; c++ {
		if r := d.Maxs[c] - d.Mins[c]; r <= cfg.DegenerateRange {
			if degen == nil {
				degen = &DegenerateChannelError{}
			}
			degen.Channels = append(degen.Channels, c)
			degen.Ranges = append(degen.Ranges, r)
		}
	}

	// Remap into [0,1]
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			for c:=0; c<3; c++ {
				if degen != nil && degen.IsDegenerate(c) {
					out.SetPixel(x, y, c, 0.0)
					continue
				}
				v := (out.Pixel(x, y, c) - d.Mins[c]) / (d.Maxs[c] - d.Mins[c])
				out.SetPixel(x, y, c, v)
			}
		}
	}

	d.Image = out
	evs := [3]emath.Vec3{d.Eigenvector(0), d.Eigenvector(1), d.Eigenvector(2)}
	d.Basis = ecolor.NewBasis(evs, d.Mins, d.Maxs)

	if degen != nil {
		return d, degen
	}
	return d, nil
}

// covariance builds the RGB covariance matrix from the first and
// second raw moments, in a single pass.
func covariance(img *ImageBuffer) emath.Mat3 {
	var R, G, B, RR, GG, BB, RG, RB, GB float64
	for y:=0; y<img.Height(); y++ {
		for x:=0; x<img.Width(); x++ {
			col := img.ColorAt(x, y)
			R  += col[0]
			G  += col[1]
			B  += col[2]
			RR += col[0] * col[0]
			GG += col[1] * col[1]
			BB += col[2] * col[2]
			RG += col[0] * col[1]
			RB += col[0] * col[2]
			GB += col[1] * col[2]
		}
	}

	n := float64(img.NumPixels())
	R, G, B    = R/n, G/n, B/n
	RR, GG, BB = RR/n, GG/n, BB/n
	RG, RB, GB = RG/n, RB/n, GB/n

	return emath.Mat3{
		RR - R*R, RG - R*G, RB - R*B,
		RG - R*G, GG - G*G, GB - G*B,
		RB - R*B, GB - G*B, BB - B*B,
	}
}
