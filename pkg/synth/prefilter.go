package synth

import(
	"fmt"
	"math"

	"github.com/abworrall/noisesynth/pkg/emath"
)

// When a texture is viewed at a coarser mip level, the averaging inside
// each texel lowers its variance, so looking up the level 0 table gives
// the wrong histogram. Instead we prefilter the table for each level,
// blurring it by the variance that level has lost.

// lodAverageSubpixelVariance is the average variance inside the
// 2^lod x 2^lod windows of a channel grid.
func lodAverageSubpixelVariance(grid *emath.FloatGrid, lod int) float64 {
	return grid.WindowVariance(1 << uint(lod))
}

// FilterLUTValueAt integrates the base row against a Gaussian
// N(x, std^2), using `samples` evenly spaced quantiles. With std == 0
// the Gaussian is a delta, and this is just the lookup at x.
func FilterLUTValueAt(base []float64, x, std float64, samples int) float64 {
	width := len(base)
	if std <= 0 {
		return base[emath.TexelIndex(x, width)]
	}

	sum := 0.0
	for s:=0; s<samples; s++ {
		u := (float64(s) + 0.5) / float64(samples)
		sampleX := emath.InvCDF(u, x, std)
		sum += base[emath.TexelIndex(sampleX, width)]
	}
	return sum / float64(samples)
}

// Prefilter expands the base row of one channel into `levels` rows.
// Row 0 is the base row itself; row L is blurred by the average
// variance of the 2^L x 2^L windows of the (decorrelated) source image.
// Returns the per level window variances too (entry 0 is always 0).
func Prefilter(base []float64, img *ImageBuffer, channel, levels, samples int) ([][]float64, []float64, error) {
	switch {
	case len(base) == 0:
		return nil, nil, fmt.Errorf("prefilter ch%d: %w", channel, ErrEmptyHistogram)
	case channel < 0 || channel >= img.Channels():
		return nil, nil, fmt.Errorf("prefilter: %w (%d of %d)", ErrInvalidChannel, channel, img.Channels())
	case levels < 1 || samples < 1:
		return nil, nil, fmt.Errorf("prefilter ch%d: %w: levels=%d, samples=%d", channel, ErrInvalidConfig, levels, samples)
	}

	width := len(base)
	rows := make([][]float64, levels)
	variances := make([]float64, levels)

	rows[0] = append([]float64{}, base...)

	grid := img.Channel(channel)
	for lod:=1; lod<levels; lod++ {
		variances[lod] = lodAverageSubpixelVariance(&grid, lod)
		std := math.Sqrt(variances[lod])

		rows[lod] = make([]float64, width)
		for i:=0; i<width; i++ {
			x := (float64(i) + 0.5) / float64(width)
			rows[lod][i] = FilterLUTValueAt(base, x, std, samples)
		}
	}

	return rows, variances, nil
}
