package synth

import(
	"fmt"
	"math"
	"sort"

	"github.com/abworrall/noisesynth/pkg/emath"
)

// BuildInverseCDF builds the "T-inverse" LUT row for one channel of
// the image, doing histogram specification against the Gaussian `g`:
// texel i holds the image value whose rank matches the Gaussian
// quantile at (i+0.5)/lutWidth. So feeding Gaussian noise through
// the row yields values distributed like the image channel. The row
// is non-decreasing, since it indexes a sorted copy of the pixels.
func BuildInverseCDF(img *ImageBuffer, channel, lutWidth int, g emath.Gaussian) ([]float64, error) {
	if channel < 0 || channel >= img.Channels() {
		return nil, fmt.Errorf("inverse CDF: %w (%d of %d)", ErrInvalidChannel, channel, img.Channels())
	} else if img.NumPixels() == 0 {
		return nil, fmt.Errorf("inverse CDF ch%d: %w", channel, ErrEmptyHistogram)
	} else if lutWidth < 1 {
		return nil, fmt.Errorf("inverse CDF ch%d: %w: lut width %d", channel, ErrInvalidConfig, lutWidth)
	}

	sorted := img.ChannelValues(channel)
	sort.Float64s(sorted)

	n := len(sorted)
	row := make([]float64, lutWidth)
	for i:=0; i<lutWidth; i++ {
		gVal := (float64(i) + 0.5) / float64(lutWidth)  // Gaussian value in [0,1]
		u := g.CDF(gVal)                                // its quantile
		index := emath.ClampInt(int(math.Floor(u * float64(n))), 0, n-1)
		row[i] = sorted[index]
	}

	return row, nil
}

// Gaussianize is the forward transform T: it replaces every pixel in
// the channel by the Gaussian value with the same rank, so the output
// has a Gaussian histogram but the same spatial structure. Ties are
// ranked by pixel order. Values are clamped to [0,1], the domain of
// the LUT. Returns the values in pixel order.
func Gaussianize(img *ImageBuffer, channel int, g emath.Gaussian) ([]float64, error) {
	if channel < 0 || channel >= img.Channels() {
		return nil, fmt.Errorf("gaussianize: %w (%d of %d)", ErrInvalidChannel, channel, img.Channels())
	} else if img.NumPixels() == 0 {
		return nil, fmt.Errorf("gaussianize ch%d: %w", channel, ErrEmptyHistogram)
	}

	vals := img.ChannelValues(channel)
	n := len(vals)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return vals[order[i]] < vals[order[j]] })

	out := make([]float64, n)
	for rank, pix := range order {
		u := (float64(rank) + 0.5) / float64(n)
		out[pix] = emath.Clamp(g.InvCDF(u), 0.0, 1.0)
	}

	return out, nil
}
