package synth

import(
	"github.com/abworrall/noisesynth/pkg/emath"
)

// A LUT is a stack of inverse-CDF tables, one per channel, laid out as
// a 3 channel image: the x axis is the Gaussian quantile, the y axis is
// the mip level. Row 0 is the unfiltered table; row L is prefiltered
// for mip level L. A renderer uploads it with nearest filtering,
// clamp-to-edge and no mipmaps.
type LUT struct {
	*ImageBuffer
}

func NewLUT(width, levels int) LUT {
	return LUT{NewImageBuffer(width, levels, 3)}
}

func (l LUT)Levels() int { return l.Height() }

// Row copies out the table for one channel at one level.
func (l LUT)Row(channel, level int) []float64 {
	row := make([]float64, l.Width())
	for i := range row {
		row[i] = l.Pixel(i, level, channel)
	}
	return row
}

func (l LUT)SetRow(channel, level int, row []float64) {
	for i:=0; i<l.Width() && i<len(row); i++ {
		l.SetPixel(i, level, channel, row[i])
	}
}

// Sample does what the renderer's texture fetch does: nearest texel,
// clamped to the edges, on both axes.
func (l LUT)Sample(channel int, g float64, level int) float64 {
	x := emath.TexelIndex(g, l.Width())
	y := emath.ClampInt(level, 0, l.Levels()-1)
	return l.Pixel(x, y, channel)
}
