package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A FloatGrid is a grid of floats, with some operations. The synth
// package uses it to hold a single channel of an image.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Values() []float64       { return fg.values }

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

// WindowVariance cuts the grid into non-overlapping windows of
// size x size, works out the variance E[x^2]-E[x]^2 (floored at zero)
// inside each one, and returns the average over all windows. Windows
// on the right/bottom edge are clipped to the grid, and averaged over
// the pixels they actually hold.
func (fg *FloatGrid)WindowVariance(size int) float64 {
	width, height := fg.Dx(), fg.Dy()
	if size < 1 || width == 0 || height == 0 {
		return 0.0
	}

	total, nWindows := 0.0, 0
	for wy:=0; wy<height; wy+=size {
		for wx:=0; wx<width; wx+=size {
			v, v2, n := 0.0, 0.0, 0
			for y:=wy; y<wy+size && y<height; y++ {
				for x:=wx; x<wx+size && x<width; x++ {
					val := fg.Get(x, y)
					v  += val
					v2 += val*val
					n++
				}
			}
			v  /= float64(n)
			v2 /= float64(n)
			total += math.Max(0.0, v2 - v*v)
			nWindows++
		}
	}

	return total / float64(nWindows)
}

// MinMax returns the smallest and largest values; for an empty grid both are zero.
func (fg *FloatGrid)MinMax() (float64, float64) {
	if len(fg.values) == 0 {
		return 0.0, 0.0
	}
	min, max := fg.values[0], fg.values[0]
	for i:=1 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return min, max
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := fg.MinMax()
	span := max - min
	if span == 0 {
		span = 1.0
	}

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			lum := fg.Get(x,y)
			gray := GammaExpand_F64 ((lum - min) / span)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0,0)
	dc.DrawString(title, 10, 20)
	return dc.SavePNG(filename)
}
