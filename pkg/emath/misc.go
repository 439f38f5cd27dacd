package emath

import "math"

// Some functions that only operate on basic types, that are useful

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

func ClampInt(v, min, max int) int {
	if v < min { return min }
	if v > max { return max }
	return v
}

func Clamp(f, min, max float64) float64 {
	if f < min { return min }
	if f > max { return max }
	return f
}

// TexelIndex maps a position in [0,1] onto one of `width` texels, the
// same way a nearest-filtered, clamp-to-edge texture fetch would.
func TexelIndex(pos float64, width int) int {
	f := math.Floor(pos * float64(width))
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > float64(width-1) {
		return width-1
	}
	return int(f)
}

// Log2Floor returns floor(log2(n)) for n >= 1, and 0 otherwise.
func Log2Floor(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

func IsPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }
