package synth

import(
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/codahale/hdrhistogram"
	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/noisesynth/pkg/emath"
)

const reportScale = 1000000.0 // values in [0,1] are recorded as integer millionths

var reportPercentiles = []float64{1, 25, 50, 75, 99}

// A ChannelReport summarizes how one decorrelated channel came out.
type ChannelReport struct {
	Eigenvalue      float64
	Range           float64
	Percentiles     []float64  // of the decorrelated values, at reportPercentiles
	RowVariances    []float64  // variance across texels of each LUT row
	WindowVariances []float64  // the blur variance used for each LUT row
	KSDistance      float64    // between the channel, and LUT(Gaussianized channel)
	OutOfRange      int        // values outside [0,1] (clamped) or NaN (skipped)

	Buckets         histogram.Histogram  // coarse histogram of the decorrelated values
}

// A Report is a quality check on a Result, for humans.
type Report struct {
	Channels [3]ChannelReport
	Swatches []string
	Warnings []string
}

func NewReport(res *Result) Report {
	r := Report{}
	dec := res.Decorrelation

	for _, sw := range res.Basis.Swatches() {
		r.Swatches = append(r.Swatches, sw.Hex())
	}
	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}

	for c:=0; c<3; c++ {
		cr := ChannelReport{
			Eigenvalue:      dec.Eigen.Values[c],
			Range:           dec.Maxs[c] - dec.Mins[c],
			WindowVariances: res.WindowVariances[c],
		}

		vals := dec.Image.ChannelValues(c)
		cr.addValues(vals)

		for l:=0; l<res.LUT.Levels(); l++ {
			cr.RowVariances = append(cr.RowVariances, stat.Variance(res.LUT.Row(c, l), nil))
		}

		cr.KSDistance = RoundTripKS(res.LUT, c, vals, res.Gaussianized.ChannelValues(c))

		r.Channels[c] = cr
	}

	return r
}

// addValues fills in the percentiles and buckets. Values outside [0,1]
// are clamped into it and NaNs skipped; both are counted in OutOfRange.
func (cr *ChannelReport)addValues(vals []float64) {
	h := hdrhistogram.New(1, int64(reportScale), 3)
	cr.Buckets = histogram.Histogram{NumBuckets:20, ValMin:0, ValMax:100}
	for _, v := range vals {
		if math.IsNaN(v) || v < 0 || v > 1 {
			cr.OutOfRange++
			if math.IsNaN(v) {
				continue
			}
			v = emath.Clamp(v, 0.0, 1.0)
		}
		if err := h.RecordValue(int64(math.Round(v * reportScale))); err != nil {
			log.Printf("Report: dropped %g: %v\n", v, err)
		}
		cr.Buckets.Add(histogram.ScalarVal(int(v * 99.999)))
	}

	cr.Percentiles = nil
	for _, p := range reportPercentiles {
		cr.Percentiles = append(cr.Percentiles, float64(h.ValueAtQuantile(p)) / reportScale)
	}
}

// RoundTripKS pushes the Gaussianized values back through the level 0
// LUT, and returns the Kolmogorov-Smirnov distance between that and the
// original values. Small is good: the LUT reproduces the histogram.
func RoundTripKS(l LUT, channel int, orig, gaussianized []float64) float64 {
	if len(orig) == 0 || len(gaussianized) == 0 {
		return 0.0
	}

	a := append([]float64{}, orig...)
	b := make([]float64, len(gaussianized))
	for i, g := range gaussianized {
		b[i] = l.Sample(channel, g, 0)
	}
	sort.Float64s(a)
	sort.Float64s(b)

	return stat.KolmogorovSmirnov(a, nil, b, nil)
}

func (r Report)String() string {
	str := "Report[\n"
	str += fmt.Sprintf("  swatches (origin, axis ends): %v\n", r.Swatches)
	for c, cr := range r.Channels {
		str += fmt.Sprintf("  ch%d: eigenvalue %.6g, range %.6g, KS %.4f\n", c, cr.Eigenvalue, cr.Range, cr.KSDistance)
		str += fmt.Sprintf("       percentiles %v: %.4f\n", reportPercentiles, cr.Percentiles)
		if cr.OutOfRange > 0 {
			str += fmt.Sprintf("       %d values outside [0,1]\n", cr.OutOfRange)
		}
		for l:=range cr.RowVariances {
			str += fmt.Sprintf("       level %2d: window var %.6f, LUT row var %.6f\n", l, cr.WindowVariances[l], cr.RowVariances[l])
		}
	}
	for _, w := range r.Warnings {
		str += fmt.Sprintf("  warning: %s\n", w)
	}
	return str + "]\n"
}

// Histograms dumps the coarse per channel histograms (verbose output).
func (r Report)Histograms() string {
	str := ""
	for c, cr := range r.Channels {
		str += fmt.Sprintf("ch%d: %v\n", c, cr.Buckets)
	}
	return str
}
