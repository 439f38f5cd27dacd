package synth

import(
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPipelineRun(t *testing.T) {
	img := testImage(64, 64)
	res, err := NewPipeline(NewConfig()).Run(img)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.LUT.Width() != 128 || res.LUT.Levels() != 6 {
		t.Errorf("LUT is %dx%d, want 128x6", res.LUT.Width(), res.LUT.Levels())
	}
	if res.Gaussianized.Width() != 64 || res.Gaussianized.Height() != 64 {
		t.Errorf("gaussianized image is %s", res.Gaussianized)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	for c:=0; c<3; c++ {
		checkRange(t, "lut", res.LUT.Row(c, 0), 0, 1)
		checkRange(t, "gaussianized", res.Gaussianized.ChannelValues(c), 0, 1)

		// Each channel of the Gaussianized image is its own, in pixel order
		gvals, _ := Gaussianize(res.Decorrelation.Image, c, NewConfig().Gaussian())
		if diff := cmp.Diff(gvals, res.Gaussianized.ChannelValues(c)); diff != "" {
			t.Errorf("ch%d gaussianized (-want +got):\n%s", c, diff)
		}
		if len(res.WindowVariances[c]) != 6 {
			t.Errorf("ch%d: %d window variances", c, len(res.WindowVariances[c]))
		}

		// The pipeline's rows are the ones the stages produce
		base, _ := BuildInverseCDF(res.Decorrelation.Image, c, 128, NewConfig().Gaussian())
		if diff := cmp.Diff(base, res.LUT.Row(c, 0)); diff != "" {
			t.Errorf("ch%d base row (-want +got):\n%s", c, diff)
		}
	}
}

func TestPipelineSerialMatchesParallel(t *testing.T) {
	img := testImage(32, 32)

	cfg := NewConfig()
	cfg.Parallel = true
	par, err := NewPipeline(cfg).Run(img)
	if err != nil {
		t.Fatal(err)
	}

	cfg.Parallel = false
	ser, err := NewPipeline(cfg).Run(img)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(ser.LUT.Data(), par.LUT.Data()); diff != "" {
		t.Errorf("LUT differs (-serial +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(ser.Gaussianized.Data(), par.Gaussianized.Data()); diff != "" {
		t.Errorf("gaussianized differs (-serial +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(ser.Basis, par.Basis); diff != "" {
		t.Errorf("basis differs (-serial +parallel):\n%s", diff)
	}
}

func TestPipelineLevels(t *testing.T) {
	tests := []struct{
		w, levels, want int
	}{
		{1, 0, 1},
		{2, 0, 1},
		{5, 0, 2},
		{16, 0, 4},
		{16, 2, 2},
	}

	for _, test := range tests {
		cfg := NewConfig()
		cfg.Levels = test.levels
		cfg.LUTWidth = 16
		res, err := NewPipeline(cfg).Run(testImage(test.w, 4))
		if err != nil {
			t.Errorf("w=%d: %v", test.w, err)
			continue
		}
		if got := res.LUT.Levels(); got != test.want {
			t.Errorf("w=%d, levels=%d: got %d LUT rows, want %d", test.w, test.levels, got, test.want)
		}
	}
}

func TestPipelineDegenerate(t *testing.T) {
	img := grayImage(16, 16)

	res, err := NewPipeline(NewConfig()).Run(img)
	if err != nil {
		t.Fatalf("non-strict run failed: %v", err)
	}
	if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], ErrDegenerateChannel) {
		t.Errorf("warnings: %v", res.Warnings)
	}
	for c:=1; c<3; c++ {
		for l:=0; l<res.LUT.Levels(); l++ {
			if diff := cmp.Diff(make([]float64, 128), res.LUT.Row(c, l)); diff != "" {
				t.Errorf("flat ch%d level %d (-want +got):\n%s", c, l, diff)
			}
		}
	}

	cfg := NewConfig()
	cfg.StrictDegenerate = true
	if _, err := NewPipeline(cfg).Run(img); !errors.Is(err, ErrDegenerateChannel) {
		t.Errorf("strict run: want ErrDegenerateChannel, got %v", err)
	}
}

func TestPipelineNoConvergence(t *testing.T) {
	cfg := NewConfig()
	cfg.EigenTolerance = 0
	cfg.EigenMaxSweeps = 1

	res, err := NewPipeline(cfg).Run(testImage(16, 16))
	if err != nil {
		t.Fatalf("non-convergence should be a warning, got %v", err)
	}
	found := false
	for _, w := range res.Warnings {
		found = found || errors.Is(w, ErrEigenNoConvergence)
	}
	if !found {
		t.Errorf("no ErrEigenNoConvergence in %v", res.Warnings)
	}
	if res.LUT.Levels() != 4 {
		t.Errorf("result incomplete: %d levels", res.LUT.Levels())
	}
}

func TestPipelineErrors(t *testing.T) {
	if _, err := NewPipeline(NewConfig()).Run(NewImageBuffer(4, 4, 1)); !errors.Is(err, ErrInvalidChannelCount) {
		t.Errorf("1 channel: got %v", err)
	}
	if _, err := NewPipeline(NewConfig()).Run(NewImageBuffer(0, 0, 3)); !errors.Is(err, ErrEmptyHistogram) {
		t.Errorf("empty: got %v", err)
	}

	cfg := NewConfig()
	cfg.LUTWidth = 0
	if _, err := NewPipeline(cfg).Run(testImage(4, 4)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("bad config: got %v", err)
	}
}

func TestLUTSample(t *testing.T) {
	l := NewLUT(4, 2)
	l.SetRow(1, 0, []float64{0.1, 0.2, 0.3, 0.4})
	l.SetRow(1, 1, []float64{0.5, 0.6, 0.7, 0.8})

	tests := []struct{
		g     float64
		level int
		want  float64
	}{
		{0.0, 0, 0.1},
		{0.3, 0, 0.2},
		{0.99, 0, 0.4},
		{1.0, 0, 0.4},   // clamp to edge
		{-0.5, 0, 0.1},
		{0.6, 1, 0.7},
		{0.6, 7, 0.7},   // level clamps too
	}
	for _, test := range tests {
		if got := l.Sample(1, test.g, test.level); got != test.want {
			t.Errorf("Sample(%g, %d) = %g, want %g", test.g, test.level, got, test.want)
		}
	}
}
