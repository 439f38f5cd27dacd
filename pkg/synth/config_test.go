package synth

import(
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigYaml(t *testing.T) {
	cfg := NewConfig()
	cfg.LUTWidth = 64
	cfg.ResizeTo = 256
	cfg.StrictDegenerate = true

	got, err := NewConfigFromYaml([]byte(cfg.AsYaml()))
	if err != nil {
		t.Fatalf("NewConfigFromYaml: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("yaml round trip (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(filename, []byte("lutwidth: 32\nverbosity: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(filename)
	if err != nil {
		t.Fatal(err)
	}
	// Unset fields keep their defaults
	want := NewConfig()
	want.LUTWidth = 32
	want.Verbosity = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct{
		name string
		mod  func(*Config)
	}{
		{"lutwidth", func(c *Config) { c.LUTWidth = 0 }},
		{"std", func(c *Config) { c.GaussianStd = 0 }},
		{"samples", func(c *Config) { c.FilterSamples = -1 }},
		{"levels", func(c *Config) { c.Levels = -2 }},
		{"sweeps", func(c *Config) { c.EigenMaxSweeps = 0 }},
		{"tolerance", func(c *Config) { c.EigenTolerance = -1 }},
		{"degenerate", func(c *Config) { c.DegenerateRange = -1 }},
		{"resize", func(c *Config) { c.ResizeTo = 100 }},
	}

	if err := NewConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	for _, test := range tests {
		cfg := NewConfig()
		test.mod(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: want ErrInvalidConfig, got %v", test.name, err)
		}
	}

	if _, err := NewConfigFromYaml([]byte("lutwidth: -4\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("yaml with bad values: got %v", err)
	}
}

func TestConfigDerived(t *testing.T) {
	cfg := NewConfig()
	if got := cfg.NumFilterSamples(); got != 256 {
		t.Errorf("NumFilterSamples = %d, want 256", got)
	}
	cfg.FilterSamples = 10
	if got := cfg.NumFilterSamples(); got != 10 {
		t.Errorf("NumFilterSamples = %d, want 10", got)
	}

	if got := cfg.NumLevels(256); got != 8 {
		t.Errorf("NumLevels(256) = %d", got)
	}
	if got := cfg.NumLevels(0); got != 1 {
		t.Errorf("NumLevels(0) = %d", got)
	}

	if js := cfg.EigenSolver(); js.Tolerance != 1e-12 || js.MaxSweeps != 50 {
		t.Errorf("EigenSolver = %+v", js)
	}
}
