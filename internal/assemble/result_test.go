package assemble

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/hamzam170763/pdf-compressor/internal/config"
)

func TestCompressionResultRatio(t *testing.T) {
	tests := []struct {
		name       string
		original   int64
		compressed int64
		want       float64
	}{
		{"halved", 1000, 500, 0.5},
		{"no change", 1000, 1000, 0},
		{"grew", 1000, 1500, -0.5},
		{"zero original", 0, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &CompressionResult{OriginalBytes: tt.original, CompressedBytes: tt.compressed}
			if got := r.Ratio(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ratio() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestCompressionResultSavedBytes(t *testing.T) {
	r := &CompressionResult{OriginalBytes: 1000, CompressedBytes: 1200}
	if got := r.SavedBytes(); got != -200 {
		t.Errorf("Expected -200 for grown output, got %d", got)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSuccess, "success"},
		{StatusSkipped, "skipped"},
		{StatusFailed, "failed"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	cfg := config.Config{}
	cfg.Paths.OutputDir = "out"
	cfg.Paths.OutputSuffix = "_compressed"
	a := New(cfg, nil, nil)

	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", filepath.Join("out", "report_compressed.pdf")},
		{filepath.Join("docs", "scan.PDF"), filepath.Join("out", "scan_compressed.PDF")},
		{"no_ext", filepath.Join("out", "no_ext_compressed")},
	}

	for _, tt := range tests {
		if got := a.OutputPath(tt.in); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
