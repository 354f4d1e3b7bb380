package plan

import (
	"testing"

	"github.com/hamzam170763/pdf-compressor/internal/classify"
	"github.com/hamzam170763/pdf-compressor/internal/config"
)

func TestSelect(t *testing.T) {
	cfg := config.CompressionConfig{
		Quality:      80,
		DPI:          300,
		PreserveText: true,
	}

	tests := []struct {
		name string
		kind classify.Kind
		want CompressionPlan
	}{
		{
			name: "text page stays lossless at full density",
			kind: classify.TextDominant,
			want: CompressionPlan{TargetDPI: 300, Format: PNG, Quality: 100, Upscale: 1.0},
		},
		{
			name: "image page drops density and goes lossy",
			kind: classify.ImageDominant,
			want: CompressionPlan{TargetDPI: 201, Format: JPEG, Quality: 80, Upscale: 1.2},
		},
		{
			name: "mixed page keeps density at boosted quality",
			kind: classify.Mixed,
			want: CompressionPlan{TargetDPI: 300, Format: JPEG, Quality: 90, Upscale: 1.1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(classify.Classification{Kind: tt.kind}, cfg)
			if got != tt.want {
				t.Errorf("Select() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelectTextDPIFloor(t *testing.T) {
	cfg := config.CompressionConfig{Quality: 80, DPI: 150, PreserveText: true}
	got := Select(classify.Classification{Kind: classify.TextDominant}, cfg)
	if got.TargetDPI != 300 {
		t.Errorf("Expected text DPI floored to 300, got %d", got.TargetDPI)
	}
	if got.Format != PNG {
		t.Errorf("Expected PNG for preserved text, got %s", got.Format)
	}
}

func TestSelectPreserveTextDisabled(t *testing.T) {
	cfg := config.CompressionConfig{Quality: 80, DPI: 200, PreserveText: false}
	got := Select(classify.Classification{Kind: classify.TextDominant}, cfg)
	want := CompressionPlan{TargetDPI: 200, Format: JPEG, Quality: 95, Upscale: 1.0}
	if got != want {
		t.Errorf("Select() = %+v, want %+v", got, want)
	}
}

func TestSelectQualityCap(t *testing.T) {
	tests := []struct {
		name    string
		kind    classify.Kind
		quality int
		want    int
	}{
		{"mixed boost capped", classify.Mixed, 90, 95},
		{"mixed boost under cap", classify.Mixed, 80, 90},
		{"text override capped", classify.TextDominant, 92, 95},
		{"image quality unmodified", classify.ImageDominant, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.CompressionConfig{Quality: tt.quality, DPI: 300, PreserveText: false}
			got := Select(classify.Classification{Kind: tt.kind}, cfg)
			if got.Quality != tt.want {
				t.Errorf("Expected quality %d, got %d", tt.want, got.Quality)
			}
		})
	}
}

func TestSelectImageDPIRounding(t *testing.T) {
	tests := []struct {
		dpi  int
		want int
	}{
		{300, 201},
		{150, 101},
		{100, 67},
		{72, 48},
	}
	for _, tt := range tests {
		cfg := config.CompressionConfig{Quality: 80, DPI: tt.dpi, PreserveText: true}
		got := Select(classify.Classification{Kind: classify.ImageDominant}, cfg)
		if got.TargetDPI != tt.want {
			t.Errorf("DPI %d: expected target %d, got %d", tt.dpi, tt.want, got.TargetDPI)
		}
	}
}

func TestSelectDeterministic(t *testing.T) {
	cfg := config.CompressionConfig{Quality: 75, DPI: 300, PreserveText: true}
	c := classify.Classification{Kind: classify.Mixed, TextRatio: 0.4, ImageRatio: 0.4}
	first := Select(c, cfg)
	for i := 0; i < 10; i++ {
		if got := Select(c, cfg); got != first {
			t.Fatalf("Select is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestRasterFormat(t *testing.T) {
	if PNG.String() != "png" || JPEG.String() != "jpeg" {
		t.Errorf("Unexpected format names: %s, %s", PNG, JPEG)
	}
	if PNG.Ext() != ".png" || JPEG.Ext() != ".jpg" {
		t.Errorf("Unexpected extensions: %s, %s", PNG.Ext(), JPEG.Ext())
	}
}
