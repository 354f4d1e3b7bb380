package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/hamzam170763/pdf-compressor/internal/assemble"
)

func TestRunSummaryAdd(t *testing.T) {
	s := &RunSummary{}

	s.Add(&assemble.CompressionResult{
		InputPath:       "a.pdf",
		OutputPath:      "out/a_compressed.pdf",
		OriginalBytes:   1000,
		CompressedBytes: 400,
		Status:          assemble.StatusSuccess,
	})
	s.Add(&assemble.CompressionResult{
		InputPath:       "b.pdf",
		OutputPath:      "out/b_compressed.pdf",
		OriginalBytes:   2000,
		CompressedBytes: 1100,
		Status:          assemble.StatusSuccess,
	})
	s.Add(&assemble.CompressionResult{
		InputPath:   "c.pdf",
		Status:      assemble.StatusSkipped,
		ErrorDetail: "not a valid PDF",
	})
	s.Add(&assemble.CompressionResult{
		InputPath:     "d.pdf",
		OriginalBytes: 500,
		Status:        assemble.StatusFailed,
		ErrorDetail:   "render failed",
	})

	if s.FilesProcessed != 4 {
		t.Errorf("Expected 4 processed, got %d", s.FilesProcessed)
	}
	if s.FilesSucceeded != 2 || s.FilesSkipped != 1 || s.FilesFailed != 1 {
		t.Errorf("Unexpected counts: succeeded=%d skipped=%d failed=%d",
			s.FilesSucceeded, s.FilesSkipped, s.FilesFailed)
	}

	// Failed and skipped documents must not pollute the size totals.
	if s.TotalOriginalBytes != 3000 {
		t.Errorf("Expected total original 3000, got %d", s.TotalOriginalBytes)
	}
	if s.TotalCompressedBytes != 1500 {
		t.Errorf("Expected total compressed 1500, got %d", s.TotalCompressedBytes)
	}
	if got := s.SpaceSaved(); got != 1500 {
		t.Errorf("Expected 1500 bytes saved, got %d", got)
	}
	if got := s.OverallRatio(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected overall ratio 0.5, got %g", got)
	}
}

func TestOverallRatioEmptyRun(t *testing.T) {
	s := &RunSummary{}
	if got := s.OverallRatio(); got != 0 {
		t.Errorf("Expected 0 ratio for empty run, got %g", got)
	}
}

func TestPrintNotesGrownOutput(t *testing.T) {
	s := &RunSummary{}
	s.Add(&assemble.CompressionResult{
		InputPath:       "scan.pdf",
		OutputPath:      "out/scan_compressed.pdf",
		OriginalBytes:   1000,
		CompressedBytes: 1200,
		Status:          assemble.StatusSuccess,
	})

	var buf bytes.Buffer
	Print(&buf, s)
	out := buf.String()

	if !strings.Contains(out, "Note: Compressed file is not smaller (quality preserved)") {
		t.Error("Expected a note for output that did not shrink")
	}
	if !strings.Contains(out, "COMPRESSION SUMMARY") {
		t.Error("Expected the summary block")
	}
	if !strings.Contains(out, "Successfully compressed: 1") {
		t.Errorf("Expected success count line, got:\n%s", out)
	}
}

func TestPrintFailureDetail(t *testing.T) {
	s := &RunSummary{}
	s.Add(&assemble.CompressionResult{
		InputPath:   "broken.pdf",
		Status:      assemble.StatusFailed,
		ErrorDetail: "page 3: render failed",
	})

	var buf bytes.Buffer
	Print(&buf, s)
	out := buf.String()

	if !strings.Contains(out, "broken.pdf: failed") {
		t.Errorf("Expected per-file status line, got:\n%s", out)
	}
	if !strings.Contains(out, "page 3: render failed") {
		t.Errorf("Expected the failure detail, got:\n%s", out)
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "auto", 80, 300, true, "compressed_pdfs")
	out := buf.String()

	for _, want := range []string{
		"Output directory: compressed_pdfs",
		"Method: auto",
		"JPEG Quality: 80%",
		"DPI: 300",
		"Text preservation: Enabled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Banner missing %q:\n%s", want, out)
		}
	}
}

func TestFormatMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00 MB"},
		{1048576, "1.00 MB"},
		{1572864, "1.50 MB"},
	}
	for _, tt := range tests {
		if got := formatMB(tt.bytes); got != tt.want {
			t.Errorf("formatMB(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
