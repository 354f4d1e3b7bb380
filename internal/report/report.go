package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hamzam170763/pdf-compressor/internal/assemble"
)

// FileReport is the per-document slice of the run report.
type FileReport struct {
	InputPath       string
	OutputPath      string
	OriginalBytes   int64
	CompressedBytes int64
	Ratio           float64
	Status          string
	Detail          string
}

// RunSummary aggregates one batch run. All fields are exposed as structured
// data; textual formatting is a presentation concern.
type RunSummary struct {
	RunID                string
	OutputDir            string
	FilesProcessed       int
	FilesSucceeded       int
	FilesSkipped         int
	FilesFailed          int
	TotalOriginalBytes   int64
	TotalCompressedBytes int64
	Files                []FileReport
}

// Add folds one document result into the summary.
func (s *RunSummary) Add(r *assemble.CompressionResult) {
	fr := FileReport{
		InputPath:       r.InputPath,
		OutputPath:      r.OutputPath,
		OriginalBytes:   r.OriginalBytes,
		CompressedBytes: r.CompressedBytes,
		Ratio:           r.Ratio(),
		Status:          r.Status.String(),
		Detail:          r.ErrorDetail,
	}
	s.Files = append(s.Files, fr)
	s.FilesProcessed++

	switch r.Status {
	case assemble.StatusSuccess:
		s.FilesSucceeded++
		s.TotalOriginalBytes += r.OriginalBytes
		s.TotalCompressedBytes += r.CompressedBytes
	case assemble.StatusSkipped:
		s.FilesSkipped++
	case assemble.StatusFailed:
		s.FilesFailed++
	}
}

// OverallRatio is the fraction of space saved across successful documents.
func (s *RunSummary) OverallRatio() float64 {
	if s.TotalOriginalBytes <= 0 {
		return 0
	}
	return 1 - float64(s.TotalCompressedBytes)/float64(s.TotalOriginalBytes)
}

// SpaceSaved is the absolute saving across successful documents.
func (s *RunSummary) SpaceSaved() int64 {
	return s.TotalOriginalBytes - s.TotalCompressedBytes
}

func formatMB(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}

// PrintBanner writes the effective settings header before a run.
func PrintBanner(w io.Writer, method string, quality, dpi int, preserveText bool, outputDir string) {
	fmt.Fprintln(w, "PDF Compressor - High Quality Compression to Separate Directory")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Output directory: %s\n", outputDir)
	fmt.Fprintln(w, "Compression settings:")
	fmt.Fprintf(w, "  - Method: %s\n", method)
	fmt.Fprintf(w, "  - JPEG Quality: %d%%\n", quality)
	fmt.Fprintf(w, "  - DPI: %d\n", dpi)
	fmt.Fprintf(w, "  - Text preservation: %s\n", onOff(preserveText))
	fmt.Fprintln(w)
}

// Print writes the per-file lines and the aggregate summary.
func Print(w io.Writer, s *RunSummary) {
	for _, f := range s.Files {
		fmt.Fprintf(w, "%s: %s\n", f.InputPath, f.Status)
		switch f.Status {
		case "success":
			fmt.Fprintf(w, "  Original size: %s\n", formatMB(f.OriginalBytes))
			fmt.Fprintf(w, "  Compressed size: %s\n", formatMB(f.CompressedBytes))
			fmt.Fprintf(w, "  Compression ratio: %.1f%%\n", f.Ratio*100)
			fmt.Fprintf(w, "  Saved to: %s\n", f.OutputPath)
			if f.CompressedBytes >= f.OriginalBytes {
				fmt.Fprintln(w, "  Note: Compressed file is not smaller (quality preserved)")
			}
		default:
			if f.Detail != "" {
				fmt.Fprintf(w, "  %s\n", f.Detail)
			}
		}
		fmt.Fprintln(w)
	}

	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "COMPRESSION SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Files processed: %d\n", s.FilesProcessed)
	fmt.Fprintf(w, "Successfully compressed: %d\n", s.FilesSucceeded)
	fmt.Fprintf(w, "Skipped: %d, failed: %d\n", s.FilesSkipped, s.FilesFailed)
	fmt.Fprintf(w, "Output directory: %s\n", s.OutputDir)
	fmt.Fprintf(w, "Total original size: %s\n", formatMB(s.TotalOriginalBytes))
	fmt.Fprintf(w, "Total compressed size: %s\n", formatMB(s.TotalCompressedBytes))
	if s.TotalOriginalBytes > 0 {
		fmt.Fprintf(w, "Overall compression: %.1f%%\n", s.OverallRatio()*100)
		fmt.Fprintf(w, "Space saved: %s\n", formatMB(s.SpaceSaved()))
	}
}

func onOff(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
