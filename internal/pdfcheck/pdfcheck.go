package pdfcheck

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// IsPDF reports whether the file at path is a PDF by magic bytes, not by
// filename.
func IsPDF(path string) (bool, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false, fmt.Errorf("detect file type: %w", err)
	}
	return mtype.Is("application/pdf"), nil
}

// PageCount returns the number of pages of the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("pdf page count failed: %w", err)
	}
	return n, nil
}

// Verify confirms the file at path is a readable PDF with exactly wantPages
// pages. Used on assembled output before it is moved into place.
func Verify(path string, wantPages int) error {
	n, err := PageCount(path)
	if err != nil {
		return err
	}
	if n != wantPages {
		return fmt.Errorf("page count mismatch: got %d, want %d", n, wantPages)
	}
	return nil
}
