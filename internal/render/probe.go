package render

import (
	"fmt"

	fitz "github.com/gen2brain/go-fitz"
)

// minimalPDF is a smallest-possible one-page document used to confirm the
// MuPDF shared library loads and can open a document.
var minimalPDF = []byte("%PDF-1.4\n" +
	"1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
	"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
	"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>endobj\n" +
	"xref\n0 4\n" +
	"0000000000 65535 f \n" +
	"0000000009 00000 n \n" +
	"0000000052 00000 n \n" +
	"0000000101 00000 n \n" +
	"trailer<</Size 4/Root 1 0 R>>\n" +
	"startxref\n164\n%%EOF\n")

// Probe checks that the rendering backend is usable in this environment.
// Called once at startup; a failure means every render attempt would fail
// and pages can only be carried through unmodified.
func Probe() error {
	doc, err := fitz.NewFromMemory(minimalPDF)
	if err != nil {
		return fmt.Errorf("mupdf unavailable: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() < 1 {
		return fmt.Errorf("mupdf probe document has no pages")
	}
	return nil
}
