package render

import (
	"context"
	"fmt"

	fitz "github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/errs"
	"github.com/hamzam170763/pdf-compressor/internal/plan"
)

// FitzRenderer rasterizes pages with MuPDF at the plan's sampling density
// and encodes the result in the plan's format. Each call opens the document
// independently; fitz documents are not safe for concurrent use, per-call
// handles are.
type FitzRenderer struct {
	maxDim int
}

// NewFitzRenderer creates the primary renderer. maxDim caps the longer side
// of the produced raster in pixels.
func NewFitzRenderer(maxDim int) *FitzRenderer {
	return &FitzRenderer{maxDim: maxDim}
}

func (r *FitzRenderer) Name() string { return "mupdf" }

func (r *FitzRenderer) Render(ctx context.Context, pdfPath string, pageIndex int, p plan.CompressionPlan) (*Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, &errs.RenderError{Backend: r.Name(), Page: pageIndex + 1, Err: fmt.Errorf("open: %w", err)}
	}
	defer doc.Close()

	dpi := float64(p.TargetDPI) * p.Upscale
	img, err := doc.ImageDPI(pageIndex, dpi)
	if err != nil {
		return nil, &errs.RenderError{Backend: r.Name(), Page: pageIndex + 1, Err: fmt.Errorf("render at %.0f dpi: %w", dpi, err)}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	capped := capDimensions(img, r.maxDim)

	out, err := encodeRaster(capped, p.Format, p.Quality)
	if err != nil {
		return nil, &errs.RenderError{Backend: r.Name(), Page: pageIndex + 1, Err: err}
	}

	log.Debug().
		Int("page", pageIndex+1).
		Str("format", p.Format.String()).
		Float64("dpi", dpi).
		Int("width", out.Width).
		Int("height", out.Height).
		Int("bytes", len(out.Data)).
		Msg("rendered page")

	return out, nil
}
