package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	fitz "github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/errs"
	"github.com/hamzam170763/pdf-compressor/internal/plan"
)

// FallbackRenderer is the reduced-capability re-encoder: fixed conservative
// DPI, fixed JPEG quality, grayscale. It ignores the plan's sampling and
// format choices, trading fidelity for robustness on pages the primary path
// cannot handle.
type FallbackRenderer struct {
	dpi     int
	quality int
	maxDim  int
}

// NewFallbackRenderer creates the fallback renderer.
func NewFallbackRenderer(dpi, quality, maxDim int) *FallbackRenderer {
	return &FallbackRenderer{dpi: dpi, quality: quality, maxDim: maxDim}
}

func (r *FallbackRenderer) Name() string { return "fallback" }

func (r *FallbackRenderer) Render(ctx context.Context, pdfPath string, pageIndex int, _ plan.CompressionPlan) (*Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, &errs.RenderError{Backend: r.Name(), Page: pageIndex + 1, Err: fmt.Errorf("open: %w", err)}
	}
	defer doc.Close()

	img, err := doc.ImageDPI(pageIndex, float64(r.dpi))
	if err != nil {
		return nil, &errs.RenderError{Backend: r.Name(), Page: pageIndex + 1, Err: fmt.Errorf("render at %d dpi: %w", r.dpi, err)}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, img.Bounds(), img, image.Point{}, draw.Src)

	capped := capDimensions(gray, r.maxDim)

	out, err := encodeRaster(capped, plan.JPEG, r.quality)
	if err != nil {
		return nil, &errs.RenderError{Backend: r.Name(), Page: pageIndex + 1, Err: err}
	}

	log.Debug().
		Int("page", pageIndex+1).
		Int("dpi", r.dpi).
		Int("quality", r.quality).
		Int("bytes", len(out.Data)).
		Msg("fallback rendered page")

	return out, nil
}
