package render

import (
	"context"
	"fmt"

	"github.com/hamzam170763/pdf-compressor/internal/config"
	"github.com/hamzam170763/pdf-compressor/internal/plan"
)

// Raster is one encoded page image.
type Raster struct {
	Data   []byte
	Format plan.RasterFormat
	Width  int
	Height int
}

// Renderer re-encodes one page of a document according to a plan.
// Implementations must be safe for concurrent use.
type Renderer interface {
	Name() string
	Render(ctx context.Context, pdfPath string, pageIndex int, p plan.CompressionPlan) (*Raster, error)
}

// Chain builds the renderer priority order for the configured method.
// The caller tries each renderer in turn and stops at the first success.
func Chain(cfg config.RenderConfig, method string) ([]Renderer, error) {
	primary := NewFitzRenderer(cfg.MaxRasterDim)
	fallback := NewFallbackRenderer(cfg.FallbackDPI, cfg.FallbackQuality, cfg.MaxRasterDim)

	switch method {
	case config.MethodAuto:
		return []Renderer{primary, fallback}, nil
	case config.MethodPrimary:
		return []Renderer{primary}, nil
	case config.MethodFallback:
		return []Renderer{fallback}, nil
	default:
		return nil, fmt.Errorf("unknown render method %q", method)
	}
}
