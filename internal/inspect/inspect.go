package inspect

import (
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/config"
	"github.com/hamzam170763/pdf-compressor/internal/errs"
)

// Rect is an axis-aligned box in page points.
type Rect struct {
	X, Y, W, H float64
}

// Area returns the rectangle area in square points.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// PageContent describes what a single page carries, as observed by the
// analysis raster pass: regions that look like text runs, regions that look
// like embedded raster images, and the page geometry in points.
type PageContent struct {
	Index      int
	Width      float64
	Height     float64
	TextRects  []Rect
	ImageRects []Rect
}

// DocumentContent is the inspected view of a whole document.
type DocumentContent struct {
	Path  string
	Pages []PageContent
}

// Doc abstracts an open PDF document for inspection.
type Doc interface {
	NumPage() int
	Bound(pageIndex int) (image.Rectangle, error)
	ImageDPI(pageIndex int, dpi float64) (image.Image, error)
	Close() error
}

// Opener abstracts opening a PDF path into a Doc.
type Opener interface {
	Open(path string) (Doc, error)
}

// Inspector renders each page at a low analysis DPI, separates content from
// background, and buckets connected components into text-like and image-like
// regions by their physical size.
type Inspector struct {
	opener Opener
	cfg    config.AnalysisConfig
}

// New creates an Inspector backed by the default MuPDF opener.
func New(cfg config.AnalysisConfig) *Inspector {
	return NewWithOpener(cfg, fitzOpener{})
}

// NewWithOpener allows swapping the document backend, useful for tests.
func NewWithOpener(cfg config.AnalysisConfig, o Opener) *Inspector {
	return &Inspector{opener: o, cfg: cfg}
}

// Inspect opens the document at path and produces per-page content
// descriptors. Failure to open is an InputError; failure to analyze a single
// page degrades that page to an empty descriptor rather than failing the
// document.
func (ins *Inspector) Inspect(path string) (*DocumentContent, error) {
	doc, err := ins.opener.Open(path)
	if err != nil {
		return nil, &errs.InputError{Path: path, Err: fmt.Errorf("open document: %w", err)}
	}
	defer doc.Close()

	total := doc.NumPage()
	dc := &DocumentContent{Path: path, Pages: make([]PageContent, 0, total)}

	for i := 0; i < total; i++ {
		pc, err := ins.inspectPage(doc, i)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Int("page", i+1).Msg("page analysis failed; using empty descriptor")
			pc = PageContent{Index: i}
			if b, berr := doc.Bound(i); berr == nil {
				pc.Width = float64(b.Dx())
				pc.Height = float64(b.Dy())
			}
		}
		dc.Pages = append(dc.Pages, pc)
	}

	return dc, nil
}

func (ins *Inspector) inspectPage(doc Doc, idx int) (PageContent, error) {
	bound, err := doc.Bound(idx)
	if err != nil {
		return PageContent{}, fmt.Errorf("page bounds: %w", err)
	}

	pc := PageContent{
		Index:  idx,
		Width:  float64(bound.Dx()),
		Height: float64(bound.Dy()),
	}

	img, err := doc.ImageDPI(idx, ins.cfg.DPI)
	if err != nil {
		return PageContent{}, fmt.Errorf("analysis render: %w", err)
	}

	gray := toGrayscale(img)
	binary := applyThreshold(gray, ins.cfg.BinaryThreshold)
	components := findConnectedComponents(binary, ins.cfg.MinComponentPixels)

	// 1 inch = 2.54 cm; points are 1/72 inch.
	cmPerPixel := 2.54 / ins.cfg.DPI
	ptPerPixel := 72.0 / ins.cfg.DPI

	for _, comp := range components {
		rect := Rect{
			X: float64(comp.MinX) * ptPerPixel,
			Y: float64(comp.MinY) * ptPerPixel,
			W: float64(comp.Width) * ptPerPixel,
			H: float64(comp.Height) * ptPerPixel,
		}
		widthCM := float64(comp.Width) * cmPerPixel
		heightCM := float64(comp.Height) * cmPerPixel

		// Large solid blocks read as embedded images or figures; everything
		// smaller is treated as text runs or line art.
		if widthCM >= ins.cfg.MinImageSizeCM && heightCM >= ins.cfg.MinImageSizeCM {
			pc.ImageRects = append(pc.ImageRects, rect)
		} else {
			pc.TextRects = append(pc.TextRects, rect)
		}
	}

	log.Debug().
		Int("page", idx+1).
		Int("text_regions", len(pc.TextRects)).
		Int("image_regions", len(pc.ImageRects)).
		Msg("inspected page")

	return pc, nil
}
