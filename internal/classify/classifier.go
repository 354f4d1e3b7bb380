package classify

import (
	"fmt"

	"github.com/hamzam170763/pdf-compressor/internal/config"
	"github.com/hamzam170763/pdf-compressor/internal/errs"
	"github.com/hamzam170763/pdf-compressor/internal/inspect"
)

// Kind is the content class of a page.
type Kind int

const (
	TextDominant Kind = iota
	ImageDominant
	Mixed
)

func (k Kind) String() string {
	switch k {
	case TextDominant:
		return "text"
	case ImageDominant:
		return "image"
	case Mixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// Classification is the derived, per-attempt view of a page's content.
type Classification struct {
	Kind       Kind
	TextRatio  float64
	ImageRatio float64
}

// Classify derives a page classification from observed content. It is a pure
// function of the page descriptor and thresholds. Malformed geometry (zero
// or negative page dimensions) is an InputError, never a guess.
func Classify(pc inspect.PageContent, cfg config.CompressionConfig) (Classification, error) {
	if pc.Width <= 0 || pc.Height <= 0 {
		return Classification{}, &errs.InputError{
			Path: fmt.Sprintf("page %d", pc.Index+1),
			Err:  fmt.Errorf("malformed page geometry %gx%g", pc.Width, pc.Height),
		}
	}

	pageArea := pc.Width * pc.Height

	var textArea, imageArea float64
	for _, r := range pc.TextRects {
		textArea += r.Area()
	}
	for _, r := range pc.ImageRects {
		imageArea += r.Area()
	}

	c := Classification{
		TextRatio:  clamp01(textArea / pageArea),
		ImageRatio: clamp01(imageArea / pageArea),
	}

	switch {
	case c.TextRatio >= cfg.TextRatioMin && c.ImageRatio < cfg.ImageRatioCeil:
		c.Kind = TextDominant
	case c.ImageRatio >= cfg.ImageRatioMin && c.TextRatio < cfg.TextRatioCeil:
		c.Kind = ImageDominant
	default:
		c.Kind = Mixed
	}

	return c, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
