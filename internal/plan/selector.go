package plan

import (
	"math"

	"github.com/hamzam170763/pdf-compressor/internal/classify"
	"github.com/hamzam170763/pdf-compressor/internal/config"
)

// RasterFormat is the output encoding for a rasterized page.
type RasterFormat int

const (
	PNG RasterFormat = iota
	JPEG
)

func (f RasterFormat) String() string {
	if f == PNG {
		return "png"
	}
	return "jpeg"
}

// Ext returns the conventional file extension for the format.
func (f RasterFormat) Ext() string {
	if f == PNG {
		return ".png"
	}
	return ".jpg"
}

// CompressionPlan is the rendering plan for one page. Produced fresh per
// page and never mutated after creation.
type CompressionPlan struct {
	TargetDPI int
	Format    RasterFormat
	Quality   int // 1-100, ignored for PNG
	Upscale   float64
}

const maxLossyQuality = 95

// Select maps a classification to a concrete plan. Total and deterministic:
// the same classification and configuration always yield the same plan.
//
// Text needs a dense sampling grid and a lossless format to stay crisp at
// small point sizes. Continuous-tone images tolerate lossy encoding and a
// coarser grid. Mixed content takes the lossy format at a higher quality
// factor, with a slight upscale to keep embedded text readable.
func Select(c classify.Classification, cfg config.CompressionConfig) CompressionPlan {
	switch c.Kind {
	case classify.TextDominant:
		if !cfg.PreserveText {
			return CompressionPlan{
				TargetDPI: cfg.DPI,
				Format:    JPEG,
				Quality:   capQuality(cfg.Quality + 15),
				Upscale:   1.0,
			}
		}
		dpi := cfg.DPI
		if dpi < 300 {
			dpi = 300
		}
		return CompressionPlan{
			TargetDPI: dpi,
			Format:    PNG,
			Quality:   100,
			Upscale:   1.0,
		}

	case classify.ImageDominant:
		return CompressionPlan{
			TargetDPI: int(math.Round(float64(cfg.DPI) * 0.67)),
			Format:    JPEG,
			Quality:   cfg.Quality,
			Upscale:   1.2,
		}

	default: // Mixed
		return CompressionPlan{
			TargetDPI: cfg.DPI,
			Format:    JPEG,
			Quality:   capQuality(cfg.Quality + 10),
			Upscale:   1.1,
		}
	}
}

func capQuality(q int) int {
	if q > maxLossyQuality {
		return maxLossyQuality
	}
	return q
}
