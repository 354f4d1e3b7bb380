package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"

	"github.com/hamzam170763/pdf-compressor/internal/plan"
)

// capDimensions downscales img so that neither side exceeds maxDim,
// preserving aspect ratio. Pathological pages with huge embedded images
// would otherwise produce unbounded rasters.
func capDimensions(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	var nw, nh uint
	if w >= h {
		nw = uint(maxDim)
	} else {
		nh = uint(maxDim)
	}
	return resize.Resize(nw, nh, img, resize.Lanczos3)
}

// encodeRaster encodes img into the requested format. PNG ignores quality.
func encodeRaster(img image.Image, format plan.RasterFormat, quality int) (*Raster, error) {
	var buf bytes.Buffer

	switch format {
	case plan.PNG:
		enc := &png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case plan.JPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown raster format %d", format)
	}

	b := img.Bounds()
	return &Raster{
		Data:   buf.Bytes(),
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}
