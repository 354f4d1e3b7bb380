package inspect

import (
	"image"
	"image/color"
)

// Component is a connected region of content pixels.
type Component struct {
	MinX       int
	MinY       int
	MaxX       int
	MaxY       int
	Width      int
	Height     int
	PixelCount int
}

// toGrayscale reduces the analysis raster to one channel. Region detection
// only needs luminance.
func toGrayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	return gray
}

// applyThreshold splits the page into content (0) and background (255).
// Anything darker than threshold counts as content.
func applyThreshold(img *image.Gray, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	binary := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y < threshold {
				binary.SetGray(x, y, color.Gray{Y: 0})
			} else {
				binary.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	return binary
}

// findConnectedComponents groups 4-connected content pixels into regions.
// Anything under minPixels is noise (scanner specks, stray dots) and is
// dropped before bucketing.
func findConnectedComponents(img *image.Gray, minPixels int) []Component {
	bounds := img.Bounds()
	visited := make([][]bool, bounds.Dy())
	for i := range visited {
		visited[i] = make([]bool, bounds.Dx())
	}

	var components []Component

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if visited[y-bounds.Min.Y][x-bounds.Min.X] || img.GrayAt(x, y).Y == 255 {
				continue
			}

			comp := floodFill(img, visited, x, y, bounds)

			if comp.PixelCount >= minPixels {
				components = append(components, comp)
			}
		}
	}

	return components
}

// floodFill walks one region with an explicit stack; a full-page component
// would blow the goroutine stack if done recursively.
func floodFill(img *image.Gray, visited [][]bool, startX, startY int, bounds image.Rectangle) Component {
	comp := Component{
		MinX: startX,
		MinY: startY,
		MaxX: startX,
		MaxY: startY,
	}

	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := p.X, p.Y

		if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		if visited[y-bounds.Min.Y][x-bounds.Min.X] || img.GrayAt(x, y).Y == 255 {
			continue
		}

		visited[y-bounds.Min.Y][x-bounds.Min.X] = true
		comp.PixelCount++

		if x < comp.MinX {
			comp.MinX = x
		}
		if x > comp.MaxX {
			comp.MaxX = x
		}
		if y < comp.MinY {
			comp.MinY = y
		}
		if y > comp.MaxY {
			comp.MaxY = y
		}

		stack = append(stack,
			image.Point{X: x + 1, Y: y},
			image.Point{X: x - 1, Y: y},
			image.Point{X: x, Y: y + 1},
			image.Point{X: x, Y: y - 1},
		)
	}

	comp.Width = comp.MaxX - comp.MinX + 1
	comp.Height = comp.MaxY - comp.MinY + 1

	return comp
}
