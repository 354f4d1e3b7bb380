package inspect

import (
	"image"
	"image/color"
	"testing"
)

// binaryImage builds a white image with the given pixels set to black.
func binaryImage(w, h int, black []image.Point) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for _, p := range black {
		img.SetGray(p.X, p.Y, color.Gray{Y: 0})
	}
	return img
}

// blackBlock returns the points of a solid rectangle.
func blackBlock(x0, y0, w, h int) []image.Point {
	var pts []image.Point
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			pts = append(pts, image.Point{X: x, Y: y})
		}
	}
	return pts
}

func TestApplyThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.SetGray(0, 0, color.Gray{Y: 50})  // dark
	img.SetGray(1, 0, color.Gray{Y: 199}) // just under threshold
	img.SetGray(2, 0, color.Gray{Y: 230}) // light

	bin := applyThreshold(img, 200)

	if bin.GrayAt(0, 0).Y != 0 {
		t.Error("Expected dark pixel to become content")
	}
	if bin.GrayAt(1, 0).Y != 0 {
		t.Error("Expected pixel under threshold to become content")
	}
	if bin.GrayAt(2, 0).Y != 255 {
		t.Error("Expected light pixel to become background")
	}
}

func TestToGrayscale(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	rgba.Set(1, 0, color.RGBA{A: 255})

	gray := toGrayscale(rgba)
	if gray.GrayAt(0, 0).Y != 255 {
		t.Errorf("Expected white to stay white, got %d", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 0).Y != 0 {
		t.Errorf("Expected black to stay black, got %d", gray.GrayAt(1, 0).Y)
	}

	// A grayscale input comes back as-is.
	if got := toGrayscale(gray); got != gray {
		t.Error("Expected grayscale input to be returned unchanged")
	}
}

func TestFindConnectedComponents(t *testing.T) {
	// Two separated blocks, one above the noise floor and one below it.
	pts := append(blackBlock(2, 2, 5, 4), blackBlock(20, 10, 2, 2)...)
	img := binaryImage(40, 30, pts)

	comps := findConnectedComponents(img, 10)

	if len(comps) != 1 {
		t.Fatalf("Expected 1 component above the noise floor, got %d", len(comps))
	}
	c := comps[0]
	if c.PixelCount != 20 {
		t.Errorf("Expected 20 pixels, got %d", c.PixelCount)
	}
	if c.MinX != 2 || c.MinY != 2 || c.Width != 5 || c.Height != 4 {
		t.Errorf("Unexpected extent: min=(%d,%d) size=%dx%d", c.MinX, c.MinY, c.Width, c.Height)
	}
}

func TestFindConnectedComponentsMergesTouching(t *testing.T) {
	// Two blocks sharing an edge form one component.
	pts := append(blackBlock(0, 0, 3, 3), blackBlock(3, 0, 3, 3)...)
	img := binaryImage(10, 10, pts)

	comps := findConnectedComponents(img, 1)
	if len(comps) != 1 {
		t.Fatalf("Expected touching blocks to merge, got %d components", len(comps))
	}
	if comps[0].Width != 6 || comps[0].Height != 3 {
		t.Errorf("Expected merged extent 6x3, got %dx%d", comps[0].Width, comps[0].Height)
	}
}

func TestFindConnectedComponentsEmptyPage(t *testing.T) {
	img := binaryImage(20, 20, nil)
	if comps := findConnectedComponents(img, 1); len(comps) != 0 {
		t.Errorf("Expected no components on a blank page, got %d", len(comps))
	}
}
