package ricenet

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/riceguard/riceguard-go/internal/errors"
)

var boxColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}

const boxThickness = 3

// Annotate returns a copy of img with every detection box outlined.
func Annotate(img image.Image, boxes []Box) image.Image {
	annotated := image.NewRGBA(img.Bounds())
	draw.Draw(annotated, annotated.Bounds(), img, img.Bounds().Min, draw.Src)

	for _, box := range boxes {
		drawRectOutline(annotated, box.Rect, boxColor, boxThickness)
	}
	return annotated
}

// AnnotateToFile draws the boxes and writes the result as JPEG to path,
// creating parent directories as needed.
func AnnotateToFile(img image.Image, boxes []Box, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err).
			Component("ricenet").
			Category(errors.CategoryFileIO).
			FileContext(path, -1).
			Build()
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err).
			Component("ricenet").
			Category(errors.CategoryFileIO).
			FileContext(path, -1).
			Build()
	}
	defer out.Close()

	if err := jpeg.Encode(out, Annotate(img, boxes), &jpeg.Options{Quality: 90}); err != nil {
		return errors.Wrap(err).
			Component("ricenet").
			Category(errors.CategoryFileIO).
			FileContext(path, -1).
			Build()
	}
	return nil
}

// drawRectOutline paints the four edges of rect, clipped to the image bounds.
func drawRectOutline(dst *image.RGBA, rect image.Rectangle, c color.Color, thickness int) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}

	fill := func(r image.Rectangle) {
		r = r.Intersect(dst.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				dst.Set(x, y, c)
			}
		}
	}

	fill(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thickness))
	fill(image.Rect(rect.Min.X, rect.Max.Y-thickness, rect.Max.X, rect.Max.Y))
	fill(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thickness, rect.Max.Y))
	fill(image.Rect(rect.Max.X-thickness, rect.Min.Y, rect.Max.X, rect.Max.Y))
}
