package ricenet

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greenLeaf(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 160, B: 60, A: 255})
		}
	}
	return img
}

func TestAnnotateDrawsBoxOutline(t *testing.T) {
	t.Parallel()

	src := greenLeaf(100, 100)
	boxes := []Box{{Rect: image.Rect(20, 20, 80, 80), Label: "Blight", Confidence: 0.9}}

	out := Annotate(src, boxes)

	// Top edge of the outline is painted, center of the box is not.
	r, g, b, _ := out.At(50, 21).RGBA()
	assert.Equal(t, boxColor, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255})

	_, cg, _, _ := out.At(50, 50).RGBA()
	assert.Equal(t, uint8(160), uint8(cg>>8))
}

func TestAnnotateLeavesSourceUntouched(t *testing.T) {
	t.Parallel()

	src := greenLeaf(64, 64)
	Annotate(src, []Box{{Rect: image.Rect(0, 0, 64, 64)}})

	_, g, _, _ := src.At(1, 1).RGBA()
	assert.Equal(t, uint8(160), uint8(g>>8))
}

func TestAnnotateToFileCreatesDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "results", "nested", "out.jpg")

	err := AnnotateToFile(greenLeaf(32, 32), nil, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestAnnotateClipsOutOfBoundsBoxes(t *testing.T) {
	t.Parallel()

	src := greenLeaf(40, 40)
	boxes := []Box{{Rect: image.Rect(-10, -10, 200, 200)}}

	assert.NotPanics(t, func() {
		Annotate(src, boxes)
	})
}
