package ricenet

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for uploaded images
	_ "image/png"
	"os"
	"time"

	"github.com/nfnt/resize"
	tflite "github.com/tphakala/go-tflite"

	"github.com/riceguard/riceguard-go/internal/errors"
)

// Box is one model-reported bounding region with its class and confidence.
// Rect is expressed in original-image pixel coordinates.
type Box struct {
	Rect       image.Rectangle
	ClassID    int
	Label      string
	Confidence float64 // 0.0-1.0
}

// DetectFile decodes the image at path, runs inference and returns the
// decoded image together with all boxes above the configured confidence
// threshold.
func (rn *RiceNET) DetectFile(path string) (image.Image, []Box, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err).
			Component("ricenet").
			Category(errors.CategoryFileIO).
			FileContext(path, -1).
			Build()
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, nil, errors.New(fmt.Errorf("decoding image: %w", err)).
			Component("ricenet").
			Category(errors.CategoryImageDecode).
			FileContext(path, -1).
			Build()
	}

	boxes, err := rn.Detect(img)
	if err != nil {
		return nil, nil, err
	}
	return img, boxes, nil
}

// Detect runs inference on a decoded image. Calls serialize on the model
// mutex since the interpreter is not reentrant.
func (rn *RiceNET) Detect(img image.Image) ([]Box, error) {
	rn.mu.Lock()
	defer rn.mu.Unlock()

	if rn.interpreter == nil {
		return nil, errors.Newf("model is not initialized").
			Component("ricenet").
			Category(errors.CategoryInference).
			Build()
	}

	start := time.Now()

	inputTensor := rn.interpreter.GetInputTensor(0)
	if inputTensor == nil {
		return nil, fmt.Errorf("cannot get input tensor")
	}
	fillInputTensor(inputTensor.Float32s(), img, rn.Settings.RiceNET.InputSize)

	if status := rn.interpreter.Invoke(); status != tflite.OK {
		return nil, errors.Newf("tensor invoke failed: %v", status).
			Component("ricenet").
			Category(errors.CategoryInference).
			Timing("inference", time.Since(start)).
			Build()
	}

	boxes := rn.extractBoxes(img.Bounds())

	rn.logger.Debug("inference completed",
		"boxes", len(boxes),
		"duration_ms", time.Since(start).Milliseconds())

	return boxes, nil
}

// fillInputTensor resizes img to edge x edge and writes normalized RGB values
// in HWC order into the tensor buffer.
func fillInputTensor(dst []float32, img image.Image, edge int) {
	resized := resize.Resize(uint(edge), uint(edge), img, resize.Bilinear)

	i := 0
	bounds := resized.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if i+2 >= len(dst) {
				return
			}
			r, g, b, _ := resized.At(x, y).RGBA()
			dst[i] = float32(r>>8) / 255.0
			dst[i+1] = float32(g>>8) / 255.0
			dst[i+2] = float32(b>>8) / 255.0
			i += 3
		}
	}
}

// extractBoxes decodes the detection output tensors (boxes, classes, scores,
// count) into Box values scaled to the original image bounds, dropping boxes
// below the configured confidence threshold.
func (rn *RiceNET) extractBoxes(bounds image.Rectangle) []Box {
	locations := rn.interpreter.GetOutputTensor(0)
	classes := rn.interpreter.GetOutputTensor(1)
	scores := rn.interpreter.GetOutputTensor(2)
	countTensor := rn.interpreter.GetOutputTensor(3)
	if locations == nil || classes == nil || scores == nil || countTensor == nil {
		return nil
	}

	count := int(countTensor.Float32s()[0])
	coords := locations.Float32s()
	classIDs := classes.Float32s()
	confidences := scores.Float32s()

	width := float64(bounds.Dx())
	height := float64(bounds.Dy())
	threshold := rn.Settings.RiceNET.Threshold

	var boxes []Box
	for i := 0; i < count && i < len(confidences); i++ {
		confidence := float64(confidences[i])
		if confidence < threshold {
			continue
		}
		if (i+1)*4 > len(coords) || i >= len(classIDs) {
			break
		}

		// Output coordinates are normalized [ymin, xmin, ymax, xmax]
		yMin := clamp(float64(coords[i*4+0]), 0, 1) * height
		xMin := clamp(float64(coords[i*4+1]), 0, 1) * width
		yMax := clamp(float64(coords[i*4+2]), 0, 1) * height
		xMax := clamp(float64(coords[i*4+3]), 0, 1) * width

		classID := int(classIDs[i])
		boxes = append(boxes, Box{
			Rect:       image.Rect(int(xMin), int(yMin), int(xMax), int(yMax)),
			ClassID:    classID,
			Label:      rn.label(classID),
			Confidence: confidence,
		})
	}

	return boxes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
