package api

import (
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/riceguard/riceguard-go/internal/datastore"
	"github.com/riceguard/riceguard-go/internal/errors"
	"github.com/riceguard/riceguard-go/internal/ricenet"
)

// maxUploadSize caps the accepted image payload at 5 MB.
const maxUploadSize = 5 << 20

// DetectionResult is the wire shape returned by POST /detect.
type DetectionResult struct {
	ID            uint     `json:"id,omitempty"`
	Disease       string   `json:"disease"`
	Confidence    float64  `json:"confidence"`
	Severity      string   `json:"severity"`
	Description   string   `json:"description"`
	Symptoms      []string `json:"symptoms"`
	Treatment     []string `json:"treatment"`
	Prevention    []string `json:"prevention"`
	OriginalImage string   `json:"original_image"`
	ResultImage   string   `json:"result_image,omitempty"`
	Saved         bool     `json:"saved"`
	Timestamp     string   `json:"timestamp"`
}

// HandleDetect accepts a multipart image upload, runs inference and returns
// the assessment. A failed database insert is reported via "saved": false
// rather than failing the request.
func (c *Controller) HandleDetect(ctx echo.Context) error {
	file, err := ctx.FormFile("image")
	if err != nil {
		return c.HandleError(ctx, err, "No image file provided", http.StatusBadRequest)
	}

	if file.Size > maxUploadSize {
		oversized := errors.Newf("upload of %d bytes exceeds limit", file.Size).
			Category(errors.CategoryValidation).
			Build()
		return c.HandleError(ctx, oversized,
			"Image exceeds the 5 MB size limit", http.StatusBadRequest)
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		unsupported := errors.Newf("unsupported content type %q", contentType).
			Category(errors.CategoryValidation).
			Build()
		return c.HandleError(ctx, unsupported,
			"Only image uploads are accepted", http.StatusBadRequest)
	}

	uploadPath, err := c.saveUpload(file)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to store uploaded image", http.StatusInternalServerError)
	}

	img, boxes, err := c.Detector.DetectFile(uploadPath)
	if err != nil {
		return c.HandleError(ctx, err, "Disease detection failed", http.StatusInternalServerError)
	}

	assessment := ricenet.Assess(boxes)
	info := ricenet.InfoFor(assessment.Disease)

	resultPath := ""
	if len(boxes) > 0 {
		base := filepath.Base(uploadPath)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		resultPath = filepath.Join(c.Settings.Output.Results, "result_"+base+".jpg")
		if err := ricenet.AnnotateToFile(img, boxes, resultPath); err != nil {
			c.logger.Warn("failed to write annotated image", "path", resultPath, "error", err)
			resultPath = ""
		}
	}

	now := time.Now()
	detection := datastore.Detection{
		Disease:    assessment.Disease,
		Confidence: round2(assessment.Confidence),
		Severity:   assessment.Severity,
		ImagePath:  uploadPath,
		ResultPath: resultPath,
		CreatedAt:  now,
	}

	saved := true
	if err := c.DS.SaveDetection(&detection); err != nil {
		c.logger.Warn("failed to persist detection", "disease", detection.Disease, "error", err)
		saved = false
	}

	result := DetectionResult{
		Disease:       assessment.Disease,
		Confidence:    round2(assessment.Confidence),
		Severity:      assessment.Severity,
		Description:   fmt.Sprintf("%s detected on rice leaf.", assessment.Disease),
		Symptoms:      info.Symptoms,
		Treatment:     info.Treatment,
		Prevention:    info.Prevention,
		OriginalImage: c.imageURL(uploadPath),
		ResultImage:   c.imageURL(resultPath),
		Saved:         saved,
		Timestamp:     now.Format(time.RFC3339),
	}
	if saved {
		result.ID = detection.ID
	}

	return ctx.JSON(http.StatusOK, result)
}

// saveUpload stores the multipart file under the uploads directory with a
// unique name, keeping the original extension when it looks like an image.
func (c *Controller) saveUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		ext = ".jpg"
	}

	if err := os.MkdirAll(c.Settings.Output.Uploads, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(c.Settings.Output.Uploads, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// imageURL maps a stored file path to the URL the static routes serve it
// under, relative to the configured output directories. Paths outside every
// configured directory yield "".
func (c *Controller) imageURL(path string) string {
	if path == "" {
		return ""
	}
	mounts := []struct{ route, dir string }{
		{"/uploads", c.Settings.Output.Uploads},
		{"/results", c.Settings.Output.Results},
		{"/reports", c.Settings.Output.Reports},
	}
	for _, m := range mounts {
		rel, err := filepath.Rel(m.dir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return m.route + "/" + filepath.ToSlash(rel)
	}
	return ""
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
