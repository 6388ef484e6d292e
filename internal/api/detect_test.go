package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riceguard/riceguard-go/internal/datastore"
	"github.com/riceguard/riceguard-go/internal/errors"
	"github.com/riceguard/riceguard-go/internal/ricenet"
)

// buildMultipart assembles a multipart body with one "image" part.
func buildMultipart(t *testing.T, fieldName, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func performDetect(t *testing.T, controller *Controller, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/detect", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	ctx := controller.Echo.NewContext(req, rec)

	require.NoError(t, controller.HandleDetect(ctx))
	return rec
}

func TestHandleDetectDiseased(t *testing.T) {
	_, mockDS, controller := setupTestEnvironment(t)

	boxes := make([]ricenet.Box, 0, 8)
	for i := 0; i < 8; i++ {
		boxes = append(boxes, ricenet.Box{
			Rect:       image.Rect(i, i, i+20, i+20),
			Label:      "Brown Spot",
			Confidence: 0.50,
		})
	}
	boxes[0] = ricenet.Box{Rect: image.Rect(0, 0, 30, 30), Label: "Rice Blast", Confidence: 0.92}
	controller.Detector = &stubDetector{boxes: boxes}

	mockDS.On("SaveDetection", mock.AnythingOfType("*datastore.Detection")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*datastore.Detection).ID = 42
		}).
		Return(nil)

	body, contentType := buildMultipart(t, "image", "leaf.jpg", "image/jpeg", []byte("fake image bytes"))
	rec := performDetect(t, controller, body, contentType)

	require.Equal(t, http.StatusOK, rec.Code)

	var result DetectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Rice Blast", result.Disease)
	assert.InDelta(t, 92.0, result.Confidence, 0.001)
	assert.Equal(t, datastore.SeveritySevere, result.Severity)
	assert.True(t, result.Saved)
	assert.Equal(t, uint(42), result.ID)
	assert.NotEmpty(t, result.OriginalImage)
	assert.NotEmpty(t, result.ResultImage)
	assert.Contains(t, result.Symptoms, "Diamond-shaped lesions")

	mockDS.AssertExpectations(t)
}

func TestHandleDetectHealthy(t *testing.T) {
	_, mockDS, controller := setupTestEnvironment(t)
	controller.Detector = &stubDetector{boxes: nil}

	mockDS.On("SaveDetection", mock.AnythingOfType("*datastore.Detection")).Return(nil)

	body, contentType := buildMultipart(t, "image", "leaf.png", "image/png", []byte("fake"))
	rec := performDetect(t, controller, body, contentType)

	require.Equal(t, http.StatusOK, rec.Code)

	var result DetectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Healthy", result.Disease)
	assert.InDelta(t, 99.0, result.Confidence, 0.001)
	assert.Equal(t, datastore.SeverityNone, result.Severity)
	assert.Empty(t, result.Symptoms)
	assert.Empty(t, result.ResultImage)
}

func TestHandleDetectPersistenceFailureIsNonFatal(t *testing.T) {
	_, mockDS, controller := setupTestEnvironment(t)
	controller.Detector = &stubDetector{
		boxes: []ricenet.Box{{Rect: image.Rect(0, 0, 10, 10), Label: "Blight", Confidence: 0.8}},
	}

	dbErr := errors.Newf("disk full").Category(errors.CategoryDatabase).Build()
	mockDS.On("SaveDetection", mock.AnythingOfType("*datastore.Detection")).Return(dbErr)

	body, contentType := buildMultipart(t, "image", "leaf.jpg", "image/jpeg", []byte("fake"))
	rec := performDetect(t, controller, body, contentType)

	require.Equal(t, http.StatusOK, rec.Code)

	var result DetectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Saved)
	assert.Zero(t, result.ID)
	assert.Equal(t, "Blight", result.Disease)
}

func TestHandleDetectRejectsMissingFile(t *testing.T) {
	_, _, controller := setupTestEnvironment(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.Close())

	rec := performDetect(t, controller, body, writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusBadRequest, errResp.Code)
	assert.NotEmpty(t, errResp.CorrelationID)
}

func TestHandleDetectRejectsNonImageContentType(t *testing.T) {
	_, _, controller := setupTestEnvironment(t)

	body, contentType := buildMultipart(t, "image", "notes.txt", "text/plain", []byte("hello"))
	rec := performDetect(t, controller, body, contentType)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only image uploads are accepted")
}

func TestHandleDetectRejectsOversizedUpload(t *testing.T) {
	_, _, controller := setupTestEnvironment(t)

	payload := bytes.Repeat([]byte{0xAB}, maxUploadSize+1)
	body, contentType := buildMultipart(t, "image", "huge.jpg", "image/jpeg", payload)
	rec := performDetect(t, controller, body, contentType)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "5 MB")
}

func TestHandleDetectInferenceFailure(t *testing.T) {
	_, _, controller := setupTestEnvironment(t)
	controller.Detector = &stubDetector{
		err: errors.Newf("tensor invoke failed").Category(errors.CategoryInference).Build(),
	}

	body, contentType := buildMultipart(t, "image", "leaf.jpg", "image/jpeg", []byte("fake"))
	rec := performDetect(t, controller, body, contentType)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	// Internal detail must not leak to the client.
	assert.Equal(t, "Disease detection failed", errResp.Error)
}
