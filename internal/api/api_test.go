package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerWritesRotatingLogFile(t *testing.T) {
	_, _, controller := setupTestEnvironment(t)

	req := httptest.NewRequest(http.MethodPost, "/chatbot", http.NoBody)
	rec := httptest.NewRecorder()
	ctx := controller.Echo.NewContext(req, rec)

	// A malformed request goes through HandleError, which logs to the
	// per-service file.
	require.NoError(t, controller.HandleChatbot(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, controller.Shutdown())

	logPath := filepath.Join(controller.Settings.Output.Logs, "web.log")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service":"api"`)
	assert.Contains(t, string(data), "correlation_id")
}

func TestImageURL(t *testing.T) {
	_, _, controller := setupTestEnvironment(t)

	uploads := controller.Settings.Output.Uploads
	results := controller.Settings.Output.Results
	reports := controller.Settings.Output.Reports

	assert.Equal(t, "/uploads/leaf.jpg",
		controller.imageURL(filepath.Join(uploads, "leaf.jpg")))
	assert.Equal(t, "/uploads/results/result_leaf.jpg",
		controller.imageURL(filepath.Join(results, "result_leaf.jpg")))
	assert.Equal(t, "/reports/report_1.pdf",
		controller.imageURL(filepath.Join(reports, "report_1.pdf")))

	// Paths outside every configured directory are not served.
	assert.Empty(t, controller.imageURL("/etc/passwd"))
	assert.Empty(t, controller.imageURL(filepath.Dir(uploads)))
	assert.Empty(t, controller.imageURL(""))
}

func TestImageURLSeparateResultsDir(t *testing.T) {
	_, _, controller := setupTestEnvironment(t)
	controller.Settings.Output.Results = filepath.Join(t.TempDir(), "annotated")

	got := controller.imageURL(filepath.Join(controller.Settings.Output.Results, "r.jpg"))
	assert.Equal(t, "/results/r.jpg", got)
}
