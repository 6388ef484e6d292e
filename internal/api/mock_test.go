package api

import (
	"image"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/riceguard/riceguard-go/internal/chatbot"
	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/datastore"
	"github.com/riceguard/riceguard-go/internal/report"
	"github.com/riceguard/riceguard-go/internal/ricenet"
)

// MockDataStore is a testify mock of datastore.Interface.
type MockDataStore struct {
	mock.Mock
}

func (m *MockDataStore) Open() error  { return m.Called().Error(0) }
func (m *MockDataStore) Close() error { return m.Called().Error(0) }

func (m *MockDataStore) SaveDetection(detection *datastore.Detection) error {
	return m.Called(detection).Error(0)
}

func (m *MockDataStore) GetDetection(id string) (datastore.Detection, error) {
	args := m.Called(id)
	return args.Get(0).(datastore.Detection), args.Error(1)
}

func (m *MockDataStore) GetAllDetections() ([]datastore.Detection, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.Detection), args.Error(1)
}

func (m *MockDataStore) GetRecentDetections(limit int) ([]datastore.Detection, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.Detection), args.Error(1)
}

func (m *MockDataStore) DeleteDetection(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockDataStore) DeleteAllDetections() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataStore) CountDetections() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataStore) SaveFeedback(feedback *datastore.Feedback) error {
	return m.Called(feedback).Error(0)
}

func (m *MockDataStore) GetFeedbackForDetection(detectionID string) ([]datastore.Feedback, error) {
	args := m.Called(detectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.Feedback), args.Error(1)
}

func (m *MockDataStore) SaveForumPost(post *datastore.ForumPost) error {
	return m.Called(post).Error(0)
}

func (m *MockDataStore) GetAllForumPosts() ([]datastore.ForumPost, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.ForumPost), args.Error(1)
}

func (m *MockDataStore) SaveContactMessage(msg *datastore.ContactMessage) error {
	return m.Called(msg).Error(0)
}

func (m *MockDataStore) DetectionStats() ([]datastore.DiseaseCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.DiseaseCount), args.Error(1)
}

func (m *MockDataStore) SeverityStats() ([]datastore.SeverityCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.SeverityCount), args.Error(1)
}

func (m *MockDataStore) DailyDetectionCounts(days int) ([]datastore.DailyCount, error) {
	args := m.Called(days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.DailyCount), args.Error(1)
}

// stubDetector returns preconfigured boxes without a real model.
type stubDetector struct {
	boxes []ricenet.Box
	err   error
}

func (d *stubDetector) DetectFile(path string) (image.Image, []ricenet.Box, error) {
	if d.err != nil {
		return nil, nil, d.err
	}
	return image.NewRGBA(image.Rect(0, 0, 64, 64)), d.boxes, nil
}

// setupTestEnvironment wires a Controller with mocked dependencies and
// temp directories for uploads and reports.
func setupTestEnvironment(t *testing.T) (*echo.Echo, *MockDataStore, *Controller) {
	t.Helper()

	tempDir := t.TempDir()
	settings := &conf.Settings{}
	settings.Version = "test"
	settings.WebServer.Host = "127.0.0.1"
	settings.WebServer.Port = "0"
	settings.WebServer.AdminToken = "test-admin-token"
	settings.WebServer.RateLimit = 100
	settings.Output.Uploads = tempDir + "/uploads"
	settings.Output.Results = tempDir + "/uploads/results"
	settings.Output.Reports = tempDir + "/reports"
	settings.Output.Logs = tempDir + "/logs"

	e := echo.New()
	mockDS := new(MockDataStore)
	controller := New(e, mockDS, settings, &stubDetector{},
		chatbot.New(), report.New(settings.Output.Reports))
	t.Cleanup(func() { _ = controller.Shutdown() })

	return e, mockDS, controller
}
