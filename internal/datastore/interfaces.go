// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/errors"
)

// Interface abstracts the underlying database implementation and defines the
// operations the rest of the application may perform.
type Interface interface {
	Open() error
	Close() error

	SaveDetection(detection *Detection) error
	GetDetection(id string) (Detection, error)
	GetAllDetections() ([]Detection, error)
	GetRecentDetections(limit int) ([]Detection, error)
	DeleteDetection(id string) error
	DeleteAllDetections() (int64, error)
	CountDetections() (int64, error)

	SaveFeedback(feedback *Feedback) error
	GetFeedbackForDetection(detectionID string) ([]Feedback, error)

	SaveForumPost(post *ForumPost) error
	GetAllForumPosts() ([]ForumPost, error)

	SaveContactMessage(msg *ContactMessage) error

	// dashboard aggregation
	DetectionStats() ([]DiseaseCount, error)
	SeverityStats() ([]SeverityCount, error)
	DailyDetectionCounts(days int) ([]DailyCount, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	if settings.Output.SQLite.Enabled {
		return &SQLiteStore{Settings: settings}
	}
	return nil
}

// SaveDetection inserts a new detection row.
func (ds *DataStore) SaveDetection(detection *Detection) error {
	if err := ds.DB.Create(detection).Error; err != nil {
		return errors.New(fmt.Errorf("saving detection: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("disease", detection.Disease).
			Build()
	}
	return nil
}

// GetDetection retrieves a detection by its ID.
func (ds *DataStore) GetDetection(id string) (Detection, error) {
	detectionID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return Detection{}, errors.NotFoundError("detection", id)
	}

	var detection Detection
	if err := ds.DB.First(&detection, detectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Detection{}, errors.NotFoundError("detection", id)
		}
		return Detection{}, errors.New(fmt.Errorf("getting detection %s: %w", id, err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return detection, nil
}

// GetAllDetections retrieves all detections, newest first.
func (ds *DataStore) GetAllDetections() ([]Detection, error) {
	var detections []Detection
	if err := ds.DB.Order("created_at DESC, id DESC").Find(&detections).Error; err != nil {
		return nil, fmt.Errorf("error getting all detections: %w", err)
	}
	return detections, nil
}

// GetRecentDetections retrieves the most recent detections up to limit.
func (ds *DataStore) GetRecentDetections(limit int) ([]Detection, error) {
	var detections []Detection
	if err := ds.DB.Order("created_at DESC, id DESC").Limit(limit).Find(&detections).Error; err != nil {
		return nil, fmt.Errorf("error getting recent detections: %w", err)
	}
	return detections, nil
}

// DeleteDetection removes a detection row by ID. Returns a not-found error
// when the ID does not exist; the store is left unchanged in that case.
func (ds *DataStore) DeleteDetection(id string) error {
	detectionID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return errors.NotFoundError("detection", id)
	}

	result := ds.DB.Delete(&Detection{}, detectionID)
	if result.Error != nil {
		return errors.New(fmt.Errorf("deleting detection %s: %w", id, result.Error)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	if result.RowsAffected == 0 {
		return errors.NotFoundError("detection", id)
	}
	return nil
}

// DeleteAllDetections removes every detection row and returns the count of
// deleted rows. Used by the clear and populate commands.
func (ds *DataStore) DeleteAllDetections() (int64, error) {
	result := ds.DB.Where("1 = 1").Delete(&Detection{})
	if result.Error != nil {
		return 0, errors.New(fmt.Errorf("deleting all detections: %w", result.Error)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return result.RowsAffected, nil
}

// CountDetections returns the total number of detection rows.
func (ds *DataStore) CountDetections() (int64, error) {
	var count int64
	if err := ds.DB.Model(&Detection{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting detections: %w", err)
	}
	return count, nil
}

// SaveFeedback inserts a new feedback row.
func (ds *DataStore) SaveFeedback(feedback *Feedback) error {
	if err := ds.DB.Create(feedback).Error; err != nil {
		return errors.New(fmt.Errorf("saving feedback: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("detection_id", feedback.DetectionID).
			Build()
	}
	return nil
}

// GetFeedbackForDetection returns all feedback rows referencing a detection ID.
func (ds *DataStore) GetFeedbackForDetection(detectionID string) ([]Feedback, error) {
	var feedback []Feedback
	if err := ds.DB.Where("detection_id = ?", detectionID).Order("created_at DESC").Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("error getting feedback for detection %s: %w", detectionID, err)
	}
	return feedback, nil
}

// SaveForumPost inserts a new forum post.
func (ds *DataStore) SaveForumPost(post *ForumPost) error {
	if err := ds.DB.Create(post).Error; err != nil {
		return errors.New(fmt.Errorf("saving forum post: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// GetAllForumPosts retrieves all forum posts, newest first.
func (ds *DataStore) GetAllForumPosts() ([]ForumPost, error) {
	var posts []ForumPost
	if err := ds.DB.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("error getting forum posts: %w", err)
	}
	return posts, nil
}

// SaveContactMessage inserts a new contact message.
func (ds *DataStore) SaveContactMessage(msg *ContactMessage) error {
	if err := ds.DB.Create(msg).Error; err != nil {
		return errors.New(fmt.Errorf("saving contact message: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Detection{}, &Feedback{}, &ForumPost{}, &ContactMessage{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}

	return nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}
