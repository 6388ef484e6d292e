// model.go this code defines the data model for the application
package datastore

import "time"

// Severity buckets derived from detection box counts.
const (
	SeverityNone     = "None"
	SeverityMild     = "Mild"
	SeverityModerate = "Moderate"
	SeveritySevere   = "Severe"
)

// Detection represents a single inference result tied to one uploaded image.
// Rows are never mutated; deletion cascades to best-effort removal of the
// two image files.
type Detection struct {
	ID         uint    `gorm:"primaryKey"`
	Disease    string  `gorm:"index:idx_detections_disease"`
	Confidence float64 // percentage, 0-100
	Severity   string  `gorm:"index:idx_detections_severity"`
	ImagePath  string  // original uploaded image
	ResultPath string  // annotated image, empty when no boxes were found
	CreatedAt  time.Time `gorm:"index:idx_detections_created_at"`
}

// Feedback represents a user rating of a detection. The detection reference
// is loose: feedback survives deletion of its detection.
type Feedback struct {
	ID          uint   `gorm:"primaryKey"`
	DetectionID string `gorm:"index:idx_feedback_detection_id"`
	Rating      int
	Comments    string `gorm:"type:text"`
	CreatedAt   time.Time
}

// ForumPost represents one entry in the append-only community forum.
type ForumPost struct {
	ID        uint   `gorm:"primaryKey"`
	User      string
	Title     string
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
}

// ContactMessage represents a message submitted through the contact form.
type ContactMessage struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string
	Email     string
	Message   string `gorm:"type:text"`
	CreatedAt time.Time
}
