package ricenet

import "github.com/riceguard/riceguard-go/internal/datastore"

// Assessment is the aggregated verdict for one analyzed image.
type Assessment struct {
	Disease    string  `json:"disease"`
	Confidence float64 `json:"confidence"` // percentage, 0-100
	Severity   string  `json:"severity"`
	BoxCount   int     `json:"box_count"`
}

// Assess reduces a set of detection boxes to a single assessment.
//
// The reported disease is the class of the highest-confidence box, and
// severity scales with the number of affected regions. An image with no
// detections above threshold is considered healthy.
func Assess(boxes []Box) Assessment {
	if len(boxes) == 0 {
		return Assessment{
			Disease:    "Healthy",
			Confidence: 99.0,
			Severity:   datastore.SeverityNone,
			BoxCount:   0,
		}
	}

	best := boxes[0]
	for _, box := range boxes[1:] {
		if box.Confidence > best.Confidence {
			best = box
		}
	}

	return Assessment{
		Disease:    best.Label,
		Confidence: best.Confidence * 100.0,
		Severity:   severityForCount(len(boxes)),
		BoxCount:   len(boxes),
	}
}

// severityForCount maps the number of detected regions to a severity level.
func severityForCount(count int) string {
	switch {
	case count >= 7:
		return datastore.SeveritySevere
	case count >= 3:
		return datastore.SeverityModerate
	default:
		return datastore.SeverityMild
	}
}
