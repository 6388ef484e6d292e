package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/riceguard/riceguard-go/internal/datastore"
	"github.com/riceguard/riceguard-go/internal/errors"
)

// FeedbackRequest is the payload of POST /feedback.
type FeedbackRequest struct {
	DetectionID string `json:"detection_id"`
	Rating      int    `json:"rating"`
	Comments    string `json:"comments"`
}

// HandleFeedback stores user feedback for a detection.
func (c *Controller) HandleFeedback(ctx echo.Context) error {
	var req FeedbackRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid feedback payload", http.StatusBadRequest)
	}

	if req.Rating < 1 || req.Rating > 5 {
		outOfRange := errors.Newf("rating %d out of range", req.Rating).
			Category(errors.CategoryValidation).
			Build()
		return c.HandleError(ctx, outOfRange,
			"Rating must be between 1 and 5", http.StatusBadRequest)
	}

	feedback := datastore.Feedback{
		DetectionID: strings.TrimSpace(req.DetectionID),
		Rating:      req.Rating,
		Comments:    strings.TrimSpace(req.Comments),
	}
	if err := c.DS.SaveFeedback(&feedback); err != nil {
		return c.HandleError(ctx, err, "Failed to save feedback", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{
		"message": "Feedback received",
		"id":      feedback.ID,
	})
}
