package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/riceguard/riceguard-go/internal/datastore"
	"github.com/riceguard/riceguard-go/internal/errors"
)

// ContactRequest is the payload of POST /contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// HandleContact persists a contact-form message.
func (c *Controller) HandleContact(ctx echo.Context) error {
	var req ContactRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid contact payload", http.StatusBadRequest)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.HandleError(ctx, errors.ValidationError("missing contact fields"),
			"name, email and message are required", http.StatusBadRequest)
	}
	if !strings.Contains(req.Email, "@") {
		badEmail := errors.Newf("invalid email %q", req.Email).
			Category(errors.CategoryValidation).
			Build()
		return c.HandleError(ctx, badEmail,
			"A valid email address is required", http.StatusBadRequest)
	}

	msg := datastore.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := c.DS.SaveContactMessage(&msg); err != nil {
		return c.HandleError(ctx, err, "Failed to save contact message", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{
		"message": "Thank you for contacting us",
		"id":      msg.ID,
	})
}
