package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/riceguard/riceguard-go/internal/datastore"
	"github.com/riceguard/riceguard-go/internal/errors"
)

// ForumPostRequest is the payload of POST /forum.
type ForumPostRequest struct {
	User    string `json:"user"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ForumPostEntry is one post in the GET /forum response.
type ForumPostEntry struct {
	ID        uint   `json:"id"`
	User      string `json:"user"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// HandleForumList returns all forum posts, newest first.
func (c *Controller) HandleForumList(ctx echo.Context) error {
	posts, err := c.DS.GetAllForumPosts()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to load forum posts", http.StatusInternalServerError)
	}

	entries := make([]ForumPostEntry, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		entries = append(entries, ForumPostEntry{
			ID:        p.ID,
			User:      p.User,
			Title:     p.Title,
			Content:   p.Content,
			Timestamp: p.CreatedAt.Format(time.RFC3339),
		})
	}

	return ctx.JSON(http.StatusOK, entries)
}

// HandleForumPost appends a new forum post.
func (c *Controller) HandleForumPost(ctx echo.Context) error {
	var req ForumPostRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid forum payload", http.StatusBadRequest)
	}

	req.User = strings.TrimSpace(req.User)
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.User == "" || req.Title == "" || req.Content == "" {
		return c.HandleError(ctx, errors.ValidationError("missing forum fields"),
			"user, title and content are required", http.StatusBadRequest)
	}

	post := datastore.ForumPost{
		User:    req.User,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := c.DS.SaveForumPost(&post); err != nil {
		return c.HandleError(ctx, err, "Failed to save forum post", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{
		"message": "Post created",
		"id":      post.ID,
	})
}
