// Package render centralizes HTML page responses so handlers never write
// templates or statuses directly.
package render

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page renders a template with data.
func Page(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, data)
}

// Error renders the error page with a user-facing message. Internal detail
// never goes through here; callers log it and pass a generic message.
func Error(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{"error_message": message})
}

// BadRequest renders a 400 error page.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Internal renders a generic 500 error page.
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "An unexpected error occurred")
}

// TooManyRequests renders a 429 error page.
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "Too many requests. Please slow down and try again.")
}

// NotFound renders a 404 error page.
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Page not found.")
}
