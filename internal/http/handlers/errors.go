package handlers

import (
	"net/http"

	"javaterra/internal/domain"
	"javaterra/internal/http/middleware"
	"javaterra/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error payload of every JSON route.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Success:   false,
		Error:     message,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Store failures
// are reported as 400 with their raw message.
func RespondDomainError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case domain.IsUnauthorized(err):
		status = http.StatusUnauthorized
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	}

	log := utils.Logger().Warn
	if domain.IsInternal(err) {
		log = utils.Logger().Error
	}
	log("request failed",
		"request_id", middleware.GetRequestID(c),
		"path", c.Request.URL.Path,
		"status", status,
		"error", err.Error(),
	)

	respondError(c, status, err.Error())
}
