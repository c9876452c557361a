package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhruvent/billing/internal/export"
	domain "github.com/dhruvent/billing/internal/invoice/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// AbortWithError records err on the context so the error middleware and
// the request logger both see it, then aborts with the mapped status.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandlingMiddleware converts recorded errors into JSON responses.
// It runs after the handler; the last recorded error wins.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := mapError(err)
		c.JSON(status, errorResponse{Error: message})
	}
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPartyKind),
		errors.Is(err, domain.ErrInvalidLineItemField):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, export.ErrExportInFlight):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// classifyError labels errors for request logs.
func classifyError(err error) (string, string) {
	status, _ := mapError(err)
	switch {
	case status == http.StatusConflict:
		return "conflict", err.Error()
	case status >= 400 && status < 500:
		return "validation", err.Error()
	default:
		return "internal", "internal_error"
	}
}
