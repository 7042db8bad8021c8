package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/fixdict/internal/domain/dto"
	"github.com/guttosm/fixdict/internal/service"
)

// ErrorHandler turns errors attached with c.Error into a JSON error envelope
// when the handler has not written a response. Lookup misses map to 404 with
// the lookup key in the details. Everything else maps to 500 without details;
// the error itself only reaches the request log.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		err = nil
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrVersionNotFound):
		return http.StatusNotFound, "version not loaded"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not found"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// AbortWithError stops the chain and writes status with an error envelope.
// err, when non-nil, is attached to the context for the request log and
// reported in the envelope details.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
