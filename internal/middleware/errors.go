package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/nsepulse/internal/apperrors"
	"github.com/guttosm/nsepulse/internal/domain/dto"
)

// ErrorHandler renders the last error attached with c.Error as a dto.ErrorResponse,
// unless the handler already wrote a response.
//
// Status mapping:
//   - bind errors and *apperrors.MalformedInputError: 400
//   - apperrors.ErrMaterializationInProgress: 409
//   - everything else, including transient store failures: 500
//
// A string set with (*gin.Error).SetMeta becomes the response message.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last()
	status, message := statusFor(last)
	if msg, ok := last.Meta.(string); ok && msg != "" {
		message = msg
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, last.Err).WithPath(c.Request.URL.Path))
}

func statusFor(e *gin.Error) (int, string) {
	switch {
	case e.IsType(gin.ErrorTypeBind), apperrors.IsMalformed(e.Err):
		return http.StatusBadRequest, "Invalid request parameters"
	case errors.Is(e.Err, apperrors.ErrMaterializationInProgress):
		return http.StatusConflict, "Materialization already running"
	case apperrors.IsTransient(e.Err):
		return http.StatusInternalServerError, "Data store unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with the given status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err).WithPath(c.Request.URL.Path))
}
