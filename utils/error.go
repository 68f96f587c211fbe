package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stable machine-readable error codes shared by all services.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeForbidden  = "FORBIDDEN"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
)

// FieldIssue reports a single validation failure on one input field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ServiceError is the error type services return to handlers. Fields is
// populated only for validation-class bad requests, where every violation
// in the payload is reported at once.
type ServiceError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldIssue `json:"fields,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Code + ": " + e.Message
}

func NewBadRequest(message string, fields ...FieldIssue) *ServiceError {
	return &ServiceError{Code: CodeBadRequest, Message: message, Fields: fields}
}

func NewForbidden() *ServiceError {
	return &ServiceError{Code: CodeForbidden, Message: "Forbidden"}
}

func NewNotFound(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message}
}

func NewConflict(message string) *ServiceError {
	return &ServiceError{Code: CodeConflict, Message: message}
}

// httpStatus maps an error code to its HTTP status.
func httpStatus(code string) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RespondError writes a service error as a JSON response. Unknown error
// types become an opaque 500 so internals never leak to clients.
func RespondError(c *gin.Context, err error) {
	if svcErr, ok := err.(*ServiceError); ok {
		c.JSON(httpStatus(svcErr.Code), svcErr)
		return
	}
	GetLogger().Error("unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ServiceError{
		Code:    "INTERNAL",
		Message: "An unexpected error occurred. Please try again later.",
	})
}

// ErrorHandler is a middleware that catches panics and returns structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, ServiceError{
					Code:    "INTERNAL",
					Message: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
