package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
)

// SuccessResponse represents a standard success JSON response.
type SuccessResponse struct {
	Status  string      `json:"status"`  // "success"
	Message string      `json:"message"` // Optional success message
	Data    interface{} `json:"data"`    // The actual data payload
}

// ErrorResponse represents a standard error JSON response.
type ErrorResponse struct {
	Status  string            `json:"status"`           // "error" or "fail"
	Message string            `json:"message"`          // Error message
	Code    int               `json:"code"`             // HTTP status code
	Kind    string            `json:"kind,omitempty"`   // Application error kind
	Fields  map[string]string `json:"fields,omitempty"` // Validation failures by field
}

// SendSuccess sends a standardized success response.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	if message == "" {
		message = "Operation completed successfully"
	}
	c.JSON(statusCode, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SendError sends a standardized error response.
func SendError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// SendValidationError sends a 400 with per-field messages.
func SendValidationError(c *gin.Context, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Status:  "error",
		Message: "Invalid request payload",
		Code:    http.StatusBadRequest,
		Kind:    common.KindValidation.String(),
		Fields:  fields,
	})
}

// SendAppError maps a service error onto a status code. Internal errors are logged by the
// caller and never leak their message.
func SendAppError(c *gin.Context, err error) {
	kind := common.KindOf(err)
	status := StatusForKind(kind)
	message := err.Error()
	var appErr *common.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	if kind == common.KindInternal {
		message = "An unexpected error occurred on the server"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  statusText(status),
		Message: message,
		Code:    status,
		Kind:    kind.String(),
	})
}

// StatusForKind is the single mapping from error kind to HTTP status.
func StatusForKind(kind common.Kind) int {
	switch kind {
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindAuthorization:
		return http.StatusForbidden
	case common.KindDuplicateRequest, common.KindDuplicateRating, common.KindConflict:
		return http.StatusConflict
	case common.KindProfileIncomplete:
		return http.StatusPreconditionFailed
	case common.KindInvalidToken, common.KindExpiredToken, common.KindValidation:
		return http.StatusBadRequest
	case common.KindInvalidCredentials:
		return http.StatusUnauthorized
	case common.KindEmailDelivery:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func statusText(statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return "fail" // Differentiate client errors from server failures
	}
	return "error"
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, resourceName string) {
	SendError(c, http.StatusNotFound, resourceName+" not found")
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	SendError(c, http.StatusUnauthorized, message)
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	SendError(c, http.StatusBadRequest, message)
}

// TooManyRequests sends a 429 response.
func TooManyRequests(c *gin.Context) {
	SendError(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}
