package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "contractflow.backend/internal/domain/errors"
	"contractflow.backend/pkg/logger"
	"contractflow.backend/pkg/utils"
)

// Body is the envelope shared by every JSON response
type Body struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ListBody is the envelope for collections. Data is always an array.
type ListBody struct {
	Success bool                  `json:"success"`
	Data    interface{}           `json:"data"`
	Count   int                   `json:"count"`
	Meta    *utils.PaginationMeta `json:"meta,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Body{Success: true, Data: data})
}

// List sends a collection with its size and optional pagination metadata
func List(c *gin.Context, data interface{}, count int, meta *utils.PaginationMeta) {
	if data == nil {
		data = []struct{}{}
	}
	c.JSON(http.StatusOK, ListBody{Success: true, Data: data, Count: count, Meta: meta})
}

// Message sends a success response carrying only a message
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, Body{Success: true, Message: message})
}

// Error sends an error response. Errors that are not AppErrors are logged
// and surfaced as a generic internal error.
func Error(c *gin.Context, err error) {
	appErr, ok := domainerrors.AsAppError(err)
	if !ok {
		logger.Error(c.Request.Context(), "Unhandled error", zap.Error(err))
		appErr = domainerrors.InternalError(err)
	}

	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, Body{
		Success: false,
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// ErrorWithCode sends an error response with an explicit status and code
func ErrorWithCode(c *gin.Context, status int, code string, message string) {
	c.JSON(status, Body{Success: false, Code: code, Message: message})
}
