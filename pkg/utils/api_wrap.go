package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	Message   string      `json:"message,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps planning errors to HTTP statuses.
func HandleServiceError(c *gin.Context, err error) {
	pe, ok := AsPlanningError(err)
	if !ok {
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := http.StatusBadRequest
	switch pe.Code {
	case CodeExternalService:
		status = http.StatusServiceUnavailable
	case CodeUnexpectedError:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		log.Printf("Planning error %s: %v", pe.Code, err)
	}

	c.JSON(status, APIResponse{
		Status:    "error",
		Code:      status,
		Message:   pe.Message,
		ErrorCode: pe.Code,
		TraceID:   traceID(c),
	})
}
