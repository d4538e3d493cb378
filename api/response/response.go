/*
Package response - unified API response handling.

Design rules:
 1. HTTP status mapping lives in the API layer only.
 2. Error responses never expose internals (stacks, wrapped messages).
 3. Every response carries the request id for log correlation.
 4. Internal errors answer with a generic message; the real error goes to
    the log.
*/
package response

import (
	"net/http"
	"runtime"

	"mealshop/domain/shared"
	"mealshop/pkg/errors"
	"mealshop/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey context key for request id propagation
const RequestIDKey = "request_id"

// Response is the envelope of every non-paginated answer.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"` // error code, not details
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// PaginatedResponse wraps list answers with paging info.
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Message    string      `json:"message"`
	Code       int         `json:"code"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Pagination carries cursor paging info: the id to pass as start_id for
// the next page, and whether more data may exist.
type Pagination struct {
	NextStartID int64 `json:"next_start_id"`
	Limit       int   `json:"limit"`
	HasMore     bool  `json:"has_more"`
}

// getRequestID reads the request id the middleware stored on the context.
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// captureStack grabs the handling-point stack for errors that carry none.
func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var stack []string
	for i := 0; i < 5; i++ {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

// HandleError handles framework-level errors such as request binding.
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := getRequestID(c)

	logger.Error(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	c.JSON(code, &Response{
		Success:   false,
		Error:     string(errors.CodeBadRequest),
		Message:   message,
		Code:      code,
		RequestID: requestID,
	})
}

// HandleAppError maps a domain or application error to its HTTP answer.
// The creation-point stack is preferred for the log; the handling-point
// stack is the fallback.
func HandleAppError(c *gin.Context, err error) {
	requestID := getRequestID(c)

	appErr := errors.FromDomainError(err)
	httpStatus := appErr.HTTPStatusCode()
	stack := extractStack(err)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
		zap.Strings("stack", stack),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	logger.Error(appErr.Message, fields...)

	userMessage := appErr.Message
	if appErr.Code == errors.CodeInternal {
		userMessage = "internal server error"
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		Code:      httpStatus,
		RequestID: requestID,
	})
}

// extractStack prefers the creation-point stack of domain errors.
func extractStack(err error) []string {
	if stacker, ok := err.(shared.Stacker); ok {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}

	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		if inner := unwrapper.Unwrap(); inner != nil {
			if stacker, ok := inner.(shared.Stacker); ok {
				if stack := stacker.Stack(); len(stack) > 0 {
					return stack
				}
			}
		}
	}

	return captureStack(4) // skip: Callers, captureStack, extractStack, HandleAppError
}

// HandleSuccess answers 200 OK.
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: getRequestID(c),
	})
}

// HandleCreated answers 201 Created.
func HandleCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: getRequestID(c),
	})
}

// HandleNoContent answers 204 No Content.
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandlePaginated answers 200 OK with paging info.
func HandlePaginated(c *gin.Context, data interface{}, pagination Pagination, message string) {
	c.JSON(http.StatusOK, &PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Message:    message,
		Code:       http.StatusOK,
		RequestID:  getRequestID(c),
	})
}
