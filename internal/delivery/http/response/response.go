// Package response renders the JSON bodies shared by every handler.
package response

import (
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx JSON response. It holds no
// request-specific data, so equal errors always produce equal bodies.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// Error writes an ErrorResponse with the given status.
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	return c.JSON(statusCode, ErrorResponse{
		Message: message,
		Code:    errorCode,
	})
}

// JSON writes a success body as is.
func JSON(c echo.Context, statusCode int, body any) error {
	return c.JSON(statusCode, body)
}
