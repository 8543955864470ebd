package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/escola-dev/escola-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data   interface{}      `json:"data,omitempty"`
	Error  *appErrors.Error `json:"error,omitempty"`
	Errors []string         `json:"errors,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// MultiStatus responds with HTTP 207 carrying both applied results and
// per-item error strings for partially successful bulk writes.
func MultiStatus(c *gin.Context, data interface{}, errs []string) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(http.StatusMultiStatus, Envelope{Data: data, Errors: errs})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
