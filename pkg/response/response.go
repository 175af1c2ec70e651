package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes {"success":true} merged with payload.
func Success(c *gin.Context, status int, payload gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{}
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	c.JSON(status, body)
}

// Error writes {"success":false,"message":...} plus "errors" when details are given.
func Error(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, errorBody(message, details))
}

// Abort is Error for middleware: the rest of the handler chain is skipped.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody(message, nil))
}

func errorBody(message string, details any) gin.H {
	body := gin.H{"success": false, "message": message}
	if details != nil {
		body["errors"] = details
	}
	return body
}
