package util

import "github.com/gin-gonic/gin"

// Response is the body of a JSON reply.
type Response map[string]interface{}

// JSON writes data with the given status.
func JSON(c *gin.Context, status int, data Response) {
	c.JSON(status, data)
}

// Error writes {"error": msg}.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// Fail writes {"error": msg, "success": false} for endpoints whose
// responses carry a success flag.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg, "success": false})
}
