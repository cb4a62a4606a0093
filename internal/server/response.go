package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope for every API reply.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func successResponse(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func errorResponse(c *gin.Context, status int, message string, err error, data any) {
	resp := APIResponse{
		Success: false,
		Message: message,
		Data:    data,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

func unauthorized(c *gin.Context, err error) {
	errorResponse(c, http.StatusUnauthorized, "Authentication required", err, nil)
}
