package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func fail(c *gin.Context, code int, message string, data any) {
	c.AbortWithStatusJSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message, nil)
}
