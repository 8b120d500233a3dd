package util

import (
	"github.com/gin-gonic/gin"
)

// Error 统一错误返回，webhook 调用方只看 error 字段
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{
		"error": msg,
	})
}
