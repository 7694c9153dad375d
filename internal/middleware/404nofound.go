package middleware

import (
	"net/http"

	"github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponseWithStatus(http.StatusNotFound, code.ErrorNotFoundAPI)
		c.Abort()
	}
}
