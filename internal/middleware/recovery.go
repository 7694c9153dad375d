package middleware

import (
	"fmt"

	"github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 捕获 panic，记录日志后返回统一的内部错误
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				fields := []zap.Field{
					zap.String(logger.FieldPath, c.Request.URL.Path),
					zap.String(logger.FieldMethod, c.Request.Method),
					zap.String("query", c.Request.URL.RawQuery),
					zap.String("ip", c.ClientIP()),
					zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
					zap.Stack("stack"),
				}
				if err, ok := r.(error); ok {
					fields = append(fields, zap.Error(err))
				} else {
					fields = append(fields, zap.String("panic_value", fmt.Sprintf("%v", r)))
				}
				lg.Error("Recovered from panic", fields...)

				app.NewResponse(c).ToResponse(code.ErrorServerInternal)
				c.Abort()
			}
		}()

		c.Next()
	}
}
