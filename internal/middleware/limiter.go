package middleware

import (
	"net/http"

	"github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 令牌桶限流，未配置桶的路径不限流
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			if bucket.TakeAvailable(1) == 0 {
				app.NewResponse(c).ToResponseWithStatus(http.StatusTooManyRequests, code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
