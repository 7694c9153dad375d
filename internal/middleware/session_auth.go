package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// Authenticator 校验会话 token
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*app.UserEntity, error)
}

// SessionToken 读取会话 token：优先 Cookie，其次 Authorization: Bearer
func SessionToken(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
			return strings.TrimSpace(h[7:])
		}
	}
	return ""
}

func attachUser(c *gin.Context, user *app.UserEntity) {
	c.Set(app.ContextUserKey, user)
	c.Request = c.Request.WithContext(app.WithUser(c.Request.Context(), user))
}

// SessionAuth 必须登录，未登录或会话失效返回 401
func SessionAuth(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), SessionToken(c, cookieName))
		if err != nil {
			var ce *code.Code
			if !errors.As(err, &ce) || ce.Class() != code.ClassUnauthorized {
				_ = c.Error(err)
				app.NewResponse(c).ToResponseWithStatus(http.StatusInternalServerError, code.ErrorServerInternal)
			} else {
				app.NewResponse(c).ToResponseWithStatus(http.StatusUnauthorized, ce)
			}
			c.Abort()
			return
		}
		attachUser(c, user)
		c.Next()
	}
}

// OptionalSessionAuth 有有效会话时注入用户，否则匿名继续
// GraphQL 按操作判断是否需要登录
func OptionalSessionAuth(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)
		if token != "" {
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				attachUser(c, user)
			} else {
				var ce *code.Code
				if !errors.As(err, &ce) || ce.Class() != code.ClassUnauthorized {
					_ = c.Error(err)
				}
			}
		}
		c.Next()
	}
}
