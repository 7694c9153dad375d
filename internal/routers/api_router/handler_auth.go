package api_router

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/haierkeys/trade-journal-service/internal/app"
	pkgapp "github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// oauthStateCookie OAuth state Cookie 名称
	oauthStateCookie = "oauth_state"
	// oauthStateMaxAge state 有效期（秒）
	oauthStateMaxAge = 600
)

// AuthHandler Google 登录与退出
type AuthHandler struct {
	*Handler
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(a *app.App) *AuthHandler {
	return &AuthHandler{Handler: NewHandler(a)}
}

func (h *AuthHandler) frontendURL(path string) string {
	return strings.TrimRight(h.App.Config().OAuth.FrontendURL, "/") + path
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.App.Config().Security.SecureCookie, true)
}

// GoogleLogin 跳转到 Google 授权页
// @Router /api/auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := util.GetSecureToken(16)
	if err != nil {
		h.logError(c.Request.Context(), "AuthHandler.GoogleLogin", err)
		c.Redirect(http.StatusFound, h.loginErrorURL(code.ErrorServerInternal))
		return
	}

	authURL, err := h.App.AuthService.AuthCodeURL(state)
	if err != nil {
		h.logError(c.Request.Context(), "AuthHandler.GoogleLogin", err)
		c.Redirect(http.StatusFound, h.loginErrorURL(err))
		return
	}

	h.setCookie(c, oauthStateCookie, state, oauthStateMaxAge)
	c.Redirect(http.StatusFound, authURL)
}

// GoogleCallback Google 回调：校验 state，换取用户信息，登录并写入会话 Cookie
// @Router /api/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	ctx := c.Request.Context()

	state, _ := c.Cookie(oauthStateCookie)
	h.setCookie(c, oauthStateCookie, "", -1)
	if state == "" || state != c.Query("state") {
		c.Redirect(http.StatusFound, h.loginErrorURL(code.ErrorOAuthState))
		return
	}
	if e := c.Query("error"); e != "" {
		h.App.Logger().Warn("google consent denied", zap.String("error", e))
		c.Redirect(http.StatusFound, h.frontendURL("/login?error="+url.QueryEscape(e)))
		return
	}

	profile, err := h.App.AuthService.Exchange(ctx, c.Query("code"))
	if err != nil {
		h.logError(ctx, "AuthHandler.GoogleCallback.Exchange", err)
		c.Redirect(http.StatusFound, h.loginErrorURL(err))
		return
	}

	result, err := h.App.AuthService.LoginWithGoogle(ctx, profile, pkgapp.GetRequestIP(c), c.Request.UserAgent())
	if err != nil {
		h.logError(ctx, "AuthHandler.GoogleCallback.Login", err)
		c.Redirect(http.StatusFound, h.loginErrorURL(err))
		return
	}

	h.setCookie(c, h.App.Config().Security.CookieName, result.Token, int(h.App.TokenManager.Expiry().Seconds()))
	c.Redirect(http.StatusFound, result.RedirectTo)
}

// Logout 删除会话并清除 Cookie，跳转到前端首页
// @Router /api/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if user := pkgapp.UserFromContext(ctx); user != nil {
		if err := h.App.AuthService.Logout(ctx, user.SessionID()); err != nil {
			h.logError(ctx, "AuthHandler.Logout", err)
		}
	}
	h.setCookie(c, h.App.Config().Security.CookieName, "", -1)
	c.Redirect(http.StatusFound, h.frontendURL("/"))
}

// loginErrorURL 登录失败时的前端地址
func (h *AuthHandler) loginErrorURL(err error) string {
	reason := "login_failed"
	var ce *code.Code
	if errors.As(err, &ce) {
		reason = ce.Msg()
	}
	return h.frontendURL("/login?error=" + url.QueryEscape(reason))
}
