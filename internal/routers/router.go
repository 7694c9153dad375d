package routers

import (
	"net/http"
	"strings"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/app"
	"github.com/haierkeys/trade-journal-service/internal/middleware"
	"github.com/haierkeys/trade-journal-service/internal/routers/api_router"
	"github.com/haierkeys/trade-journal-service/internal/routers/graphql_router"
	"github.com/haierkeys/trade-journal-service/pkg/limiter"
	"github.com/haierkeys/trade-journal-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
)

// newMethodLimiter 登录接口与 GraphQL 的令牌桶
func newMethodLimiter(cfg *app.AppConfig) limiter.Face {
	rules := []limiter.BucketRule{
		{
			Key:          "/auth",
			FillInterval: time.Second,
			Capacity:     10,
			Quantum:      10,
		},
	}
	if cfg.GraphQL.RateLimit > 0 {
		rules = append(rules, limiter.BucketRule{
			Key:          "/graphql",
			FillInterval: time.Second,
			Capacity:     cfg.GraphQL.RateLimit,
			Quantum:      cfg.GraphQL.RateLimit,
		})
	}
	return limiter.NewMethodLimiter().AddBuckets(rules...)
}

// allowOrigins 未配置跨域来源时只允许前端地址
func allowOrigins(cfg *app.AppConfig) []string {
	if len(cfg.Cors.AllowOrigins) > 0 {
		return cfg.Cors.AllowOrigins
	}
	return []string{strings.TrimRight(cfg.OAuth.FrontendURL, "/")}
}

// NewRouter 创建公开路由：/graphql 与 /api
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) (*gin.Engine, error) {
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	schema, err := graphql_router.NewSchema(appContainer)
	if err != nil {
		return nil, errors.Wrap(err, "parse graphql schema")
	}

	// gin 绑定与 GraphQL 输入共用同一个验证器（含 notefmt 规则）
	binding.Validator = validator.Default()

	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
	r.Use(middleware.Metrics())
	r.Use(middleware.AccessLogWithLogger(lg))
	r.Use(middleware.Cors(allowOrigins(cfg)))
	r.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
	r.Use(middleware.RateLimiter(newMethodLimiter(cfg)))
	r.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
	r.Use(middleware.LangWithTranslator(uni))

	cookie := cfg.Security.CookieName
	optionalAuth := middleware.OptionalSessionAuth(appContainer.AuthService, cookie)
	requiredAuth := middleware.SessionAuth(appContainer.AuthService, cookie)

	gql := graphql_router.NewHandler(schema)
	r.POST("/graphql", optionalAuth, gql)

	api := r.Group("/api")
	{
		authHandler := api_router.NewAuthHandler(appContainer)
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.GET("/auth/google", authHandler.GoogleLogin)
		api.GET("/auth/google/callback", authHandler.GoogleCallback)
		api.GET("/logout", optionalAuth, authHandler.Logout)

		api.GET("/me", optionalAuth, userHandler.Me)
		api.GET("/user/status", requiredAuth, userHandler.Status)

		api.POST("/note/preview", noteHandler.Preview)

		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)
	}

	r.NoRoute(middleware.NoFound())

	return r, nil
}

// healthz 私有路由的存活检查
func healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
