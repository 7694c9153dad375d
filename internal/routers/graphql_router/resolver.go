// Package graphql_router serves the GraphQL API on top of the service layer
// Package graphql_router 基于服务层提供 GraphQL 接口
package graphql_router

import (
	"context"
	"errors"

	"github.com/haierkeys/trade-journal-service/internal/app"
	pkgapp "github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/validator"

	"go.uber.org/zap"
)

// Resolver GraphQL 根解析器，Query 与 Mutation 共用
type Resolver struct {
	app *app.App
}

// NewResolver 创建根解析器（注入 App Container）
func NewResolver(a *app.App) *Resolver {
	return &Resolver{app: a}
}

// currentUID 当前会话用户，未登录返回 UNAUTHORIZED
func currentUID(ctx context.Context) (string, error) {
	user := pkgapp.UserFromContext(ctx)
	if user == nil || user.UID == "" {
		return "", code.ErrorNotUserAuthToken
	}
	return user.UID, nil
}

// toGQLError 业务错误原样返回，其余错误隐藏细节
func (r *Resolver) toGQLError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var c *code.Code
	if errors.As(err, &c) {
		return c
	}
	r.app.Logger().Error("graphql resolver failed",
		zap.String("operation", op),
		zap.String("uid", uidOrEmpty(ctx)),
		zap.Error(err))
	return code.ErrorServerInternal
}

func uidOrEmpty(ctx context.Context) string {
	if u := pkgapp.UserFromContext(ctx); u != nil {
		return u.UID
	}
	return ""
}

// validate 校验输入结构体，失败返回 BAD_USER_INPUT
func validate(obj interface{}) error {
	ok, msgs := validator.Struct(obj, nil)
	if ok {
		return nil
	}
	return code.ErrorInvalidParams.WithDetails(msgs...)
}

// panicLogger 记录解析器中的 panic
type panicLogger struct {
	logger *zap.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.Error("graphql resolver panic",
		zap.Any("panic", value),
		zap.String("uid", uidOrEmpty(ctx)),
		zap.Stack("stack"))
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
