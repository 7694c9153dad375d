// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/writequeue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// isNotFound 仓储层未找到记录
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// serialize 在用户的写队列上执行 fn，同一用户的检查-写入序列互不交错
// wq 为 nil 时直接执行
func serialize(ctx context.Context, wq *writequeue.Manager, uid string, fn func() error) error {
	if wq == nil {
		return fn()
	}
	err := wq.Execute(ctx, uid, fn)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, writequeue.ErrWriteQueueFull), errors.Is(err, writequeue.ErrWriteTimeout):
		return code.ErrorWriteQueueBusy
	case errors.Is(err, writequeue.ErrWriteQueueClosed):
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	return err
}

// dbError 记录数据库错误并转换为 code.ErrorDBQuery
func dbError(logger *zap.Logger, msg string, err error, fields ...zap.Field) error {
	logger.Error(msg, append(fields, zap.Error(err))...)
	return code.ErrorDBQuery.WithDetails(err.Error())
}
