package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/middleware"
	"github.com/haierkeys/trade-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 统一应用错误结构体
// 包含错误码、分类、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Class 错误分类（UNAUTHORIZED / NOT_FOUND / ...）
	Class string `json:"class,omitempty"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`

	status int
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 实现 errors.Unwrap 接口
func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPStatus 返回该错误对应的 HTTP 状态码
func (e *AppError) HTTPStatus() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

// NewAppError 从 Code 对象创建 AppError，内部错误不输出详情
func NewAppError(c *code.Code, cause error) *AppError {
	e := &AppError{
		Code:      c.Code(),
		Class:     string(c.Class()),
		Message:   c.Msg(),
		Cause:     cause,
		Timestamp: time.Now(),
		status:    StatusForClass(c.Class()),
	}
	if c.Class() != code.ClassInternal {
		e.Details = c.Details()
	}
	return e
}

// WithTraceID 设置 TraceID 并返回自身（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// StatusForClass 错误分类到 HTTP 状态码
func StatusForClass(class code.Class) int {
	switch class {
	case code.ClassUnauthorized:
		return http.StatusUnauthorized
	case code.ClassNotFound:
		return http.StatusNotFound
	case code.ClassConflict:
		return http.StatusConflict
	case code.ClassBadUserInput:
		return http.StatusBadRequest
	case code.ClassTooManyRequest:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse 统一错误响应处理
// 从 gin.Context 获取 TraceID，将错误转换为 AppError 并以对应的 HTTP 状态码返回
func ErrorResponse(c *gin.Context, err error) {
	traceID := middleware.GetTraceIDFromGin(c)

	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.TraceID = traceID
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		resp := NewAppError(codeErr, err).WithTraceID(traceID)
		c.JSON(resp.HTTPStatus(), resp)
		return
	}

	_ = c.Error(err)
	resp := NewAppError(code.ErrorServerInternal, err).WithTraceID(traceID)
	c.JSON(http.StatusInternalServerError, resp)
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
