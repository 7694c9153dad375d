package code

import (
	"fmt"
	"net/http"
)

// Class groups codes by the kind of failure they describe.
// The GraphQL layer reports it as the `code` extension.
type Class string

const (
	ClassNone           Class = ""
	ClassUnauthorized   Class = "UNAUTHORIZED"
	ClassNotFound       Class = "NOT_FOUND"
	ClassConflict       Class = "CONFLICT"
	ClassBadUserInput   Class = "BAD_USER_INPUT"
	ClassInternal       Class = "INTERNAL_SERVER_ERROR"
	ClassTooManyRequest Class = "TOO_MANY_REQUESTS"
)

type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// 错误分类
	class Class
	// 错误消息
	Lang lang
	// 数据
	data interface{}
	// 是否含有Data
	haveData bool
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

func NewError(code int, class Class, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()

	return &Code{code: code, status: false, class: class, Lang: l}
}

func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()

	return &Code{code: code, status: true, Lang: l}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Class() Class {
	if e.class == ClassNone && !e.status {
		return ClassInternal
	}
	return e.class
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

// WithData 返回携带数据的副本，原始码表项不被修改
func (e *Code) WithData(data interface{}) *Code {
	c := e.copy()
	c.haveData = true
	c.data = data
	return c
}

// WithDetails 返回携带详情的副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.copy()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// Is 按错误码比较，供 errors.Is 使用
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code && t.status == e.status
}

func (e *Code) StatusCode() int {
	return http.StatusOK
}

func (e *Code) copy() *Code {
	c := *e
	return &c
}

// Extensions GraphQL 错误扩展字段，内部错误不输出详情
func (e *Code) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code":      string(e.Class()),
		"errorCode": e.code,
	}
	if e.haveDetails && len(e.details) > 0 && e.Class() != ClassInternal {
		ext["details"] = e.details
	}
	return ext
}
