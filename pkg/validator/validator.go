// Package validator wires go-playground/validator into gin and exposes it to non-HTTP callers.
// Package validator 将 go-playground/validator 接入 gin，并提供给非 HTTP 调用方使用
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/haierkeys/trade-journal-service/pkg/convert"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements gin binding.StructValidator
// CustomValidator 实现 gin 的 binding.StructValidator
type CustomValidator struct {
	once     sync.Once
	validate *validator.Validate
}

var std = NewCustomValidator()

// NewCustomValidator creates validator instance
// NewCustomValidator 创建验证器实例
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// Default returns the process wide validator shared by gin binding and services
// Default 返回 gin 绑定与服务层共用的验证器
func Default() *CustomValidator {
	return std
}

// ValidateStruct validates struct, slice or pointer to struct
// ValidateStruct 校验结构体、切片或结构体指针
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return v.ValidateStruct(value.Elem().Interface())
	case reflect.Struct:
		v.lazyInit()
		return v.validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Engine returns the underlying *validator.Validate
// Engine 返回底层验证器
func (v *CustomValidator) Engine() interface{} {
	v.lazyInit()
	return v.validate
}

func (v *CustomValidator) lazyInit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName("binding")
		registerCustom(v.validate)
	})
}

var noteFormats = map[string]struct{}{"MARKDOWN": {}, "HTML": {}, "JSON": {}}

func registerCustom(validate *validator.Validate) {
	// notefmt: MARKDOWN | HTML | JSON，空值由 omitempty 控制
	_ = validate.RegisterValidation("notefmt", func(fl validator.FieldLevel) bool {
		_, ok := noteFormats[strings.ToUpper(fl.Field().String())]
		return ok
	})
	// decimal: 可解析为十进制数的字符串
	_ = validate.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := convert.StrTo(fl.Field().String()).Decimal()
		return err == nil
	})
}

// Struct validates a struct with the shared validator and translates the errors
// Struct 使用共享验证器校验结构体，返回翻译后的错误信息
func Struct(obj interface{}, trans ut.Translator) (bool, []string) {
	err := std.ValidateStruct(obj)
	if err == nil {
		return true, nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false, []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if trans != nil {
			msgs = append(msgs, fe.Translate(trans))
		} else {
			msgs = append(msgs, fe.Error())
		}
	}
	return false, msgs
}
