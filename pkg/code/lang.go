package code

import (
	"errors"
	"strings"
	"sync/atomic"
)

// lang 一条消息的中英文文本
type lang struct {
	en    string
	zh_cn string
}

const (
	LangEN = "en"
	LangZH = "zh_cn"

	FALLBACK_LNG = LangEN
)

// lng 当前全局语言，码表在包变量初始化阶段就会读取，零值视为英文
var lng atomic.Value

// NormalizeLang maps "zh", "zh-CN", "zh_cn" to zh_cn and "en", "en-US" to en.
// Anything else yields "".
func NormalizeLang(language string) string {
	l := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(language), "-", "_"))
	switch {
	case l == "zh" || strings.HasPrefix(l, "zh_"):
		return LangZH
	case l == "en" || strings.HasPrefix(l, "en_"):
		return LangEN
	}
	return ""
}

// GetMessage 按当前全局语言返回文本，缺失时退回英文
func (l lang) GetMessage() string {
	if GetGlobalDefaultLang() == LangZH && l.zh_cn != "" {
		return l.zh_cn
	}
	return l.en
}

// SetGlobalDefaultLang 设置全局默认语言，不支持的语言退回英文并返回错误
func SetGlobalDefaultLang(language string) error {
	if l := NormalizeLang(language); l != "" {
		lng.Store(l)
		return nil
	}
	lng.Store(FALLBACK_LNG)
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	if l, _ := lng.Load().(string); l != "" {
		return l
	}
	return FALLBACK_LNG
}
