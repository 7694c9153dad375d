// Package note turns user authored notes (Markdown, HTML or TipTap JSON) into sanitized HTML
// Package note 将用户编写的笔记 (Markdown、HTML 或 TipTap JSON) 转换为经过清洗的 HTML
//
// A formatted note is a Content value holding the raw source, the rendered HTML and the format
// the source must be read as. Content is immutable: callers replace it wholesale on update.
// 格式化后的笔记是 Content：原文、渲染后的 HTML 以及原文的格式。Content 不可变，更新时整体替换。
package note

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
)

// Format declares how Content.Raw is interpreted
// Format 声明 Content.Raw 的解释方式
type Format string

const (
	FormatMarkdown Format = "MARKDOWN"
	FormatHTML     Format = "HTML"
	FormatJSON     Format = "JSON"
)

// DefaultFormat is used wherever a caller does not name one
// DefaultFormat 调用方未指定格式时使用
const DefaultFormat = FormatHTML

// ErrUnsupportedFormat returned for a render format outside MARKDOWN, HTML and JSON
// ErrUnsupportedFormat 渲染格式不是 MARKDOWN、HTML、JSON 之一时返回
var ErrUnsupportedFormat = errors.New("note: unsupported format")

// Valid reports whether f is one of the supported formats
// Valid 判断 f 是否为支持的格式
func (f Format) Valid() bool {
	switch f {
	case FormatMarkdown, FormatHTML, FormatJSON:
		return true
	}
	return false
}

// ParseFormat parses a format name case-insensitively, an empty name yields DefaultFormat
// ParseFormat 不区分大小写解析格式名，空字符串返回 DefaultFormat
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFormat, nil
	}
	f := Format(strings.ToUpper(s))
	if !f.Valid() {
		return "", ErrUnsupportedFormat
	}
	return f, nil
}

// Content formatted note
// Content 格式化后的笔记
type Content struct {
	Raw    string `json:"raw"`
	HTML   string `json:"html"`
	Format Format `json:"format"`
}

// Empty returns the canonical empty note
// Empty 返回标准空笔记
func Empty() Content {
	return Content{Raw: "", HTML: "", Format: FormatHTML}
}

// IsEmpty 是否没有原文
func (c Content) IsEmpty() bool {
	return c.Raw == ""
}

// Input is what the formatter accepts: RawText or AlreadyFormatted
// Input 格式化器的输入：RawText 或 AlreadyFormatted
type Input interface {
	isInput()
}

// RawText unformatted author input
// RawText 未格式化的原始输入
type RawText string

// AlreadyFormatted wraps a note that went through the formatter before, it is returned untouched
// AlreadyFormatted 已经格式化过的笔记，原样返回
type AlreadyFormatted struct {
	Content Content
}

func (RawText) isInput()          {}
func (AlreadyFormatted) isInput() {}

// InputFromValue classifies a decoded JSON value
// InputFromValue 对解码后的 JSON 值分类
//
// An object carrying string raw, html and format fields with a known format is AlreadyFormatted,
// other keys on it (such as __typename) are ignored. A string is RawText. Any other value is
// re-encoded as JSON text.
// 带有字符串 raw、html、format 且格式可识别的对象视为已格式化，其余字段忽略；字符串为原文；其他值重新编码为 JSON 文本。
func InputFromValue(v interface{}) Input {
	switch t := v.(type) {
	case nil:
		return RawText("")
	case string:
		return RawText(t)
	case Content:
		return AlreadyFormatted{Content: t}
	case *Content:
		if t == nil {
			return RawText("")
		}
		return AlreadyFormatted{Content: *t}
	case map[string]interface{}:
		if c, ok := contentFromMap(t); ok {
			return AlreadyFormatted{Content: c}
		}
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		return RawText("")
	}
	return RawText(b)
}

func contentFromMap(m map[string]interface{}) (Content, bool) {
	raw, ok := m["raw"].(string)
	if !ok {
		return Content{}, false
	}
	h, ok := m["html"].(string)
	if !ok {
		return Content{}, false
	}
	name, ok := m["format"].(string)
	if !ok {
		return Content{}, false
	}
	f, err := ParseFormat(name)
	if err != nil {
		return Content{}, false
	}
	return Content{Raw: raw, HTML: h, Format: f}, true
}
