package note

import (
	"bytes"
	"encoding/json"
	"html"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

// Option configures a Formatter
// Option 格式化器配置项
type Option func(*Formatter)

// WithLogger sets the logger used for degraded renderings and unknown TipTap nodes
// WithLogger 设置降级渲染与未知 TipTap 节点的日志记录器
func WithLogger(l *zap.Logger) Option {
	return func(f *Formatter) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithHighlighting 为指定语言的 TipTap 代码块开启 chroma 高亮
func WithHighlighting(style string) Option {
	return func(f *Formatter) {
		f.highlighter = NewHighlighter(style)
	}
}

// Formatter converts note sources into Content, it holds only immutable state
// and is safe for concurrent use
// Formatter 将笔记原文转换为 Content，仅持有只读状态，可并发使用
type Formatter struct {
	logger      *zap.Logger
	sanitizer   *Sanitizer
	markdown    goldmark.Markdown
	highlighter *Highlighter
	renderer    *Renderer
}

// NewFormatter 创建格式化器
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		logger:    zap.NewNop(),
		sanitizer: NewSanitizer(),
		markdown:  newMarkdown(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.renderer = NewRenderer(f.logger, f.highlighter)
	return f
}

// Format formats raw text as renderAs
// Format 按 renderAs 格式化原文
func (f *Formatter) Format(content string, renderAs Format) (Content, error) {
	return f.FormatInput(RawText(content), renderAs)
}

// FormatInput formats in, AlreadyFormatted input is returned unchanged whatever renderAs is
// FormatInput 格式化输入，已格式化的笔记无论 renderAs 为何都原样返回
func (f *Formatter) FormatInput(in Input, renderAs Format) (Content, error) {
	switch v := in.(type) {
	case AlreadyFormatted:
		return v.Content, nil
	case RawText:
		return f.formatRaw(string(v), renderAs)
	case nil:
		return Empty(), nil
	}
	return Content{}, ErrUnsupportedFormat
}

func (f *Formatter) formatRaw(content string, renderAs Format) (Content, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Empty(), nil
	}
	if !renderAs.Valid() {
		return Content{}, ErrUnsupportedFormat
	}

	var out string
	switch renderAs {
	case FormatHTML:
		out = trimmed
	case FormatMarkdown:
		out = f.markdownHTML(trimmed)
	case FormatJSON:
		out = f.jsonHTML(trimmed)
	}

	return Content{
		Raw:    trimmed,
		HTML:   f.sanitizer.Sanitize(out),
		Format: renderAs,
	}, nil
}

func (f *Formatter) markdownHTML(src string) string {
	out, err := markdownToHTML(f.markdown, src)
	if err != nil {
		f.logger.Warn("markdown conversion failed, rendering as text", zap.Error(err))
		return escapedParagraph(src, true)
	}
	return out
}

// jsonHTML TipTap 文档渲染为 HTML，其他 JSON 缩进后放入 <pre><code>，解析失败按文本输出
func (f *Formatter) jsonHTML(src string) string {
	var v interface{}
	if err := sonic.UnmarshalString(src, &v); err != nil {
		return escapedParagraph(src, false)
	}

	if IsDocument(v) {
		return f.renderer.Render(documentFromValue(v))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(src), "", "  "); err != nil {
		return escapedParagraph(src, false)
	}
	return "<pre><code>" + html.EscapeString(pretty.String()) + "</code></pre>"
}

var (
	defaultOnce      sync.Once
	defaultFormatter *Formatter
)

// Default returns a shared Formatter with default options
// Default 返回默认配置的共享格式化器
func Default() *Formatter {
	defaultOnce.Do(func() {
		defaultFormatter = NewFormatter()
	})
	return defaultFormatter
}
