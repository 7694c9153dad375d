package note

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter renders code with chroma using CSS classes only
// Highlighter 使用 chroma 高亮代码，只输出 class，颜色由页面样式表决定
type Highlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewHighlighter 创建高亮器，styleName 为 CSS() 使用的 chroma 样式，未知名称回退到默认样式
func NewHighlighter(styleName string) *Highlighter {
	return &Highlighter{
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true)),
		style:     styles.Get(styleName),
	}
}

// Highlight tokenises code for language, ok is false when the language is unknown or chroma fails
// Highlight 按语言高亮代码，语言未知或 chroma 出错时 ok 为 false，调用方输出纯文本
func (h *Highlighter) Highlight(language, code string) (string, bool) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", false
	}
	return b.String(), true
}

// CSS returns the stylesheet matching the classes Highlight emits
// CSS 返回与 Highlight 输出 class 对应的样式表
func (h *Highlighter) CSS() (string, error) {
	var b strings.Builder
	if err := h.formatter.WriteCSS(&b, h.style); err != nil {
		return "", err
	}
	return b.String(), nil
}
