package note

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// newMarkdown builds a CommonMark and GFM converter, soft line breaks become <br>
// newMarkdown 创建 CommonMark + GFM 转换器，软换行转为 <br>，原始 HTML 保留并由清洗器处理
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithUnsafe(),
		),
	)
}

func markdownToHTML(md goldmark.Markdown, src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// escapedParagraph 将文本转义后放入 <p>，keepBreaks 时保留换行
func escapedParagraph(s string, keepBreaks bool) string {
	s = html.EscapeString(s)
	if keepBreaks {
		s = strings.ReplaceAll(s, "\n", "<br>")
	}
	return "<p>" + s + "</p>"
}
