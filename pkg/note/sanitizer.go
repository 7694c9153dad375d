package note

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// allowedElements tag allow-list every rendered note is constrained to
// allowedElements 渲染结果允许出现的标签
var allowedElements = []string{
	"p", "br", "strong", "em", "u", "strike", "del", "ins",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li", "blockquote", "code", "pre",
	"a", "img",
	"table", "thead", "tbody", "tr", "th", "td",
	"div", "span",
}

// allowedAttrs 任意允许标签上可用的属性，data-* 另行放行
var allowedAttrs = []string{"href", "target", "rel", "src", "alt", "title", "class", "id"}

// Sanitizer strips markup outside the allow-lists, built once and never mutated
// Sanitizer 清除白名单以外的标记，创建后只读，可被多个协程共享
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer 创建笔记清洗器
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedElements...)
	p.AllowAttrs(allowedAttrs...).Globally()
	p.AllowDataAttributes()

	// href/src 必须可解析且使用安全协议，javascript:、vbscript:、data: 会被丢弃
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto", "tel")

	return &Sanitizer{policy: p}
}

// Sanitize returns html constrained to the allow-lists
// Sanitize 返回限制在白名单内的 html
func (s *Sanitizer) Sanitize(html string) string {
	return defang(s.policy.Sanitize(html))
}

var (
	schemePattern = regexp.MustCompile(`(?i)\b(javascript|vbscript|livescript)(\s*):`)

	// handler 名前不能是字母数字或连字符，data-onclick 这类属性名保持原样
	handlerPattern = regexp.MustCompile(`(?i)(^|[^a-z0-9_-])(on[a-z]+)(\s*)=`)
)

// defang entity-encodes script schemes and handler assignments that survive sanitizing as
// inert text or attribute values. Browsers decode the references, so the rendered text is
// unchanged while the stored HTML never carries those sequences.
// defang 把清洗后残留在文本或属性值中的脚本协议与事件赋值转为实体编码，浏览器显示不变
func defang(html string) string {
	html = schemePattern.ReplaceAllString(html, "$1$2&#58;")
	// 相邻的赋值 (onx=ony=) 共用分隔字符，重复替换直到稳定
	for {
		next := handlerPattern.ReplaceAllString(html, "$1$2$3&#61;")
		if next == html {
			return html
		}
		html = next
	}
}
