package note

import (
	"html"
	"strings"

	"github.com/haierkeys/trade-journal-service/pkg/convert"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Node is one node of a TipTap document tree, Unknown catches every type the renderer has no tag for
// Node TipTap 文档树节点，实现集合封闭，没有对应标签的类型都归为 Unknown
type Node interface {
	tiptapNode()
}

type (
	// Doc 文档根节点
	Doc struct{ Content []Node }
	// Paragraph 渲染为 <p>
	Paragraph struct{ Content []Node }
	// Heading 渲染为 <h1>..<h6>
	Heading struct {
		Level   int
		Content []Node
	}
	// BulletList 渲染为 <ul>
	BulletList struct{ Content []Node }
	// OrderedList 渲染为 <ol>
	OrderedList struct{ Content []Node }
	// ListItem 渲染为 <li>
	ListItem struct{ Content []Node }
	// Blockquote 渲染为 <blockquote>
	Blockquote struct{ Content []Node }
	// CodeBlock 渲染为 <pre><code>
	CodeBlock struct {
		Language string
		Content  []Node
	}
	// Text 行内文本，按顺序应用 marks
	Text struct {
		Text  string
		Marks []Mark
	}
	// HardBreak 渲染为 <br>
	HardBreak struct{}
	// Unknown 其他类型节点，有 content 时子节点直接输出，否则不输出
	Unknown struct {
		Type       string
		HasContent bool
		Content    []Node
	}
)

func (Doc) tiptapNode()         {}
func (Paragraph) tiptapNode()   {}
func (Heading) tiptapNode()     {}
func (BulletList) tiptapNode()  {}
func (OrderedList) tiptapNode() {}
func (ListItem) tiptapNode()    {}
func (Blockquote) tiptapNode()  {}
func (CodeBlock) tiptapNode()   {}
func (Text) tiptapNode()        {}
func (HardBreak) tiptapNode()   {}
func (Unknown) tiptapNode()     {}

// Mark is an inline style on a Text node
// Mark Text 节点上的行内样式
type Mark string

const (
	MarkBold      Mark = "bold"
	MarkItalic    Mark = "italic"
	MarkUnderline Mark = "underline"
	MarkStrike    Mark = "strike"
	MarkCode      Mark = "code"
)

var markTags = map[Mark]string{
	MarkBold:      "strong",
	MarkItalic:    "em",
	MarkUnderline: "u",
	MarkStrike:    "strike",
	MarkCode:      "code",
}

// IsDocument reports whether a decoded JSON value looks like a TipTap document:
// an object with type "doc" and a non-null content field
// IsDocument 判断解码后的 JSON 值是否为 TipTap 文档：type 为 "doc" 且 content 非空
func IsDocument(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok {
		return false
	}
	t, _ := m["type"].(string)
	content, has := m["content"]
	return t == "doc" && has && content != nil
}

// DecodeDocument decodes TipTap JSON into a Doc
// DecodeDocument 将 TipTap JSON 解码为 Doc
//
// Decoding is lenient per node: an entry that is not an object, or a field of the wrong
// type, degrades that node only and its siblings still decode. Content that is not a list
// yields an empty Doc.
// 按节点宽松解码：非对象的条目或类型错误的字段只影响该节点，兄弟节点照常解码；content 不是数组时返回空 Doc。
func DecodeDocument(data []byte) (*Doc, error) {
	var v interface{}
	if err := sonic.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return documentFromValue(v), nil
}

func documentFromValue(v interface{}) *Doc {
	m, _ := v.(map[string]interface{})
	items, _ := m["content"].([]interface{})
	return &Doc{Content: convertNodes(items)}
}

func convertNodes(items []interface{}) []Node {
	if len(items) == 0 {
		return nil
	}
	out := make([]Node, 0, len(items))
	for _, it := range items {
		out = append(out, convertNode(it))
	}
	return out
}

func convertNode(v interface{}) Node {
	m, ok := v.(map[string]interface{})
	if !ok {
		return Unknown{}
	}
	typ, _ := m["type"].(string)
	attrs, _ := m["attrs"].(map[string]interface{})
	items, isList := m["content"].([]interface{})
	children := convertNodes(items)

	switch typ {
	case "doc":
		return Doc{Content: children}
	case "paragraph":
		return Paragraph{Content: children}
	case "heading":
		return Heading{Level: intAttr(attrs, "level"), Content: children}
	case "bulletList":
		return BulletList{Content: children}
	case "orderedList":
		return OrderedList{Content: children}
	case "listItem":
		return ListItem{Content: children}
	case "blockquote":
		return Blockquote{Content: children}
	case "codeBlock":
		lang, _ := attrs["language"].(string)
		return CodeBlock{Language: lang, Content: children}
	case "text":
		text, _ := m["text"].(string)
		return Text{Text: text, Marks: convertMarks(m["marks"])}
	case "hardBreak":
		return HardBreak{}
	default:
		return Unknown{Type: typ, HasContent: isList, Content: children}
	}
}

// convertMarks 跳过不是对象或没有字符串 type 的 mark
func convertMarks(v interface{}) []Mark {
	items, _ := v.([]interface{})
	marks := make([]Mark, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		if t, ok := m["type"].(string); ok {
			marks = append(marks, Mark(t))
		}
	}
	return marks
}

// intAttr 读取整数属性，接受 JSON 数字与数字字符串 ("2")
func intAttr(attrs map[string]interface{}, key string) int {
	switch v := attrs[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		return convert.StrTo(v).MustInt()
	}
	return 0
}

// Renderer walks a TipTap tree and emits HTML, the formatter always sanitizes its output
// Renderer 遍历 TipTap 树输出 HTML，输出不可信，格式化器总会再做清洗
type Renderer struct {
	logger      *zap.Logger
	highlighter *Highlighter
}

// NewRenderer 创建渲染器，logger 为 nil 时丢弃告警，highlighter 为 nil 时代码块输出为普通 <pre><code>
func NewRenderer(logger *zap.Logger, highlighter *Highlighter) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logger: logger, highlighter: highlighter}
}

// Render returns the HTML for n and its descendants
// Render 返回 n 及其子孙节点的 HTML
func (r *Renderer) Render(n Node) string {
	var b strings.Builder
	r.render(&b, n)
	return b.String()
}

func (r *Renderer) render(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Doc:
		r.children(b, v.Content)
	case *Doc:
		r.children(b, v.Content)
	case Paragraph:
		r.wrap(b, "p", v.Content)
	case Heading:
		r.wrap(b, headingTag(v.Level), v.Content)
	case BulletList:
		r.wrap(b, "ul", v.Content)
	case OrderedList:
		r.wrap(b, "ol", v.Content)
	case ListItem:
		r.wrap(b, "li", v.Content)
	case Blockquote:
		r.wrap(b, "blockquote", v.Content)
	case CodeBlock:
		r.codeBlock(b, v)
	case Text:
		b.WriteString(applyMarks(html.EscapeString(v.Text), v.Marks))
	case HardBreak:
		b.WriteString("<br>")
	case Unknown:
		r.logger.Warn("unknown tiptap node type",
			zap.String("nodeType", v.Type),
			zap.Bool("hasContent", v.HasContent))
		if v.HasContent {
			r.children(b, v.Content)
		}
	}
}

func (r *Renderer) children(b *strings.Builder, nodes []Node) {
	for _, c := range nodes {
		r.render(b, c)
	}
}

func (r *Renderer) wrap(b *strings.Builder, tag string, nodes []Node) {
	b.WriteString("<" + tag + ">")
	r.children(b, nodes)
	b.WriteString("</" + tag + ">")
}

func (r *Renderer) codeBlock(b *strings.Builder, v CodeBlock) {
	if r.highlighter != nil && v.Language != "" {
		if out, ok := r.highlighter.Highlight(v.Language, plainText(v.Content)); ok {
			b.WriteString(`<pre class="chroma"><code class="language-` + html.EscapeString(v.Language) + `">`)
			b.WriteString(out)
			b.WriteString("</code></pre>")
			return
		}
	}
	b.WriteString("<pre><code>")
	r.children(b, v.Content)
	b.WriteString("</code></pre>")
}

// applyMarks 按顺序包裹 mark，最后一个在最外层
func applyMarks(s string, marks []Mark) string {
	for _, m := range marks {
		tag, ok := markTags[m]
		if !ok {
			continue
		}
		s = "<" + tag + ">" + s + "</" + tag + ">"
	}
	return s
}

func headingTag(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return "h" + string(rune('0'+level))
}

// plainText 拼接所有子孙 Text 节点的文本
func plainText(nodes []Node) string {
	var b strings.Builder
	var walk func([]Node)
	walk = func(ns []Node) {
		for _, n := range ns {
			switch v := n.(type) {
			case Text:
				b.WriteString(v.Text)
			case HardBreak:
				b.WriteString("\n")
			case Unknown:
				walk(v.Content)
			case Paragraph:
				walk(v.Content)
			}
		}
	}
	walk(nodes)
	return b.String()
}
