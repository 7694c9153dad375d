package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, src string) *Doc {
	t.Helper()
	doc, err := DecodeDocument([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestRenderer_MarkOrder(t *testing.T) {
	doc := decode(t, `{"type":"doc","content":[{"type":"paragraph","content":[
		{"type":"text","text":"hi","marks":[{"type":"bold"},{"type":"italic"}]}]}]}`)

	out := NewRenderer(nil, nil).Render(doc)
	assert.Equal(t, "<p><em><strong>hi</strong></em></p>", out)

	reversed := Text{Text: "hi", Marks: []Mark{MarkItalic, MarkBold}}
	assert.Equal(t, "<strong><em>hi</em></strong>", NewRenderer(nil, nil).Render(reversed))
}

func TestRenderer_AllMarks(t *testing.T) {
	n := Text{Text: "x", Marks: []Mark{MarkBold, MarkItalic, MarkUnderline, MarkStrike, MarkCode, Mark("highlight")}}
	assert.Equal(t, "<code><strike><u><em><strong>x</strong></em></u></strike></code>", NewRenderer(nil, nil).Render(n))
}

func TestRenderer_Nodes(t *testing.T) {
	r := NewRenderer(nil, nil)

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "heading level",
			src:  `{"type":"doc","content":[{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Plan"}]}]}`,
			want: "<h2>Plan</h2>",
		},
		{
			name: "heading level as string",
			src:  `{"type":"doc","content":[{"type":"heading","attrs":{"level":"2"},"content":[{"type":"text","text":"Plan"}]}]}`,
			want: "<h2>Plan</h2>",
		},
		{
			name: "heading level not a number",
			src:  `{"type":"doc","content":[{"type":"heading","attrs":{"level":"big"},"content":[{"type":"text","text":"Plan"}]}]}`,
			want: "<h1>Plan</h1>",
		},
		{
			name: "heading default level",
			src:  `{"type":"doc","content":[{"type":"heading","content":[{"type":"text","text":"Plan"}]}]}`,
			want: "<h1>Plan</h1>",
		},
		{
			name: "heading level clamped",
			src:  `{"type":"doc","content":[{"type":"heading","attrs":{"level":9},"content":[{"type":"text","text":"Plan"}]}]}`,
			want: "<h6>Plan</h6>",
		},
		{
			name: "lists",
			src: `{"type":"doc","content":[
				{"type":"bulletList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"a"}]}]}]},
				{"type":"orderedList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"b"}]}]}]}]}`,
			want: "<ul><li><p>a</p></li></ul><ol><li><p>b</p></li></ol>",
		},
		{
			name: "blockquote and hard break",
			src:  `{"type":"doc","content":[{"type":"blockquote","content":[{"type":"paragraph","content":[{"type":"text","text":"a"},{"type":"hardBreak"},{"type":"text","text":"b"}]}]}]}`,
			want: "<blockquote><p>a<br>b</p></blockquote>",
		},
		{
			name: "code block",
			src:  `{"type":"doc","content":[{"type":"codeBlock","content":[{"type":"text","text":"if a < b {}"}]}]}`,
			want: "<pre><code>if a &lt; b {}</code></pre>",
		},
		{
			name: "unknown node passes children through",
			src:  `{"type":"doc","content":[{"type":"weirdNode","content":[{"type":"text","text":"x"}]}]}`,
			want: "x",
		},
		{
			name: "unknown leaf renders nothing",
			src:  `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"mention"},{"type":"text","text":"y"}]}]}`,
			want: "<p>y</p>",
		},
		{
			name: "malformed siblings do not hide valid nodes",
			src: `{"type":"doc","content":[
				{"type":"paragraph","content":[{"type":"text","text":"a"}]},
				7,
				{"type":"text","text":5},
				{"type":"paragraph","attrs":"x","content":[{"type":"text","text":"b","marks":["bold",{"type":"italic"}]}]},
				{"type":"heading","attrs":{"level":3},"content":"oops"}]}`,
			want: "<p>a</p><p><em>b</em></p><h3></h3>",
		},
		{
			name: "content that is not a list",
			src:  `{"type":"doc","content":"oops"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Render(decode(t, tt.src)))
		})
	}
}

func TestRenderer_UnknownNodeWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := NewRenderer(zap.New(core), nil)

	out := r.Render(Doc{Content: []Node{Unknown{Type: "weirdNode", HasContent: true, Content: []Node{Text{Text: "x"}}}}})
	assert.Equal(t, "x", out)

	entries := logs.FilterMessage("unknown tiptap node type").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "weirdNode", entries[0].ContextMap()["nodeType"])
}

func TestIsDocument(t *testing.T) {
	assert.True(t, IsDocument(map[string]interface{}{"type": "doc", "content": []interface{}{}}))
	assert.False(t, IsDocument(map[string]interface{}{"type": "doc"}))
	assert.False(t, IsDocument(map[string]interface{}{"type": "doc", "content": nil}))
	assert.False(t, IsDocument(map[string]interface{}{"type": "paragraph", "content": []interface{}{}}))
	assert.False(t, IsDocument([]interface{}{"doc"}))
}

func TestHighlighter(t *testing.T) {
	h := NewHighlighter("monokai")

	out, ok := h.Highlight("go", "package main")
	require.True(t, ok)
	assert.Contains(t, out, `<span class="`)
	assert.Contains(t, out, "package")

	_, ok = h.Highlight("definitely-not-a-language", "x")
	assert.False(t, ok)

	css, err := h.CSS()
	require.NoError(t, err)
	assert.NotEmpty(t, css)
}
