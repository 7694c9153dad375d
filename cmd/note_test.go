package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runNote(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := newNoteCommand()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetIn(strings.NewReader(stdin))
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestNoteFormat_Stdin(t *testing.T) {
	out, err := runNote(t, "# Title", "format", "--as", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, `MARKDOWN`)
	assert.Contains(t, out, `<h1`)
}

func TestNoteFormat_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	doc := `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"entry"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := runNote(t, "", "format", path, "--as", "JSON")
	require.NoError(t, err)
	assert.Contains(t, out, `"JSON"`)
	assert.Contains(t, out, `entry`)
}

func TestNoteFormat_UnsupportedFormat(t *testing.T) {
	_, err := runNote(t, "x", "format", "--as", "PDF")
	assert.Error(t, err)
}

func TestNoteCSS(t *testing.T) {
	out, err := runNote(t, "", "css", "--style", "github")
	require.NoError(t, err)
	assert.Contains(t, out, ".chroma")
}
