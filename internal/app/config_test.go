package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/note"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	p := writeConfig(t, "server:\n  http-port: \":8080\"\n")

	c, realpath, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, p, realpath)
	assert.Equal(t, ":8080", c.Server.HttpPort)
	assert.Equal(t, "sqlite", c.Database.Type)
	assert.Equal(t, "HTML", c.Note.DefaultFormat)
	assert.Equal(t, 24*time.Hour, c.GetShareExpiry())
	assert.Equal(t, 30*24*time.Hour, c.GetTokenExpiry())
	assert.Equal(t, 100000.0, c.Dashboard.TotalValue)
	assert.Equal(t, "@hourly", c.Share.CleanupSpec)
}

func TestLoadConfig_Overrides(t *testing.T) {
	p := writeConfig(t, `
security:
  token-expiry: 7d
share:
  expiry: 2h
note:
  default-format: markdown
database:
  type: postgres
  replicas:
    - "host=replica dbname=journal"
`)

	c, _, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, c.GetTokenExpiry())
	assert.Equal(t, 2*time.Hour, c.GetShareExpiry())

	dbc := c.GetDatabaseConfig()
	assert.Equal(t, "postgres", dbc.Type)
	assert.Equal(t, []string{"host=replica dbname=journal"}, dbc.Replicas)

	svc := c.GetServiceConfig()
	assert.Equal(t, note.FormatMarkdown, svc.Note.DefaultFormat)
	assert.Equal(t, 2*time.Hour, svc.Share.Expiry)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "server: ["))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "note:\n  default-format: PDF\n"))
	assert.ErrorIs(t, err, note.ErrUnsupportedFormat)
}

func TestSave_RoundTrip(t *testing.T) {
	p := writeConfig(t, "oauth:\n  frontend-url: https://journal.example.com\n")
	c, _, err := LoadConfig(p)
	require.NoError(t, err)

	c.Security.AuthTokenKey = "rotated"
	require.NoError(t, c.Save())

	again, _, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "rotated", again.Security.AuthTokenKey)
	assert.Equal(t, "https://journal.example.com", again.OAuth.FrontendURL)
}

func TestLoadConfig_ShippedDefault(t *testing.T) {
	cfg, _, err := LoadConfig(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Server.HttpPort)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, int64(1), cfg.App.NodeID)
	assert.Equal(t, "trade-journal-Auth-Token", cfg.Security.AuthTokenKey)
	assert.Equal(t, "HTML", cfg.Note.DefaultFormat)
	assert.Equal(t, "@hourly", cfg.Share.CleanupSpec)
}
