package app

import (
	"context"
	"testing"

	"github.com/creasty/defaults"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := new(AppConfig)
	require.NoError(t, defaults.Set(cfg))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	a, err := NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	return a
}

func TestNewApp_RequiresDependencies(t *testing.T) {
	_, err := NewApp(nil, zap.NewNop(), nil)
	assert.Error(t, err)
	_, err = NewApp(&AppConfig{}, nil, nil)
	assert.Error(t, err)
	_, err = NewApp(&AppConfig{}, zap.NewNop(), nil)
	assert.Error(t, err)
}

func TestNewApp_WiresServices(t *testing.T) {
	a := newTestApp(t)

	assert.NotNil(t, a.NoteService)
	assert.NotNil(t, a.AuthService)
	assert.NotNil(t, a.PlanService)
	assert.NotNil(t, a.JournalService)
	assert.NotNil(t, a.DashboardService)
	assert.NoError(t, a.PingDB(context.Background()))
	assert.Equal(t, Version, a.Version().Version)

	// OAuth 未配置
	_, err := a.AuthService.AuthCodeURL("state")
	assert.Error(t, err)

	require.NoError(t, a.Shutdown(context.Background()))
	assert.True(t, a.IsShuttingDown())
	// 重复关闭无副作用
	assert.NoError(t, a.Shutdown(context.Background()))
}

func TestSubmitTask(t *testing.T) {
	a := newTestApp(t)
	defer a.Shutdown(context.Background())

	ran := false
	err := a.SubmitTask(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestNewApp_InvalidNodeID(t *testing.T) {
	cfg := new(AppConfig)
	require.NoError(t, defaults.Set(cfg))
	cfg.App.NodeID = 5000

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	_, err = NewApp(cfg, zap.NewNop(), db)
	assert.Error(t, err)
}
