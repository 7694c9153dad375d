// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/dao"
	"github.com/haierkeys/trade-journal-service/internal/service"
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/haierkeys/trade-journal-service/pkg/util"
	"github.com/haierkeys/trade-journal-service/pkg/workerpool"
	"github.com/haierkeys/trade-journal-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File      string          `yaml:"-"` // 配置文件路径，不序列化
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	App       AppSettings     `yaml:"app"`
	Security  SecurityConfig  `yaml:"security"`
	OAuth     OAuthConfig     `yaml:"oauth"`
	Note      NoteConfig      `yaml:"note"`
	Share     ShareConfig     `yaml:"share"`
	GraphQL   GraphQLConfig   `yaml:"graphql"`
	Tracer    TracerConfig    `yaml:"tracer"`
	Cors      CorsConfig      `yaml:"cors"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":4000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址 (pprof, metrics)，为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:":4001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"trade-journal-Auth-Token"`
	// TokenExpiry 会话有效期，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"30d"`
	// CookieName 会话 Cookie 名称
	CookieName string `yaml:"cookie-name" default:"trade_journal_session"`
	// SecureCookie 仅通过 HTTPS 发送 Cookie
	SecureCookie bool `yaml:"secure-cookie" default:"false"`
	// SessionCleanupSpec 过期会话清理的 cron 表达式
	SessionCleanupSpec string `yaml:"session-cleanup-spec" default:"@hourly"`
}

// OAuthConfig Google 登录配置
type OAuthConfig struct {
	GoogleClientID     string `yaml:"google-client-id"`
	GoogleClientSecret string `yaml:"google-client-secret"`
	// GoogleCallbackURL 需与 Google 控制台中登记的回调地址一致
	GoogleCallbackURL string `yaml:"google-callback-url" default:"http://localhost:4000/api/auth/google/callback"`
	// FrontendURL 登录完成后跳转的前端地址
	FrontendURL string `yaml:"frontend-url" default:"http://localhost:3000"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型: sqlite, mysql, postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Port 端口，0 表示使用驱动默认端口
	Port int `yaml:"port"`
	// Name 数据库名
	Name string `yaml:"name"`
	// SSLMode postgres sslmode
	SSLMode string `yaml:"ssl-mode" default:"disable"`
	// Replicas 只读副本 DSN 列表
	Replicas []string `yaml:"replicas"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// NodeID snowflake 节点号（0-1023），多实例部署时需各不相同
	NodeID int64 `yaml:"node-id" default:"1"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"20"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"200"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// NoteConfig 笔记格式化配置
type NoteConfig struct {
	// DefaultFormat 未指定 renderAs 时使用的格式
	DefaultFormat string `yaml:"default-format" default:"HTML"`
	// HighlightCode 是否高亮 TipTap 代码块
	HighlightCode bool `yaml:"highlight-code" default:"false"`
	// HighlightStyle chroma 样式名
	HighlightStyle string `yaml:"highlight-style" default:"github"`
}

// ShareConfig 计划分享配置
type ShareConfig struct {
	// Expiry 分享链接有效期
	Expiry string `yaml:"expiry" default:"24h"`
	// CleanupSpec 过期分享清理的 cron 表达式
	CleanupSpec string `yaml:"cleanup-spec" default:"@hourly"`
}

// GraphQLConfig GraphQL 配置
type GraphQLConfig struct {
	// MaxDepth 查询最大深度，0 表示不限制
	MaxDepth int `yaml:"max-depth" default:"10"`
	// RateLimit 每秒请求数，0 表示不限流
	RateLimit int64 `yaml:"rate-limit" default:"50"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
	// AgentHostPort jaeger agent 地址，为空时只生成 trace id 不上报
	AgentHostPort string `yaml:"agent-host-port"`
}

// CorsConfig 跨域配置
type CorsConfig struct {
	// AllowOrigins 允许的来源，为空时允许 oauth.frontend-url
	AllowOrigins []string `yaml:"allow-origins"`
}

// DashboardConfig 仪表盘配置
type DashboardConfig struct {
	// TotalValue 模拟账户总值
	TotalValue float64 `yaml:"total-value" default:"100000"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err = yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	if _, err := note.ParseFormat(c.Note.DefaultFormat); err != nil {
		return nil, realpath, errors.Wrapf(err, "note.default-format %q", c.Note.DefaultFormat)
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err = os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}
	return nil
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()
	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}
	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()
	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	cfg.WriteTimeout = util.DurationOr(c.App.WriteQueueTimeout, cfg.WriteTimeout)
	cfg.IdleTimeout = util.DurationOr(c.App.WriteQueueIdleTime, cfg.IdleTimeout)
	return cfg
}

// GetTokenExpiry 获取会话有效期
func (c *AppConfig) GetTokenExpiry() time.Duration {
	return util.DurationOr(c.Security.TokenExpiry, 30*24*time.Hour)
}

// GetShareExpiry 获取分享有效期
func (c *AppConfig) GetShareExpiry() time.Duration {
	return util.DurationOr(c.Share.Expiry, 24*time.Hour)
}

// GetDatabaseConfig 转换为 DAO 使用的数据库配置
func (c *AppConfig) GetDatabaseConfig() *dao.DatabaseConfig {
	return &dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		Name:            c.Database.Name,
		SSLMode:         c.Database.SSLMode,
		Replicas:        c.Database.Replicas,
		AutoMigrate:     c.Database.AutoMigrate,
		Charset:         c.Database.Charset,
		ParseTime:       c.Database.ParseTime,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		RunMode:         c.Server.RunMode,
	}
}

// GetServiceConfig 提取服务层需要的配置
func (c *AppConfig) GetServiceConfig() *service.ServiceConfig {
	format, _ := note.ParseFormat(c.Note.DefaultFormat)
	return &service.ServiceConfig{
		Auth: service.AuthServiceConfig{
			SessionExpiry: c.GetTokenExpiry(),
			FrontendURL:   c.OAuth.FrontendURL,
		},
		Share: service.ShareServiceConfig{
			Expiry: c.GetShareExpiry(),
		},
		Note: service.NoteServiceConfig{
			DefaultFormat: format,
		},
		Dashboard: service.DashboardServiceConfig{
			TotalValue: c.Dashboard.TotalValue,
		},
	}
}

// GetGoogleOAuthConfig 获取 Google OAuth 客户端配置
func (c *AppConfig) GetGoogleOAuthConfig() service.GoogleOAuthConfig {
	return service.GoogleOAuthConfig{
		ClientID:     c.OAuth.GoogleClientID,
		ClientSecret: c.OAuth.GoogleClientSecret,
		CallbackURL:  c.OAuth.GoogleCallbackURL,
	}
}
