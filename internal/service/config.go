package service

import (
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/note"
)

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Auth      AuthServiceConfig      // Login and session config // 登录与会话配置
	Share     ShareServiceConfig     // Plan sharing config // 计划分享配置
	Note      NoteServiceConfig      // Note formatting config // 笔记格式化配置
	Dashboard DashboardServiceConfig // Dashboard config // 仪表盘配置
}

// AuthServiceConfig auth service configuration
// AuthServiceConfig 认证服务配置
type AuthServiceConfig struct {
	SessionExpiry time.Duration // Session lifetime, default 30 days // 会话有效期
	FrontendURL   string        // Redirect target after login // 登录后跳转的前端地址
}

// ShareServiceConfig share configuration
// ShareServiceConfig 分享配置
type ShareServiceConfig struct {
	Expiry time.Duration // Shared plan lifetime, default 24h // 分享链接有效期
}

// NoteServiceConfig note configuration
// NoteServiceConfig 笔记配置
type NoteServiceConfig struct {
	DefaultFormat note.Format // Format used when none is requested // 默认渲染格式
}

// DashboardServiceConfig dashboard configuration
type DashboardServiceConfig struct {
	TotalValue float64 // Mock portfolio value // 模拟账户总值
}

// shareExpiry 分享有效期，未配置时为 24 小时
func (c *ServiceConfig) shareExpiry() time.Duration {
	if c == nil || c.Share.Expiry <= 0 {
		return 24 * time.Hour
	}
	return c.Share.Expiry
}

func (c *ServiceConfig) sessionExpiry() time.Duration {
	if c == nil || c.Auth.SessionExpiry <= 0 {
		return 30 * 24 * time.Hour
	}
	return c.Auth.SessionExpiry
}

func (c *ServiceConfig) defaultFormat() note.Format {
	if c == nil || !c.Note.DefaultFormat.Valid() {
		return note.DefaultFormat
	}
	return c.Note.DefaultFormat
}
