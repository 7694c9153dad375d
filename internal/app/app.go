// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/dao"
	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/service"
	pkgapp "github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/idgen"
	"github.com/haierkeys/trade-journal-service/pkg/note"
	"github.com/haierkeys/trade-journal-service/pkg/workerpool"
	"github.com/haierkeys/trade-journal-service/pkg/writequeue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config    *AppConfig
	logger    *zap.Logger
	DB        *gorm.DB
	Dao       *dao.Dao
	startedAt time.Time

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// Repository 层
	UserRepo            domain.UserRepository
	SessionRepo         domain.SessionRepository
	AccountRepo         domain.TradingAccountRepository
	SafetyNetRepo       domain.SafetyNetRepository
	PlanRepo            domain.TradingPlanRepository
	SharedPlanRepo      domain.SharedPlanRepository
	JournalTemplateRepo domain.JournalTemplateRepository
	JournalRepo         domain.JournalRepository

	// Service 层
	NoteService            service.NoteService
	UserService            service.UserService
	AuthService            service.AuthService
	AccountService         service.AccountService
	SafetyNetService       service.SafetyNetService
	PlanService            service.PlanService
	JournalTemplateService service.JournalTemplateService
	JournalService         service.JournalService
	DashboardService       service.DashboardService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	Formatter    *note.Formatter

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// AppOption 容器配置项
type AppOption func(*options)

type options struct {
	authOpts []service.AuthServiceOption
}

// WithAuthOptions 追加 AuthService 配置项（测试中替换 Google 用户信息获取）
func WithAuthOptions(opts ...service.AuthServiceOption) AppOption {
	return func(o *options) {
		o.authOpts = append(o.authOpts, opts...)
	}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	if err := idgen.Init(cfg.App.NodeID); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		startedAt:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(cfg.GetDatabaseConfig()),
		dao.WithLogger(logger),
	)

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expiry:    cfg.GetTokenExpiry(),
	})

	formatterOpts := []note.Option{note.WithLogger(logger)}
	if cfg.Note.HighlightCode {
		formatterOpts = append(formatterOpts, note.WithHighlighting(cfg.Note.HighlightStyle))
	}
	a.Formatter = note.NewFormatter(formatterOpts...)

	// Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.SessionRepo = dao.NewSessionRepository(a.Dao)
	a.AccountRepo = dao.NewTradingAccountRepository(a.Dao)
	a.SafetyNetRepo = dao.NewSafetyNetRepository(a.Dao)
	a.PlanRepo = dao.NewTradingPlanRepository(a.Dao)
	a.SharedPlanRepo = dao.NewSharedPlanRepository(a.Dao)
	a.JournalTemplateRepo = dao.NewJournalTemplateRepository(a.Dao)
	a.JournalRepo = dao.NewJournalRepository(a.Dao)

	svcConfig := cfg.GetServiceConfig()

	authOpts := []service.AuthServiceOption{
		service.WithOAuth(service.NewGoogleOAuth2Config(cfg.GetGoogleOAuthConfig())),
	}
	authOpts = append(authOpts, o.authOpts...)

	// Service 层（依赖注入）
	a.NoteService = service.NewNoteService(a.Formatter, logger, svcConfig)
	a.UserService = service.NewUserService(a.UserRepo, logger, svcConfig)
	a.AuthService = service.NewAuthService(a.UserRepo, a.SessionRepo, a.TokenManager, logger, svcConfig, authOpts...)
	a.AccountService = service.NewAccountService(a.AccountRepo, a.UserRepo, a.writeQueueMgr, logger, svcConfig)
	a.SafetyNetService = service.NewSafetyNetService(a.SafetyNetRepo, a.UserRepo, a.writeQueueMgr, logger)
	a.PlanService = service.NewPlanService(a.PlanRepo, a.SharedPlanRepo, a.UserRepo, a.NoteService, a.writeQueueMgr, logger, svcConfig)
	a.JournalTemplateService = service.NewJournalTemplateService(a.JournalTemplateRepo, a.NoteService, logger)
	a.JournalService = service.NewJournalService(a.JournalRepo, a.AccountRepo, logger)
	a.DashboardService = service.NewDashboardService(a.PlanRepo, a.JournalTemplateRepo, a.NoteService, logger, svcConfig)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity),
		zap.Bool("oauthConfigured", cfg.OAuth.GoogleClientID != ""))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SubmitTask 提交任务到 Worker Pool 并等待结果
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Uptime 进程运行时长
func (a *App) Uptime() time.Duration {
	return time.Since(a.startedAt)
}

// PingDB 检查数据库连接
func (a *App) PingDB(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsProductionMode 是否为生产模式
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// WorkerPool 获取 Worker Pool
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueueManager 获取 Write Queue Manager
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Worker Pool -> Write Queue Manager -> 后台操作 -> Database
// ctx 为 nil 时使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	select {
	case <-a.shutdownCh:
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	if a.writeQueueMgr != nil {
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
