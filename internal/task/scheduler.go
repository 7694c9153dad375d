package task

import (
	"context"
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	Spec() string                  // cron 表达式，例如 @hourly
	IsStartupRun() bool            // 是否立即执行一次
}

// Submitter 任务执行器，通常是 App 的 Worker Pool
type Submitter func(ctx context.Context, fn func(context.Context) error) error

// Scheduler 基于 cron 的任务调度器
type Scheduler struct {
	logger  *zap.Logger
	cron    *cron.Cron
	submit  Submitter
	sc      *safe_close.SafeClose
	timeout time.Duration
	tasks   []Task
}

// NewScheduler 创建任务调度器，submit 为 nil 时任务在 cron 协程中直接执行
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose, submit Submitter) *Scheduler {
	if submit == nil {
		submit = func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }
	}
	return &Scheduler{
		logger: logger,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		submit:  submit,
		sc:      sc,
		timeout: 5 * time.Minute,
	}
}

// AddTask 添加任务，cron 表达式无效时返回错误
func (s *Scheduler) AddTask(task Task) error {
	if _, err := s.cron.AddFunc(task.Spec(), func() { s.runTask(task, "loopRun") }); err != nil {
		return err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// Tasks 已注册的任务
func (s *Scheduler) Tasks() []Task {
	return s.tasks
}

// runTask 执行单个任务，panic 与错误只记录日志
func (s *Scheduler) runTask(task Task, mode string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", task.Name()),
				zap.String("mode", mode),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.submit(ctx, task.Run); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.String("mode", mode),
			zap.Error(err))
		return
	}
	s.logger.Info("task finished",
		zap.String("name", task.Name()),
		zap.String("mode", mode),
		zap.Duration("elapsed", time.Since(start)))
}

// Start 启动调度，收到关闭信号后停止并等待正在执行的任务
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}
	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		if task.IsStartupRun() {
			go s.runTask(task, "startupRun")
		}
	}
	s.cron.Start()

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		<-s.cron.Stop().Done()
		s.logger.Info("tasks stopped")
	})
}
