package task

import (
	"context"

	"github.com/haierkeys/trade-journal-service/internal/app"

	"go.uber.org/zap"
)

// ShareCleanupTask 删除过期的计划分享
type ShareCleanupTask struct {
	app  *app.App
	spec string
}

func (t *ShareCleanupTask) Name() string {
	return "ShareCleanup"
}

func (t *ShareCleanupTask) Spec() string {
	return t.spec
}

func (t *ShareCleanupTask) IsStartupRun() bool {
	return false
}

func (t *ShareCleanupTask) Run(ctx context.Context) error {
	n, err := t.app.PlanService.CleanupShares(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		t.app.Logger().Info("task log",
			zap.String("task", t.Name()),
			zap.Int64("removed", n))
	}
	return nil
}

// NewShareCleanupTask 创建分享清理任务，未配置 cron 表达式时不启用
func NewShareCleanupTask(appContainer *app.App) (Task, error) {
	spec := appContainer.Config().Share.CleanupSpec
	if spec == "" {
		return nil, nil
	}
	return &ShareCleanupTask{app: appContainer, spec: spec}, nil
}

func init() {
	RegisterWithApp(NewShareCleanupTask)
}
