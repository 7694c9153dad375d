package task

import (
	"context"

	"github.com/haierkeys/trade-journal-service/internal/app"

	"go.uber.org/zap"
)

// SessionCleanupTask 删除过期会话
type SessionCleanupTask struct {
	app  *app.App
	spec string
}

func (t *SessionCleanupTask) Name() string {
	return "SessionCleanup"
}

func (t *SessionCleanupTask) Spec() string {
	return t.spec
}

func (t *SessionCleanupTask) IsStartupRun() bool {
	return true
}

func (t *SessionCleanupTask) Run(ctx context.Context) error {
	n, err := t.app.AuthService.CleanupSessions(ctx)
	if err != nil {
		return err
	}
	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.Int64("removed", n))
	return nil
}

// NewSessionCleanupTask 创建会话清理任务
func NewSessionCleanupTask(appContainer *app.App) (Task, error) {
	return &SessionCleanupTask{
		app:  appContainer,
		spec: appContainer.Config().Security.SessionCleanupSpec,
	}, nil
}

func init() {
	RegisterWithApp(NewSessionCleanupTask)
}
