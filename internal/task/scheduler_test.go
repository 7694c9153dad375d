package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/safe_close"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTask struct {
	spec    string
	startup bool
	ran     chan struct{}
	err     error
}

func (t *fakeTask) Name() string       { return "fake" }
func (t *fakeTask) Spec() string       { return t.spec }
func (t *fakeTask) IsStartupRun() bool { return t.startup }
func (t *fakeTask) Run(ctx context.Context) error {
	t.ran <- struct{}{}
	return t.err
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := NewScheduler(zap.NewNop(), safe_close.NewSafeClose(), nil)
	err := s.AddTask(&fakeTask{spec: "not a cron spec"})
	assert.Error(t, err)
	assert.Empty(t, s.Tasks())
}

func TestScheduler_StartupRunThroughSubmitter(t *testing.T) {
	sc := safe_close.NewSafeClose()
	submitted := make(chan struct{}, 1)
	submit := func(ctx context.Context, fn func(context.Context) error) error {
		submitted <- struct{}{}
		return fn(ctx)
	}
	s := NewScheduler(zap.NewNop(), sc, submit)

	task := &fakeTask{spec: "@hourly", startup: true, ran: make(chan struct{}, 1), err: errors.New("ignored")}
	require.NoError(t, s.AddTask(task))
	s.Start()

	select {
	case <-task.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("startup task did not run")
	}
	assert.Len(t, submitted, 1)

	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())
}

func TestScheduler_RecoversPanic(t *testing.T) {
	s := NewScheduler(zap.NewNop(), safe_close.NewSafeClose(), func(ctx context.Context, fn func(context.Context) error) error {
		panic("submit exploded")
	})
	assert.NotPanics(t, func() {
		s.runTask(&fakeTask{spec: "@hourly"}, "loopRun")
	})
}
