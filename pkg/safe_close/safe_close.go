// Package safe_close 协调多个后台协程的统一关闭
package safe_close

import (
	"sync"
)

// SafeClose 发出一次关闭信号，并等待所有挂载的协程退出
type SafeClose struct {
	mu      sync.Mutex
	once    sync.Once
	closeCh chan struct{}
	wg      sync.WaitGroup
	err     error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{closeCh: make(chan struct{})}
}

// Attach 启动一个协程，fn 在收到 closeSignal 后清理并调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var doneOnce sync.Once
	go fn(func() { doneOnce.Do(s.wg.Done) }, s.closeCh)
}

// SendCloseSignal 发送关闭信号，只有第一次调用的 err 会被保留
func (s *SafeClose) SendCloseSignal(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeCh)
	})
}

// CloseSignal 关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeCh
}

// WaitClosed 等待所有协程退出，返回触发关闭的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
