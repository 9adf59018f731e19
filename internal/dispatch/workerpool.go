package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultTaskTimeout = 30 * time.Second

var ErrQueueFull = errors.New("dispatch queue is full")

// Task is a deferred side effect. It receives a context detached from the
// request that scheduled it.
type Task func(ctx context.Context) error

type ErrorHook func(name string, err error)

// Dispatcher schedules a named side effect without waiting for it.
type Dispatcher interface {
	Submit(name string, task Task) bool
}

type job struct {
	name string
	task Task
}

// WorkerPool runs deferred side effects on a fixed number of goroutines.
// Submit never blocks the caller; failed tasks are reported to the error hook
// and never retried.
type WorkerPool struct {
	mu      sync.RWMutex
	pool    chan job
	closed  bool
	wg      sync.WaitGroup
	onError ErrorHook
	timeout time.Duration
}

type Option func(*WorkerPool)

func WithErrorHook(hook ErrorHook) Option {
	return func(wp *WorkerPool) {
		wp.onError = hook
	}
}

func WithTaskTimeout(d time.Duration) Option {
	return func(wp *WorkerPool) {
		wp.timeout = d
	}
}

func NewWorkerPool(workers, queue int, opts ...Option) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue < 0 {
		queue = 0
	}
	wp := &WorkerPool{
		pool:    make(chan job, queue),
		onError: logError,
		timeout: defaultTaskTimeout,
	}
	for _, opt := range opts {
		opt(wp)
	}

	wp.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go wp.worker()
	}
	return wp
}

func logError(name string, err error) {
	zap.L().Error("deferred task failed", zap.String("task", name), zap.Error(err))
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for j := range wp.pool {
		if err := wp.run(j); err != nil {
			wp.onError(j.name, err)
		}
	}
}

func (wp *WorkerPool) run(j job) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), wp.timeout)
	defer cancel()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return j.task(ctx)
}

// Submit queues task and reports whether it was accepted.
func (wp *WorkerPool) Submit(name string, task Task) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		wp.onError(name, errors.New("dispatch pool is closed"))
		return false
	}
	select {
	case wp.pool <- job{name: name, task: task}:
		return true
	default:
		wp.onError(name, ErrQueueFull)
		return false
	}
}

// Close stops intake and waits for queued tasks to finish.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.pool)
	wp.mu.Unlock()

	wp.wg.Wait()
}
