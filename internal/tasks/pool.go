// ABOUTME: Bounded worker pool for running facade calls off the caller's goroutine.
// ABOUTME: Each submission yields a Task whose result arrives on a channel.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/trainer/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("task pool closed")

// Result is the outcome of a task.
type Result[T any] struct {
	Value T
	Err   error
}

// Task is a handle on a submitted function.
type Task[T any] struct {
	ID     uuid.UUID
	done   chan Result[T]
	cancel context.CancelFunc
}

// Done delivers the result exactly once.
func (t *Task[T]) Done() <-chan Result[T] {
	return t.done
}

// Cancel cancels the context passed to the task function. A task that has
// not started yet finishes with context.Canceled without running.
func (t *Task[T]) Cancel() {
	t.cancel()
}

// Wait blocks for the result or until ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case r := <-t.done:
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Pool runs submitted functions on a fixed number of workers.
type Pool struct {
	jobs   chan func()
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// NewPool starts workers goroutines. A non-positive count uses GOMAXPROCS.
func NewPool(workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:   make(chan func()),
		group:  new(errgroup.Group),
		ctx:    ctx,
		cancel: cancel,
		log:    logging.OrNop(logger),
	}

	for i := 0; i < workers; i++ {
		p.group.Go(func() error {
			for job := range p.jobs {
				job()
			}
			return nil
		})
	}
	return p
}

// Submit queues fn and returns its task. It blocks while every worker is
// busy, until ctx is done.
func Submit[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (*Task[T], error) {
	taskCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(p.ctx, cancel)

	t := &Task[T]{ID: uuid.New(), done: make(chan Result[T], 1), cancel: cancel}
	job := func() {
		defer stop()
		defer cancel()
		t.done <- run(p, taskCtx, t.ID, fn)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		stop()
		cancel()
		return nil, ErrClosed
	}

	select {
	case p.jobs <- job:
		return t, nil
	case <-ctx.Done():
		stop()
		cancel()
		return nil, ctx.Err()
	}
}

// run executes fn and converts a panic into an error.
func run[T any](p *Pool, ctx context.Context, id uuid.UUID, fn func(context.Context) (T, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked", zap.String("task_id", id.String()), zap.Any("panic", r))
			res = Result[T]{Err: fmt.Errorf("task %s panicked: %v", id, r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return Result[T]{Err: err}
	}
	v, err := fn(ctx)
	if err != nil {
		p.log.Debug("task failed", zap.String("task_id", id.String()), zap.Error(err))
	}
	return Result[T]{Value: v, Err: err}
}

// Close stops accepting work, waits for queued tasks to finish, and stops
// the workers. It is safe to call more than once.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	err := p.group.Wait()
	p.cancel()
	return err
}
