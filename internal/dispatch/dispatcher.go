package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/ytget/yt-fetcher/internal/model"
)

// ErrClosed is returned by Submit after Close was called
var ErrClosed = errors.New("dispatcher closed")

// Submitter accepts tasks for background execution
type Submitter interface {
	Submit(t *Task) (*Handle, error)
}

// Dispatcher runs tasks on at most maxWorkers goroutines. Submit never
// blocks; overflow waits in a queue.
type Dispatcher struct {
	mu          sync.Mutex
	maxWorkers  int
	activeCount int
	pending     []*Task
	closed      bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *slog.Logger
}

// DefaultWorkers is the pool size used when none is configured
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// New creates a dispatcher; maxWorkers <= 0 selects DefaultWorkers
func New(maxWorkers int, logger *slog.Logger) *Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = DefaultWorkers()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		maxWorkers: maxWorkers,
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
	}
	d.logger.Info("dispatcher started", "max_workers", maxWorkers)
	return d
}

// Submit schedules t. A task can be submitted once.
func (d *Dispatcher) Submit(t *Task) (*Handle, error) {
	if t == nil {
		return nil, fmt.Errorf("nil task")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if !t.markSubmitted(d.logger) {
		return nil, ErrAlreadySubmitted
	}

	d.wg.Add(1)
	if d.activeCount < d.maxWorkers {
		d.activeCount++
		go d.worker(t)
	} else {
		d.pending = append(d.pending, t)
		t.logger.Debug("task queued", "pending", len(d.pending))
	}

	return &Handle{t: t}, nil
}

// worker runs t and keeps pulling queued tasks until the queue is empty
func (d *Dispatcher) worker(t *Task) {
	for t != nil {
		d.execute(t)
		d.wg.Done()
		t = d.next()
	}
}

// next pops the next queued task, or releases the worker slot
func (d *Dispatcher) next() *Task {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		d.activeCount--
		return nil
	}
	t := d.pending[0]
	d.pending[0] = nil
	d.pending = d.pending[1:]
	return t
}

// execute runs one task and emits its terminal events
func (d *Dispatcher) execute(t *Task) {
	started := time.Now()
	t.setStatus(model.TaskStatusRunning)
	t.logger.Debug("task started", "job", t.job.String())

	if err := d.invoke(t); err != nil {
		t.logger.Error("task failed", "job", t.job.String(), "error", err)
		t.emitError(err.Error())
	}
	t.emitFinished()

	t.logger.Debug("task finished", "elapsed", time.Since(started))
}

// invoke calls the task body, converting a panic into an error
func (d *Dispatcher) invoke(t *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return t.fn(d.ctx, &Emitter{t: t})
}

// ActiveCount returns the number of busy workers
func (d *Dispatcher) ActiveCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activeCount
}

// PendingCount returns the number of queued tasks
func (d *Dispatcher) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// MaxWorkers returns the pool size
func (d *Dispatcher) MaxWorkers() int {
	return d.maxWorkers
}

// Close stops accepting tasks and waits for submitted ones to finish. When
// ctx expires first, running engine calls are cancelled and ctx.Err() is
// returned.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(drained)
	}()

	defer d.cancel()
	select {
	case <-drained:
		d.logger.Info("dispatcher drained")
		return nil
	case <-ctx.Done():
		d.logger.Warn("dispatcher close timed out, cancelling running tasks")
		return ctx.Err()
	}
}
