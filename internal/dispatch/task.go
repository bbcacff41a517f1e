package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ytget/yt-fetcher/internal/model"
)

// TaskIDPrefix prefixes every generated task ID
const TaskIDPrefix = "task-"

// ErrAlreadySubmitted is returned when subscribing to or resubmitting a task
// that was already handed to a dispatcher
var ErrAlreadySubmitted = errors.New("task already submitted")

// Subscriber receives task events on the worker goroutine
type Subscriber func(model.Event)

// Func is the body of a task. Returning an error produces the task's single
// error event.
type Func func(ctx context.Context, emit *Emitter) error

// Task is one unit of background work
type Task struct {
	id     string
	itemID string
	job    model.JobDescriptor
	fn     Func
	logger *slog.Logger

	mu          sync.Mutex
	subscribers []Subscriber
	submitted   bool
	status      model.TaskStatus
	lastError   string
	done        chan struct{}

	// emitMu serializes delivery so finished is always observed last, even
	// when the engine reports progress from its own goroutine
	emitMu   sync.Mutex
	failed   bool
	finished bool
}

// NewTask creates an unsubmitted task for job
func NewTask(job model.JobDescriptor, fn Func) *Task {
	return &Task{
		id:     generateTaskID(),
		job:    job,
		fn:     fn,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		status: model.TaskStatusPending,
		done:   make(chan struct{}),
	}
}

// WithItemID tags every event of the task with a media item identifier
func (t *Task) WithItemID(itemID string) *Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.submitted {
		t.itemID = itemID
	}
	return t
}

// Subscribe registers s for all events of the task. It must be called before
// the task is submitted.
func (t *Task) Subscribe(s Subscriber) error {
	if s == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.submitted {
		return ErrAlreadySubmitted
	}
	t.subscribers = append(t.subscribers, s)
	return nil
}

// ID returns the task identifier
func (t *Task) ID() string { return t.id }

// markSubmitted flips the task into the dispatcher's ownership exactly once
func (t *Task) markSubmitted(logger *slog.Logger) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.submitted {
		return false
	}
	t.submitted = true
	if logger != nil {
		t.logger = logger.With("task_id", t.id)
	}
	return true
}

func (t *Task) setStatus(status model.TaskStatus) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

func (t *Task) snapshot() (model.TaskStatus, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status, t.lastError
}

// emitProgress delivers a progress event unless the task already failed or finished
func (t *Task) emitProgress(p model.ProgressEvent) {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()
	if t.failed || t.finished {
		return
	}
	t.deliver(model.Event{Kind: model.EventProgress, Progress: p})
}

// emitError delivers the single error event
func (t *Task) emitError(message string) {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()
	if t.failed || t.finished {
		return
	}
	t.failed = true

	t.mu.Lock()
	t.status = model.TaskStatusError
	t.lastError = message
	t.mu.Unlock()

	t.deliver(model.Event{Kind: model.EventError, Message: message})
}

// emitFinished delivers the last event and releases waiters
func (t *Task) emitFinished() {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()
	if t.finished {
		return
	}
	t.finished = true

	t.mu.Lock()
	if t.status != model.TaskStatusError {
		t.status = model.TaskStatusCompleted
	}
	t.mu.Unlock()

	t.deliver(model.Event{Kind: model.EventFinished})
	close(t.done)
}

// deliver calls every subscriber; emitMu must be held
func (t *Task) deliver(ev model.Event) {
	ev.TaskID = t.id
	ev.ItemID = t.itemID

	t.mu.Lock()
	subs := make([]Subscriber, len(t.subscribers))
	copy(subs, t.subscribers)
	t.mu.Unlock()

	for _, s := range subs {
		t.safeCall(s, ev)
	}
}

func (t *Task) safeCall(s Subscriber, ev model.Event) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("subscriber panicked", "event", ev.Kind.String(), "panic", r)
		}
	}()
	s(ev)
}

// Emitter is handed to a running task body
type Emitter struct {
	t *Task
}

// Progress reports advancement of the task
func (e *Emitter) Progress(p model.ProgressEvent) {
	e.t.emitProgress(p)
}

// TaskID returns the ID of the running task
func (e *Emitter) TaskID() string { return e.t.id }

// Logger returns the task-scoped logger
func (e *Emitter) Logger() *slog.Logger { return e.t.logger }

// Handle is the submitter's reference to an in-flight task
type Handle struct {
	t *Task
}

// ID returns the task identifier
func (h *Handle) ID() string { return h.t.id }

// ItemID returns the media item the task works on, if any
func (h *Handle) ItemID() string { return h.t.itemID }

// Job returns the task's descriptor
func (h *Handle) Job() model.JobDescriptor { return h.t.job }

// Status returns the current task status
func (h *Handle) Status() model.TaskStatus {
	status, _ := h.t.snapshot()
	return status
}

// LastError returns the message of the error event, if one fired
func (h *Handle) LastError() string {
	_, msg := h.t.snapshot()
	return msg
}

// Done is closed after the finished event was delivered
func (h *Handle) Done() <-chan struct{} { return h.t.done }

// Wait blocks until the task finished or ctx is done
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ChannelSubscriber forwards events into ch. The consumer must keep draining
// ch, otherwise the worker blocks.
func ChannelSubscriber(ch chan<- model.Event) Subscriber {
	return func(ev model.Event) {
		ch <- ev
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return TaskIDPrefix + uuid.NewString()
}
