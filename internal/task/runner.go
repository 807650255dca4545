package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the TaskRunner
var (
	ErrQueueFull    = errors.New("task queue is full")
	ErrRunnerClosed = errors.New("task runner is stopped")
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// TaskRunner manages background task processing over an in-memory
// queue. Tasks are fire-and-forget: a restart loses whatever was
// queued, which is acceptable because every task here is re-derivable
// from persistent state on the next trigger.
type TaskRunner struct {
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)

	mu      sync.Mutex
	stopped bool
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
		config.WorkerCount = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultTaskRunnerConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "task_runner"),
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit adds a new task to the queue
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return ErrRunnerClosed
	}
	r.mu.Unlock()

	select {
	case r.taskChan <- task:
		r.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"queue_len", len(r.taskChan),
			"queue_cap", cap(r.taskChan))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(r.taskChan))
	}
}

// Start initializes the worker pool and begins processing tasks
func (r *TaskRunner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop gracefully shuts down the task runner. Workers drain in-flight
// work and exit; further Submit calls fail with ErrRunnerClosed.
//
// The task channel is never closed: a Submit racing with Stop may still
// be past the stopped check, and a send on a closed channel would
// panic. Workers exit on context cancellation instead, and a task
// enqueued during the race is simply never picked up.
func (r *TaskRunner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	r.cancelFunc()
	r.wg.Wait()
}

// worker processes tasks from the queue
func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case task := <-r.taskChan:
			r.processTask(task, id)
		}
	}
}

// processTask handles execution of a single task
func (r *TaskRunner) processTask(task Task, workerID int) {
	ctx := context.Background()
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	if setter, ok := task.(statusSetter); ok {
		setter.setStatus(TaskStatusProcessing)
	}

	logger.Info("processing task")

	err := task.Execute(ctx)
	if err != nil {
		logger.Error("task execution failed", "error", err)
		if setter, ok := task.(statusSetter); ok {
			setter.setStatus(TaskStatusFailed)
		}
		r.errHandler(task, err)
		return
	}

	logger.Info("task completed successfully")
	if setter, ok := task.(statusSetter); ok {
		setter.setStatus(TaskStatusCompleted)
	}
}
