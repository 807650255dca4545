package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTask is a controllable Task implementation for runner tests.
type mockTask struct {
	BaseTask
	executeErr error
	executed   chan struct{}
	once       sync.Once
}

func newMockTask(executeErr error) *mockTask {
	return &mockTask{
		BaseTask:   NewBaseTask(),
		executeErr: executeErr,
		executed:   make(chan struct{}),
	}
}

func (t *mockTask) Type() string {
	return "mock_task"
}

func (t *mockTask) Execute(ctx context.Context) error {
	t.once.Do(func() { close(t.executed) })
	return t.executeErr
}

func (t *mockTask) waitExecuted(tb testing.TB) {
	tb.Helper()
	select {
	case <-t.executed:
	case <-time.After(2 * time.Second):
		tb.Fatal("task was not executed in time")
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTaskRunnerExecutesSubmittedTask(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 10}, testLogger())
	runner.Start()
	defer runner.Stop()

	mt := newMockTask(nil)
	require.NoError(t, runner.Submit(context.Background(), mt))

	mt.waitExecuted(t)

	// Status transition settles shortly after execution returns.
	assert.Eventually(t, func() bool {
		return mt.Status() == TaskStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTaskRunnerMarksFailedTask(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 10}, testLogger())

	var handlerCalled sync.WaitGroup
	handlerCalled.Add(1)
	var handledErr error
	runner.SetErrorHandler(func(task Task, err error) {
		handledErr = err
		handlerCalled.Done()
	})

	runner.Start()
	defer runner.Stop()

	execErr := errors.New("boom")
	mt := newMockTask(execErr)
	require.NoError(t, runner.Submit(context.Background(), mt))

	mt.waitExecuted(t)
	handlerCalled.Wait()

	assert.ErrorIs(t, handledErr, execErr)
	assert.Equal(t, TaskStatusFailed, mt.Status())
}

func TestTaskRunnerQueueFull(t *testing.T) {
	// No workers started, so the queue never drains.
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, testLogger())

	require.NoError(t, runner.Submit(context.Background(), newMockTask(nil)))

	err := runner.Submit(context.Background(), newMockTask(nil))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestTaskRunnerSubmitAfterStop(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, testLogger())
	runner.Start()
	runner.Stop()

	err := runner.Submit(context.Background(), newMockTask(nil))
	assert.ErrorIs(t, err, ErrRunnerClosed)
}

func TestTaskRunnerConcurrentSubmitDuringStop(t *testing.T) {
	// Submissions racing with shutdown must either enqueue or fail with
	// ErrRunnerClosed, never panic on the task channel.
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 2, QueueSize: 100}, testLogger())
	runner.Start()

	var submitters sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		submitters.Add(1)
		go func() {
			defer submitters.Done()
			<-start
			for j := 0; j < 50; j++ {
				err := runner.Submit(context.Background(), newMockTask(nil))
				if errors.Is(err, ErrQueueFull) {
					continue
				}
				if err != nil {
					assert.ErrorIs(t, err, ErrRunnerClosed)
					return
				}
			}
		}()
	}

	close(start)
	runner.Stop()
	submitters.Wait()

	err := runner.Submit(context.Background(), newMockTask(nil))
	assert.ErrorIs(t, err, ErrRunnerClosed)
}

func TestTaskRunnerStopIsIdempotent(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 2, QueueSize: 5}, testLogger())
	runner.Start()

	runner.Stop()
	runner.Stop()
}

func TestBaseTaskStatusDefaultsToPending(t *testing.T) {
	mt := newMockTask(nil)
	assert.Equal(t, TaskStatusPending, mt.Status())
	assert.NotEqual(t, "", mt.ID().String())
}
