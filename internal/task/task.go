package task

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task type constants
const (
	// TaskTypeEngagementCheck represents the daily engagement
	// notification check
	TaskTypeEngagementCheck = "engagement_check"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Status returns the current task status
	Status() TaskStatus

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// statusSetter is implemented by tasks whose status the runner tracks.
// Tasks get it for free by embedding BaseTask.
type statusSetter interface {
	setStatus(status TaskStatus)
}

// BaseTask supplies identity and thread-safe status tracking for
// concrete task types. Embed it and implement Type and Execute.
type BaseTask struct {
	id     uuid.UUID
	mu     sync.RWMutex
	status TaskStatus
}

// NewBaseTask creates a BaseTask in the pending state.
func NewBaseTask() BaseTask {
	return BaseTask{
		id:     uuid.New(),
		status: TaskStatusPending,
	}
}

// ID returns the task's unique identifier.
func (t *BaseTask) ID() uuid.UUID {
	return t.id
}

// Status returns the current task status.
func (t *BaseTask) Status() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *BaseTask) setStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
}
