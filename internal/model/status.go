package model

// TaskStatus represents the lifecycle state of a background task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusRunning means a worker is executing the task
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusCompleted means the task finished without an error event
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task reported an error before finishing
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task occupies a worker
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusRunning
}

// IsFinished returns true if the task is in a finished state (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
