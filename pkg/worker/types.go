package worker

import "time"

// Status represents the current state of the worker pool
type Status string

const (
	// StatusIdle indicates the pool is started and waiting for tasks
	StatusIdle Status = "idle"

	// StatusProcessing indicates tasks are queued or running
	StatusProcessing Status = "processing"

	// StatusShuttingDown indicates the queue is closed and tasks are still
	// draining
	StatusShuttingDown Status = "shutting_down"

	// StatusStopped indicates the pool is not started, was stopped, or has
	// drained after Wait
	StatusStopped Status = "stopped"
)

// Stats provides runtime statistics about the worker pool
type Stats struct {
	ActiveWorkers  int
	QueuedTasks    int
	CompletedTasks int
	FailedTasks    int
	Status         Status
	Uptime         time.Duration
}
