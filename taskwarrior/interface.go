package taskwarrior

import (
	"context"

	"github.com/tasktools/taskwarrior-mcp/models"
)

// TaskService defines the contract the MCP handlers and the completion layer
// program against. *Service is the production implementation; tests
// substitute fakes.
type TaskService interface {
	// CreateTask adds a new task and returns its authoritative state as
	// exported by Taskwarrior after creation.
	CreateTask(ctx context.Context, update models.TaskUpdate) (models.Task, error)

	// GetTask retrieves a task by UUID. A nil task with a nil error means the
	// task does not exist; errors are reserved for process failures.
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// ListTasks retrieves tasks matching a native-language filter query.
	// Soft-deleted tasks are excluded unless the query requests them.
	ListTasks(ctx context.Context, query models.TaskQuery) ([]models.Task, error)

	// UpdateTask applies a partial update to a task and returns the
	// re-fetched state.
	UpdateTask(ctx context.Context, id string, update models.TaskUpdate) (models.Task, error)

	// UpdateDependencies applies each dependency as its own modification and
	// returns the re-fetched state.
	UpdateDependencies(ctx context.Context, id string, dependencies []string) (models.Task, error)

	// DeleteTask removes a task. It reports false, without error, when the
	// task does not exist, making deletion idempotent.
	DeleteTask(ctx context.Context, id string) (bool, error)

	// StartTask and StopTask toggle the task's active timer.
	StartTask(ctx context.Context, id string) (models.Task, error)
	StopTask(ctx context.Context, id string) (models.Task, error)

	// CompleteTask marks a task done.
	CompleteTask(ctx context.Context, id string) (models.Task, error)

	// AddAnnotation appends a timestamped note to a task.
	AddAnnotation(ctx context.Context, id, description string) (models.Task, error)

	// AvailableProjects and AvailableTags enumerate the known project and tag
	// names, in Taskwarrior's reporting order.
	AvailableProjects(ctx context.Context) ([]string, error)
	AvailableTags(ctx context.Context) ([]string, error)
}

var _ TaskService = (*Service)(nil)
