package taskwarrior

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/tasktools/taskwarrior-mcp/models"
)

// uuidRe extracts the task UUID from the add command's confirmation text.
// Coupled to Taskwarrior's human-readable output format; a missing match is
// surfaced as ErrCreationFailed.
var uuidRe = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// Service exposes task CRUD and lifecycle operations over the external task
// binary. Every mutation follows command, re-fetch, return re-fetched state:
// Taskwarrior is the sole source of truth and applies derived fields (urgency,
// recurrence expansion) this side cannot replicate.
type Service struct {
	exec Executor
}

// NewService builds a Service on top of the given executor.
func NewService(exec Executor) *Service {
	return &Service{exec: exec}
}

// CreateTask issues an add command, extracts the new task's UUID from the
// confirmation output, and returns the freshly exported task.
func (s *Service) CreateTask(ctx context.Context, update models.TaskUpdate) (models.Task, error) {
	args := append([]string{"add"}, BuildTaskArgs(update)...)
	out, err := s.exec.Run(ctx, args...)
	if err != nil {
		return models.Task{}, err
	}

	id := uuidRe.FindString(out)
	if id == "" {
		return models.Task{}, fmt.Errorf("%w: no task UUID in output %q", ErrCreationFailed, strings.TrimSpace(out))
	}
	if _, err := uuid.Parse(id); err != nil {
		return models.Task{}, fmt.Errorf("%w: malformed task UUID %q", ErrCreationFailed, id)
	}

	created, err := s.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if created == nil {
		return models.Task{}, fmt.Errorf("%w: created task %s", ErrNotFound, id)
	}
	return *created, nil
}

// GetTask exports a single task by UUID. A missing task is reported as a nil
// result, not an error.
func (s *Service) GetTask(ctx context.Context, id string) (*models.Task, error) {
	tasks, err := s.export(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

// ListTasks exports tasks matching the query. Soft-deleted tasks are excluded
// unless the caller's query asks for them explicitly.
func (s *Service) ListTasks(ctx context.Context, query models.TaskQuery) ([]models.Task, error) {
	filter := "-DELETED"
	if query.Query != "" {
		filter = SanitizeQuery(query.Query)
		if !strings.Contains(query.Query, "+DELETED") {
			filter += " -DELETED"
		}
	}
	return s.export(ctx, strings.Fields(filter)...)
}

// UpdateTask issues a modify command scoped to the ID, then re-fetches.
func (s *Service) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) (models.Task, error) {
	args := append([]string{id, "modify"}, BuildTaskArgs(update)...)
	if _, err := s.exec.Run(ctx, args...); err != nil {
		return models.Task{}, err
	}
	return s.refetch(ctx, id, "updated")
}

// UpdateDependencies applies each dependency as a separate modify command,
// then re-fetches the task.
func (s *Service) UpdateDependencies(ctx context.Context, id string, dependencies []string) (models.Task, error) {
	for _, dep := range dependencies {
		if _, err := s.exec.Run(ctx, id, "modify", "depends:"+dep); err != nil {
			return models.Task{}, err
		}
	}
	return s.refetch(ctx, id, "with updated dependencies")
}

// DeleteTask removes a task by UUID. Deleting a task that does not exist is a
// no-op reported as false, which makes the operation idempotent.
func (s *Service) DeleteTask(ctx context.Context, id string) (bool, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return false, err
	}
	if task == nil {
		return false, nil
	}
	if _, err := s.exec.Run(ctx, id, "delete", "rc.confirmation=off"); err != nil {
		return false, err
	}
	return true, nil
}

// StartTask starts the task's active timer and returns the refreshed task.
func (s *Service) StartTask(ctx context.Context, id string) (models.Task, error) {
	if _, err := s.exec.Run(ctx, id, "start"); err != nil {
		return models.Task{}, err
	}
	return s.refetch(ctx, id, "started")
}

// StopTask stops the task's active timer and returns the refreshed task.
func (s *Service) StopTask(ctx context.Context, id string) (models.Task, error) {
	if _, err := s.exec.Run(ctx, id, "stop"); err != nil {
		return models.Task{}, err
	}
	return s.refetch(ctx, id, "stopped")
}

// CompleteTask marks the task done and returns the refreshed task.
func (s *Service) CompleteTask(ctx context.Context, id string) (models.Task, error) {
	if _, err := s.exec.Run(ctx, id, "done"); err != nil {
		return models.Task{}, err
	}
	return s.refetch(ctx, id, "completed")
}

// AddAnnotation attaches a timestamped note to the task and returns the
// refreshed task.
func (s *Service) AddAnnotation(ctx context.Context, id, description string) (models.Task, error) {
	if _, err := s.exec.Run(ctx, id, "annotate", description); err != nil {
		return models.Task{}, err
	}
	return s.refetch(ctx, id, "annotated")
}

// AvailableProjects lists the project names known to Taskwarrior.
func (s *Service) AvailableProjects(ctx context.Context) ([]string, error) {
	return s.availableItems(ctx, "projects", "project")
}

// AvailableTags lists the tag names known to Taskwarrior.
func (s *Service) AvailableTags(ctx context.Context) ([]string, error) {
	return s.availableItems(ctx, "tags", "tag")
}

// export runs `task <filter...> export` and maps every record.
func (s *Service) export(ctx context.Context, filter ...string) ([]models.Task, error) {
	args := append(filter, "export")
	out, err := s.exec.Run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var raw []rawTask
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("%w: export returned invalid JSON: %v", ErrProcessFailure, err)
	}

	tasks := make([]models.Task, 0, len(raw))
	for _, record := range raw {
		task, err := mapTask(record)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// refetch returns the authoritative post-mutation state of a task. The
// command's own output is never trusted to reconstruct it.
func (s *Service) refetch(ctx context.Context, id, action string) (models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if task == nil {
		return models.Task{}, fmt.Errorf("%w: failed to retrieve %s task %s", ErrNotFound, action, id)
	}
	return *task, nil
}

// availableItems parses the tabular output of `task projects` / `task tags`:
// a header line, data lines whose first column is the item name, and a
// trailing summary line mentioning the item kind.
func (s *Service) availableItems(ctx context.Context, command, headerText string) ([]string, error) {
	out, err := s.exec.Run(ctx, command)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(out, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}

	var items []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.Contains(strings.ToLower(trimmed), headerText) {
			continue
		}
		if fields := strings.Fields(trimmed); len(fields) > 0 {
			items = append(items, fields[0])
		}
	}
	return items, nil
}
