package mcp

import (
	"context"
	"errors"

	"github.com/tasktools/taskwarrior-mcp/models"
)

const testUUID = "a5f9c0d2-3b4e-4c6d-9e8f-1a2b3c4d5e6f"

var errProcess = errors.New("task exited with status 1")

// fakeTaskService answers from canned state and records what was asked of it.
type fakeTaskService struct {
	tasks    map[string]models.Task
	pending  []models.Task
	projects []string
	tags     []string
	failWith error

	listQueries []string
	annotations []string
	started     []string
	stopped     []string
	completed   []string
	deleted     []string
}

func newFakeTaskService() *fakeTaskService {
	return &fakeTaskService{tasks: make(map[string]models.Task)}
}

func (f *fakeTaskService) addTask(task models.Task) {
	f.tasks[task.ID] = task
}

func (f *fakeTaskService) CreateTask(ctx context.Context, update models.TaskUpdate) (models.Task, error) {
	if f.failWith != nil {
		return models.Task{}, f.failWith
	}
	task := models.Task{
		ID:          testUUID,
		Description: update.Description,
		Status:      models.StatusPending,
		Project:     update.Project,
		Tags:        update.Tags,
		Priority:    models.PriorityMedium,
		Entry:       "2024-01-10T08:00:00Z",
		Modified:    "2024-01-10T08:00:00Z",
	}
	f.addTask(task)
	return task, nil
}

func (f *fakeTaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (f *fakeTaskService) ListTasks(ctx context.Context, query models.TaskQuery) ([]models.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.listQueries = append(f.listQueries, query.Query)
	return f.pending, nil
}

func (f *fakeTaskService) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) (models.Task, error) {
	if f.failWith != nil {
		return models.Task{}, f.failWith
	}
	task, ok := f.tasks[id]
	if !ok {
		return models.Task{}, errors.New("not found: " + id)
	}
	if update.Description != "" {
		task.Description = update.Description
	}
	f.tasks[id] = task
	return task, nil
}

func (f *fakeTaskService) UpdateDependencies(ctx context.Context, id string, deps []string) (models.Task, error) {
	task := f.tasks[id]
	task.Dependencies = deps
	f.tasks[id] = task
	return task, nil
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, id string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if _, ok := f.tasks[id]; !ok {
		return false, nil
	}
	delete(f.tasks, id)
	f.deleted = append(f.deleted, id)
	return true, nil
}

func (f *fakeTaskService) StartTask(ctx context.Context, id string) (models.Task, error) {
	if f.failWith != nil {
		return models.Task{}, f.failWith
	}
	f.started = append(f.started, id)
	return f.tasks[id], nil
}

func (f *fakeTaskService) StopTask(ctx context.Context, id string) (models.Task, error) {
	if f.failWith != nil {
		return models.Task{}, f.failWith
	}
	f.stopped = append(f.stopped, id)
	return f.tasks[id], nil
}

func (f *fakeTaskService) CompleteTask(ctx context.Context, id string) (models.Task, error) {
	if f.failWith != nil {
		return models.Task{}, f.failWith
	}
	f.completed = append(f.completed, id)
	return f.tasks[id], nil
}

func (f *fakeTaskService) AddAnnotation(ctx context.Context, id, description string) (models.Task, error) {
	if f.failWith != nil {
		return models.Task{}, f.failWith
	}
	f.annotations = append(f.annotations, description)
	task := f.tasks[id]
	task.Annotations = append(task.Annotations, models.Annotation{
		Date:        "2024-01-10T08:00:00Z",
		Description: description,
	})
	f.tasks[id] = task
	return task, nil
}

func (f *fakeTaskService) AvailableProjects(ctx context.Context) ([]string, error) {
	return f.projects, nil
}

func (f *fakeTaskService) AvailableTags(ctx context.Context) ([]string, error) {
	return f.tags, nil
}

func pendingTask(id, description string) models.Task {
	return models.Task{
		ID:          id,
		Description: description,
		Status:      models.StatusPending,
		Priority:    models.PriorityMedium,
		Entry:       "2024-01-10T08:00:00Z",
		Modified:    "2024-01-10T08:00:00Z",
	}
}
