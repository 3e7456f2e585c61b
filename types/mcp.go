package types

import "github.com/tasktools/taskwarrior-mcp/models"

// MCP Tool Parameter Types

// CreateTaskParams for creating a new task
type CreateTaskParams struct {
	Description string   `json:"description" mcp:"The main description of the task (required)"`
	Project     string   `json:"project,omitempty" mcp:"The project this task belongs to"`
	Tags        []string `json:"tags,omitempty" mcp:"Tags to categorize and filter tasks"`
	Priority    string   `json:"priority,omitempty" mcp:"Task priority: H (High), M (Medium), L (Low)"`
	Due         string   `json:"due,omitempty" mcp:"Due date in YYYY-MM-DD format"`
	Wait        string   `json:"wait,omitempty" mcp:"Date in YYYY-MM-DD format when the task becomes active"`
	Scheduled   string   `json:"scheduled,omitempty" mcp:"Date in YYYY-MM-DD format when the task should be started"`
}

// StartTaskParams for starting work on a task
type StartTaskParams struct {
	ID   string `json:"id" mcp:"The ID of the task to start working on (required)"`
	Note string `json:"note,omitempty" mcp:"Optional note to add when starting the task"`
}

// StopTaskParams for stopping work on a task
type StopTaskParams struct {
	ID   string `json:"id" mcp:"The ID of the task to stop working on (required)"`
	Note string `json:"note,omitempty" mcp:"Optional note to add when stopping the task"`
}

// CompleteTaskParams for marking a task as done
type CompleteTaskParams struct {
	ID   string `json:"id" mcp:"The ID of the task to mark as complete (required)"`
	Note string `json:"note,omitempty" mcp:"Optional note to add when completing the task"`
}

// AddNoteParams for annotating a task
type AddNoteParams struct {
	ID   string `json:"id" mcp:"The ID of the task to add a note to (required)"`
	Note string `json:"note" mcp:"The note text to add to the task (required)"`
}

// UpdateTaskParams for updating an existing task
type UpdateTaskParams struct {
	ID          string   `json:"id" mcp:"The ID of the task to update (required)"`
	Description string   `json:"description,omitempty" mcp:"New description for the task"`
	Project     string   `json:"project,omitempty" mcp:"New project for the task"`
	Tags        []string `json:"tags,omitempty" mcp:"New tags for the task"`
	Priority    string   `json:"priority,omitempty" mcp:"New priority for the task: H, M, L"`
	Due         string   `json:"due,omitempty" mcp:"New due date in YYYY-MM-DD format"`
	Wait        string   `json:"wait,omitempty" mcp:"New wait date in YYYY-MM-DD format"`
	Scheduled   string   `json:"scheduled,omitempty" mcp:"New scheduled date in YYYY-MM-DD format"`
}

// DeleteTaskParams for deleting a task
type DeleteTaskParams struct {
	ID string `json:"id" mcp:"The ID of the task to delete (required)"`
}

// GetTaskParams for retrieving a specific task
type GetTaskParams struct {
	ID string `json:"id" mcp:"The ID of the task to retrieve (required)"`
}

// ListTasksParams for listing and filtering tasks
type ListTasksParams struct {
	Query string `json:"query,omitempty" mcp:"Optional Taskwarrior filter query to filter the task list"`
}

// MCP Response Types

// TaskListResponse for list operations
type TaskListResponse struct {
	Tasks []models.Task `json:"tasks"`
	Count int           `json:"count"`
}

// DeleteTaskResponse for delete operations
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}
