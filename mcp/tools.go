package mcp

// Task tools: create, start, stop, complete, add_note, update, delete, get, list.
// Every handler is total from the caller's perspective: a failed operation
// yields a textual error result with IsError set, never a protocol fault.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tasktools/taskwarrior-mcp/models"
	"github.com/tasktools/taskwarrior-mcp/taskwarrior"
	"github.com/tasktools/taskwarrior-mcp/types"
)

// RegisterTools registers the nine task tools against the server.
func RegisterTools(server *mcpsdk.Server, tasks taskwarrior.TaskService) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "create_task",
		Description: "Create a new task in Taskwarrior. You can specify the task's description, project, tags, priority, and various dates.",
	}, createTaskHandler(tasks))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "start_task",
		Description: "Start working on a task. This starts the task's timer and optionally adds a note about why you're starting it.",
	}, startTaskHandler(tasks))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "stop_task",
		Description: "Stop working on a task. This stops the task's timer and optionally adds a note about why you're stopping.",
	}, stopTaskHandler(tasks))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "complete_task",
		Description: "Mark a task as complete, optionally adding a final note about the completion.",
	}, completeTaskHandler(tasks))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add_note",
		Description: "Add a timestamped annotation to a task. Useful for tracking progress or changes over time.",
	}, addNoteHandler(tasks))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "update_task",
		Description: "Update an existing task's properties. Supports partial updates - only provide fields you want to change.",
	}, updateTaskHandler(tasks))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "delete_task",
		Description: "Delete a task from your task list. Deleting a task that does not exist reports failure-to-delete rather than an error.",
	}, deleteTaskHandler(tasks))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get_task",
		Description: "Get detailed information about a specific task, including its dates, annotations, and computed urgency.",
	}, getTaskHandler(tasks))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_tasks",
		Description: "List tasks with optional filtering using Taskwarrior's filter syntax.",
	}, listTasksHandler(tasks))
}

// createTaskHandler creates a new task
func createTaskHandler(tasks taskwarrior.TaskService) mcpsdk.ToolHandlerFor[types.CreateTaskParams, models.Task] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.CreateTaskParams]) (*mcpsdk.CallToolResultFor[models.Task], error) {
		args := params.Arguments
		logToolCall("create_task", args)

		if strings.TrimSpace(args.Description) == "" {
			return errorResult[models.Task]("Error creating task", types.NewMCPError("MISSING_DESCRIPTION", "Task description is required", map[string]interface{}{
				"field": "description",
			})), nil
		}

		update := models.TaskUpdate{
			Description: strings.TrimSpace(args.Description),
			Project:     args.Project,
			Tags:        args.Tags,
			Priority:    models.TaskPriority(args.Priority),
			Due:         args.Due,
			Wait:        args.Wait,
			Scheduled:   args.Scheduled,
		}
		if err := models.ValidateStruct(update); err != nil {
			return errorResult[models.Task]("Error creating task", err), nil
		}

		task, err := tasks.CreateTask(ctx, update)
		if err != nil {
			return errorResult[models.Task]("Error creating task", err), nil
		}

		logInfo(fmt.Sprintf("Created task: %s", task.ID))
		return taskResult(task), nil
	}
}

// startTaskHandler starts a task's timer, optionally annotating it
func startTaskHandler(tasks taskwarrior.TaskService) mcpsdk.ToolHandlerFor[types.StartTaskParams, models.Task] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.StartTaskParams]) (*mcpsdk.CallToolResultFor[models.Task], error) {
		args := params.Arguments
		logToolCall("start_task", args)

		task, err := tasks.StartTask(ctx, args.ID)
		if err != nil {
			return errorResult[models.Task]("Error starting task", err), nil
		}
		if args.Note != "" {
			if task, err = tasks.AddAnnotation(ctx, args.ID, args.Note); err != nil {
				return errorResult[models.Task]("Error starting task", err), nil
			}
		}

		logInfo(fmt.Sprintf("Started task: %s", task.ID))
		return taskResult(task), nil
	}
}

// stopTaskHandler stops a task's timer, optionally annotating it
func stopTaskHandler(tasks taskwarrior.TaskService) mcpsdk.ToolHandlerFor[types.StopTaskParams, models.Task] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.StopTaskParams]) (*mcpsdk.CallToolResultFor[models.Task], error) {
		args := params.Arguments
		logToolCall("stop_task", args)

		task, err := tasks.StopTask(ctx, args.ID)
		if err != nil {
			return errorResult[models.Task]("Error stopping task", err), nil
		}
		if args.Note != "" {
			if task, err = tasks.AddAnnotation(ctx, args.ID, args.Note); err != nil {
				return errorResult[models.Task]("Error stopping task", err), nil
			}
		}

		logInfo(fmt.Sprintf("Stopped task: %s", task.ID))
		return taskResult(task), nil
	}
}

// completeTaskHandler marks a task done, optionally annotating it
func completeTaskHandler(tasks taskwarrior.TaskService) mcpsdk.ToolHandlerFor[types.CompleteTaskParams, models.Task] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.CompleteTaskParams]) (*mcpsdk.CallToolResultFor[models.Task], error) {
		args := params.Arguments
		logToolCall("complete_task", args)

		task, err := tasks.CompleteTask(ctx, args.ID)
		if err != nil {
			return errorResult[models.Task]("Error completing task", err), nil
		}
		if args.Note != "" {
			if task, err = tasks.AddAnnotation(ctx, args.ID, args.Note); err != nil {
				return errorResult[models.Task]("Error completing task", err), nil
			}
		}

		logInfo(fmt.Sprintf("Completed task: %s", task.ID))
		return taskResult(task), nil
	}
}

// addNoteHandler appends an annotation to a task
func addNoteHandler(tasks taskwarrior.TaskService) mcpsdk.ToolHandlerFor[types.AddNoteParams, models.Task] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.AddNoteParams]) (*mcpsdk.CallToolResultFor[models.Task], error) {
		args := params.Arguments
		logToolCall("add_note", args)

		if strings.TrimSpace(args.Note) == "" {
			return errorResult[models.Task]("Error adding note", types.NewMCPError("MISSING_NOTE", "Note text is required", nil)), nil
		}

		task, err := tasks.AddAnnotation(ctx, args.ID, args.Note)
		if err != nil {
			return errorResult[models.Task]("Error adding note", err), nil
		}

		logInfo(fmt.Sprintf("Annotated task: %s", task.ID))
		return taskResult(task), nil
	}
}

// updateTaskHandler applies a partial update to a task
func updateTaskHandler(tasks taskwarrior.TaskService) mcpsdk.ToolHandlerFor[types.UpdateTaskParams, models.Task] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.UpdateTaskParams]) (*mcpsdk.CallToolResultFor[models.Task], error) {
		args := params.Arguments
		logToolCall("update_task", args)

		if strings.TrimSpace(args.ID) == "" {
			return errorResult[models.Task]("Error updating task", types.NewMCPError("MISSING_ID", "Task ID is required for update", nil)), nil
		}

		update := models.TaskUpdate{
			Description: args.Description,
			Project:     args.Project,
			Tags:        args.Tags,
			Priority:    models.TaskPriority(args.Priority),
			Due:         args.Due,
			Wait:        args.Wait,
			Scheduled:   args.Scheduled,
		}
		if err := models.ValidateStruct(update); err != nil {
			return errorResult[models.Task]("Error updating task", err), nil
		}

		task, err := tasks.UpdateTask(ctx, args.ID, update)
		if err != nil {
			return errorResult[models.Task]("Error updating task", err), nil
		}

		logInfo(fmt.Sprintf("Updated task: %s", task.ID))
		return taskResult(task), nil
	}
}

// deleteTaskHandler deletes a task; deleting a missing task reports Deleted=false
func deleteTaskHandler(tasks taskwarrior.TaskService) mcpsdk.ToolHandlerFor[types.DeleteTaskParams, types.DeleteTaskResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.DeleteTaskParams]) (*mcpsdk.CallToolResultFor[types.DeleteTaskResponse], error) {
		args := params.Arguments
		logToolCall("delete_task", args)

		deleted, err := tasks.DeleteTask(ctx, args.ID)
		if err != nil {
			return errorResult[types.DeleteTaskResponse]("Error deleting task", err), nil
		}

		response := types.DeleteTaskResponse{
			Deleted: deleted,
			TaskID:  args.ID,
			Message: "Task deleted successfully",
		}
		if !deleted {
			response.Message = fmt.Sprintf("Task not found: %s", args.ID)
		}

		logInfo(response.Message)
		return &mcpsdk.CallToolResultFor[types.DeleteTaskResponse]{
			Content: []mcpsdk.Content{
				&mcpsdk.TextContent{Text: response.Message},
			},
			StructuredContent: response,
		}, nil
	}
}

// getTaskHandler retrieves a specific task
func getTaskHandler(tasks taskwarrior.TaskService) mcpsdk.ToolHandlerFor[types.GetTaskParams, models.Task] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.GetTaskParams]) (*mcpsdk.CallToolResultFor[models.Task], error) {
		args := params.Arguments
		logToolCall("get_task", args)

		task, err := tasks.GetTask(ctx, args.ID)
		if err != nil {
			return errorResult[models.Task]("Error getting task", err), nil
		}
		if task == nil {
			return &mcpsdk.CallToolResultFor[models.Task]{
				Content: []mcpsdk.Content{
					&mcpsdk.TextContent{Text: fmt.Sprintf("Task not found: %s", args.ID)},
				},
				IsError: true,
			}, nil
		}

		return taskResult(*task), nil
	}
}

// listTasksHandler lists tasks with an optional filter query
func listTasksHandler(tasks taskwarrior.TaskService) mcpsdk.ToolHandlerFor[types.ListTasksParams, types.TaskListResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ListTasksParams]) (*mcpsdk.CallToolResultFor[types.TaskListResponse], error) {
		args := params.Arguments
		logToolCall("list_tasks", args)

		list, err := tasks.ListTasks(ctx, models.TaskQuery{Query: args.Query})
		if err != nil {
			return errorResult[types.TaskListResponse]("Error listing tasks", err), nil
		}

		response := types.TaskListResponse{Tasks: list, Count: len(list)}
		payload, err := json.Marshal(response.Tasks)
		if err != nil {
			return errorResult[types.TaskListResponse]("Error listing tasks", err), nil
		}

		logInfo(fmt.Sprintf("Listed %d tasks", len(list)))
		return &mcpsdk.CallToolResultFor[types.TaskListResponse]{
			Content: []mcpsdk.Content{
				&mcpsdk.TextContent{Text: string(payload)},
			},
			StructuredContent: response,
		}, nil
	}
}

// taskResult serializes a task as both text content and structured content.
func taskResult(task models.Task) *mcpsdk.CallToolResultFor[models.Task] {
	payload, _ := json.Marshal(task)
	return &mcpsdk.CallToolResultFor[models.Task]{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(payload)},
		},
		StructuredContent: task,
	}
}

// errorResult converts a propagated error into a textual failure response.
func errorResult[Out any](prefix string, err error) *mcpsdk.CallToolResultFor[Out] {
	logError(err)
	return &mcpsdk.CallToolResultFor[Out]{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("%s: %v", prefix, err)},
		},
		IsError: true,
	}
}
