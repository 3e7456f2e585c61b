package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tasktools/taskwarrior-mcp/completion"
)

// Prompt names.
const (
	PromptTodayProject       = "today-project"
	PromptStartWork          = "start-work"
	PromptCompleteWithReview = "complete-with-review"
	PromptSearchNotes        = "search-notes"
)

// ErrPromptNotFound is returned when a prompt name is not registered.
var ErrPromptNotFound = errors.New("prompt not found")

// PromptHandler serves the four workflow prompts and their argument
// completion.
type PromptHandler struct {
	completion *completion.Service
}

// NewPromptHandler builds a prompt handler over the completion service.
func NewPromptHandler(comp *completion.Service) *PromptHandler {
	return &PromptHandler{completion: comp}
}

// promptDef pairs a prompt declaration with nothing else; rendering lives in
// RenderPrompt so it can be tested without a server.
var promptDefs = []*mcpsdk.Prompt{
	{
		Name:        PromptTodayProject,
		Description: "Get all tasks for a specific project that are scheduled for today",
		Arguments: []*mcpsdk.PromptArgument{
			{Name: "project", Description: "Project name to filter tasks", Required: true},
		},
	},
	{
		Name:        PromptStartWork,
		Description: "Start working on a task and add a note about what you're working on",
		Arguments: []*mcpsdk.PromptArgument{
			{Name: "description", Description: "Task description to start working on", Required: true},
			{Name: "focus", Description: "What you're specifically working on", Required: false},
		},
	},
	{
		Name:        PromptCompleteWithReview,
		Description: "Mark a task as complete and add a review note about what was accomplished",
		Arguments: []*mcpsdk.PromptArgument{
			{Name: "description", Description: "Task description to complete", Required: true},
			{Name: "accomplished", Description: "What was accomplished in this task", Required: true},
		},
	},
	{
		Name:        PromptSearchNotes,
		Description: "Display all annotations for tasks matching a description",
		Arguments: []*mcpsdk.PromptArgument{
			{Name: "description", Description: "Task description to search for (can be partial)", Required: true},
		},
	},
}

// Register wires the prompts into the server.
func (h *PromptHandler) Register(server *mcpsdk.Server) {
	for _, def := range promptDefs {
		prompt := def
		server.AddPrompt(prompt, func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.GetPromptParams) (*mcpsdk.GetPromptResult, error) {
			text, err := RenderPrompt(prompt.Name, params.Arguments)
			if err != nil {
				return nil, err
			}
			return &mcpsdk.GetPromptResult{
				Messages: []*mcpsdk.PromptMessage{
					{
						Role:    "user",
						Content: &mcpsdk.TextContent{Text: text},
					},
				},
			}, nil
		})
	}
}

// RenderPrompt produces the user message for a named prompt. Optional
// arguments fold into the message only when present.
func RenderPrompt(name string, args map[string]string) (string, error) {
	switch name {
	case PromptTodayProject:
		return fmt.Sprintf("List all tasks in project %q that are scheduled for today", args["project"]), nil

	case PromptStartWork:
		msg := fmt.Sprintf("Start working on task %q", args["description"])
		if focus := args["focus"]; focus != "" {
			msg += fmt.Sprintf(" and add a note that I'm focusing on: %s", focus)
		}
		return msg, nil

	case PromptCompleteWithReview:
		msg := fmt.Sprintf("Mark task %q as complete", args["description"])
		if accomplished := args["accomplished"]; accomplished != "" {
			msg += fmt.Sprintf(" and add a note about what was accomplished: %s", accomplished)
		}
		return msg, nil

	case PromptSearchNotes:
		return fmt.Sprintf("Find all tasks with description containing %q and show their notes and annotations", args["description"]), nil

	default:
		return "", fmt.Errorf("%w: %s", ErrPromptNotFound, name)
	}
}

// Complete routes a prompt-argument completion request. The today-project
// project argument completes against project names; the description argument
// of the other three prompts completes against pending task descriptions.
// Anything else gets an empty result.
func (h *PromptHandler) Complete(ctx context.Context, promptName, argName, value string) (completion.Result, error) {
	switch {
	case promptName == PromptTodayProject && argName == "project":
		return h.completion.CompleteProjects(ctx, value)
	case argName == "description" &&
		(promptName == PromptStartWork || promptName == PromptCompleteWithReview || promptName == PromptSearchNotes):
		return h.completion.CompleteTaskDescriptions(ctx, value)
	default:
		return completion.Result{Values: []string{}}, nil
	}
}
