package mcp

// URI-addressed resource reads over the task data, plus the subscription set
// and completion routing for resource arguments. Dispatch is structural: an
// ordered list of URI shapes checked in sequence, first match wins.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tasktools/taskwarrior-mcp/completion"
	"github.com/tasktools/taskwarrior-mcp/models"
	"github.com/tasktools/taskwarrior-mcp/taskwarrior"
)

const (
	// TaskListURI is the literal URI serving all pending tasks.
	TaskListURI = "task:///list"

	taskDetailPrefix = "task:///task/"
	projectPrefix    = "task:///project/"
	tagPrefix        = "task:///tag/"
)

// ErrUnknownResource is returned for a URI outside the four fixed shapes.
var ErrUnknownResource = errors.New("unknown resource URI")

// ResourceHandler serves the task resources and tracks subscriptions. The
// subscription set is bookkeeping only: membership is recorded, but change
// delivery is the transport layer's contract, not this component's.
type ResourceHandler struct {
	tasks      taskwarrior.TaskService
	completion *completion.Service

	mu            sync.Mutex
	subscriptions map[string]struct{}
}

// NewResourceHandler builds a resource handler over the given services.
func NewResourceHandler(tasks taskwarrior.TaskService, comp *completion.Service) *ResourceHandler {
	return &ResourceHandler{
		tasks:         tasks,
		completion:    comp,
		subscriptions: make(map[string]struct{}),
	}
}

// Register wires the literal list resource and the three URI templates.
func (h *ResourceHandler) Register(server *mcpsdk.Server) {
	server.AddResource(&mcpsdk.Resource{
		URI:         TaskListURI,
		Name:        "task-list",
		Description: "All pending tasks",
		MIMEType:    "application/json",
	}, h.readHandler())

	server.AddResourceTemplate(&mcpsdk.ResourceTemplate{
		URITemplate: taskDetailPrefix + "{id}",
		Name:        "task-detail",
		Description: "Detailed information about a specific task",
		MIMEType:    "application/json",
	}, h.readHandler())

	server.AddResourceTemplate(&mcpsdk.ResourceTemplate{
		URITemplate: projectPrefix + "{name}",
		Name:        "project-tasks",
		Description: "Tasks belonging to a specific project",
		MIMEType:    "application/json",
	}, h.readHandler())

	server.AddResourceTemplate(&mcpsdk.ResourceTemplate{
		URITemplate: tagPrefix + "{name}",
		Name:        "tagged-tasks",
		Description: "Tasks with a specific tag",
		MIMEType:    "application/json",
	}, h.readHandler())
}

func (h *ResourceHandler) readHandler() mcpsdk.ResourceHandler {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.ReadResourceParams) (*mcpsdk.ReadResourceResult, error) {
		text, err := h.Read(ctx, params.URI)
		if err != nil {
			return nil, err
		}
		return &mcpsdk.ReadResourceResult{
			Contents: []*mcpsdk.ResourceContents{
				{
					URI:      params.URI,
					MIMEType: "application/json",
					Text:     text,
				},
			},
		}, nil
	}
}

// Read resolves a resource URI to its JSON payload.
func (h *ResourceHandler) Read(ctx context.Context, uri string) (string, error) {
	if uri == TaskListURI {
		return h.listJSON(ctx, "status:pending")
	}

	if id, ok := strings.CutPrefix(uri, taskDetailPrefix); ok && id != "" {
		task, err := h.tasks.GetTask(ctx, id)
		if err != nil {
			return "", err
		}
		if task == nil {
			return "", fmt.Errorf("%w: %s", taskwarrior.ErrNotFound, id)
		}
		return marshalJSON(task)
	}

	if name, ok := strings.CutPrefix(uri, projectPrefix); ok && name != "" {
		project, err := url.PathUnescape(name)
		if err != nil {
			project = name
		}
		return h.listJSON(ctx, fmt.Sprintf("project:%s status:pending", project))
	}

	if name, ok := strings.CutPrefix(uri, tagPrefix); ok && name != "" {
		tag, err := url.PathUnescape(name)
		if err != nil {
			tag = name
		}
		return h.listJSON(ctx, fmt.Sprintf("\"+(%s)\" status:pending", tag))
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownResource, uri)
}

func (h *ResourceHandler) listJSON(ctx context.Context, query string) (string, error) {
	tasks, err := h.tasks.ListTasks(ctx, models.TaskQuery{Query: query})
	if err != nil {
		return "", err
	}
	return marshalJSON(tasks)
}

// Subscribe records interest in a URI.
func (h *ResourceHandler) Subscribe(uri string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscriptions[uri] = struct{}{}
}

// Unsubscribe removes interest in a URI.
func (h *ResourceHandler) Unsubscribe(uri string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscriptions, uri)
}

// Subscriptions enumerates the subscribed URIs in sorted order.
func (h *ResourceHandler) Subscriptions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	uris := make([]string, 0, len(h.subscriptions))
	for uri := range h.subscriptions {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// Complete routes a resource-argument completion request by URI prefix:
// project URIs to project completion, tag URIs to tag completion, everything
// else to an empty result.
func (h *ResourceHandler) Complete(ctx context.Context, uri, value string) (completion.Result, error) {
	switch {
	case strings.HasPrefix(uri, projectPrefix):
		return h.completion.CompleteProjects(ctx, value)
	case strings.HasPrefix(uri, tagPrefix):
		return h.completion.CompleteTags(ctx, value)
	default:
		return completion.Result{Values: []string{}}, nil
	}
}

func marshalJSON(v interface{}) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal resource payload: %w", err)
	}
	return string(payload), nil
}
