// Package completion answers fuzzy-match queries for interactive argument
// completion over three corpora: project names, tag names, and pending-task
// descriptions.
package completion

import (
	"context"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/tasktools/taskwarrior-mcp/models"
	"github.com/tasktools/taskwarrior-mcp/taskwarrior"
)

// Result is the completion payload returned to the protocol layer. HasMore is
// always false: there is no pagination, so callers must not expect a
// truncation signal.
type Result struct {
	Values  []string `json:"values"`
	Total   int      `json:"total"`
	HasMore bool     `json:"hasMore"`
}

// Service caches each corpus lazily, at most once per instance. There is no
// TTL and no invalidation hook; a restart picks up new values. The caches
// trade staleness for not shelling out on every keystroke.
type Service struct {
	tasks taskwarrior.TaskService

	mu                 sync.Mutex
	projects           []string
	tags               []string
	descriptions       []string
	projectsLoaded     bool
	tagsLoaded         bool
	descriptionsLoaded bool
}

// NewService builds a completion service reading its corpora from the given
// task service.
func NewService(tasks taskwarrior.TaskService) *Service {
	return &Service{tasks: tasks}
}

// CompleteProjects matches the input against the cached project names.
func (s *Service) CompleteProjects(ctx context.Context, input string) (Result, error) {
	corpus, err := s.ensureProjectsLoaded(ctx)
	if err != nil {
		return Result{}, err
	}
	return match(corpus, input), nil
}

// CompleteTags matches the input against the cached tag names.
func (s *Service) CompleteTags(ctx context.Context, input string) (Result, error) {
	corpus, err := s.ensureTagsLoaded(ctx)
	if err != nil {
		return Result{}, err
	}
	return match(corpus, input), nil
}

// CompleteTaskDescriptions matches the input against the descriptions of
// pending tasks.
func (s *Service) CompleteTaskDescriptions(ctx context.Context, input string) (Result, error) {
	corpus, err := s.ensureDescriptionsLoaded(ctx)
	if err != nil {
		return Result{}, err
	}
	return match(corpus, input), nil
}

func (s *Service) ensureProjectsLoaded(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.projectsLoaded {
		projects, err := s.tasks.AvailableProjects(ctx)
		if err != nil {
			return nil, err
		}
		s.projects = projects
		s.projectsLoaded = true
	}
	return s.projects, nil
}

func (s *Service) ensureTagsLoaded(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tagsLoaded {
		tags, err := s.tasks.AvailableTags(ctx)
		if err != nil {
			return nil, err
		}
		s.tags = tags
		s.tagsLoaded = true
	}
	return s.tags, nil
}

func (s *Service) ensureDescriptionsLoaded(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.descriptionsLoaded {
		tasks, err := s.tasks.ListTasks(ctx, models.TaskQuery{Query: "status:pending"})
		if err != nil {
			return nil, err
		}
		descriptions := make([]string, 0, len(tasks))
		for _, task := range tasks {
			descriptions = append(descriptions, task.Description)
		}
		s.descriptions = descriptions
		s.descriptionsLoaded = true
	}
	return s.descriptions, nil
}

// match returns the whole corpus for empty input, otherwise fuzzy matches
// ordered by relevance.
func match(corpus []string, input string) Result {
	if strings.TrimSpace(input) == "" {
		values := make([]string, len(corpus))
		copy(values, corpus)
		return Result{Values: values, Total: len(corpus)}
	}

	matches := fuzzy.Find(input, corpus)
	values := make([]string, len(matches))
	for i, m := range matches {
		values[i] = m.Str
	}
	return Result{Values: values, Total: len(matches)}
}
