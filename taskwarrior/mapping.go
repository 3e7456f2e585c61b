package taskwarrior

import (
	"github.com/tasktools/taskwarrior-mcp/models"
)

// rawTask is the record shape emitted by `task export`.
type rawTask struct {
	UUID        string          `json:"uuid"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Project     string          `json:"project,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Due         string          `json:"due,omitempty"`
	Start       string          `json:"start,omitempty"`
	End         string          `json:"end,omitempty"`
	Priority    string          `json:"priority,omitempty"`
	Urgency     float64         `json:"urgency,omitempty"`
	Wait        string          `json:"wait,omitempty"`
	Scheduled   string          `json:"scheduled,omitempty"`
	Depends     []string        `json:"depends,omitempty"`
	Annotations []rawAnnotation `json:"annotations,omitempty"`
	Entry       string          `json:"entry"`
	Modified    string          `json:"modified"`
	Recur       string          `json:"recur,omitempty"`
	Until       string          `json:"until,omitempty"`
}

type rawAnnotation struct {
	Entry       string `json:"entry"`
	Description string `json:"description"`
}

// mapTask is the canonical translation point from Taskwarrior's raw record to
// the Task entity. Every date passes through the timestamp translator;
// priority defaults to M; annotations default to an empty list.
func mapTask(raw rawTask) (models.Task, error) {
	priority := models.TaskPriority(raw.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	annotations := make([]models.Annotation, 0, len(raw.Annotations))
	for _, ann := range raw.Annotations {
		annotations = append(annotations, models.Annotation{
			Date:        ParseTimestamp(ann.Entry),
			Description: ann.Description,
		})
	}

	task := models.Task{
		ID:           raw.UUID,
		Description:  raw.Description,
		Status:       models.TaskStatus(raw.Status),
		Project:      raw.Project,
		Tags:         raw.Tags,
		Due:          ParseOptionalTimestamp(raw.Due),
		Start:        ParseOptionalTimestamp(raw.Start),
		End:          ParseOptionalTimestamp(raw.End),
		Priority:     priority,
		Urgency:      raw.Urgency,
		Wait:         ParseOptionalTimestamp(raw.Wait),
		Scheduled:    ParseOptionalTimestamp(raw.Scheduled),
		Dependencies: raw.Depends,
		Annotations:  annotations,
		Entry:        ParseTimestamp(raw.Entry),
		Modified:     ParseTimestamp(raw.Modified),
	}

	if raw.Recur != "" {
		frequency, err := MapRecurrence(raw.Recur)
		if err != nil {
			return models.Task{}, err
		}
		task.Recurrence = &models.Recurrence{
			Frequency: frequency,
			Interval:  1,
			Until:     ParseOptionalTimestamp(raw.Until),
		}
	}

	return task, nil
}
