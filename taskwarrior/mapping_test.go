package taskwarrior

import (
	"errors"
	"testing"

	"github.com/tasktools/taskwarrior-mcp/models"
)

func TestMapTaskDefaults(t *testing.T) {
	raw := rawTask{
		UUID:        testUUID,
		Description: "Plain task",
		Status:      "pending",
		Entry:       "20240110T080000Z",
		Modified:    "20240111T090000Z",
	}

	task, err := mapTask(raw)
	if err != nil {
		t.Fatalf("mapTask returned error: %v", err)
	}

	if task.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want default M", task.Priority)
	}
	if task.Annotations == nil {
		t.Error("Annotations is nil, want empty slice")
	}
	if len(task.Annotations) != 0 {
		t.Errorf("Annotations = %v, want empty", task.Annotations)
	}
	if task.Entry != "2024-01-10T08:00:00Z" {
		t.Errorf("Entry = %q, want translated timestamp", task.Entry)
	}
	if task.Modified != "2024-01-11T09:00:00Z" {
		t.Errorf("Modified = %q, want translated timestamp", task.Modified)
	}
	if task.Recurrence != nil {
		t.Errorf("Recurrence = %+v, want nil for non-recurring task", task.Recurrence)
	}
	if task.Due != "" {
		t.Errorf("Due = %q, want empty for absent date", task.Due)
	}
}

func TestMapTaskFullRecord(t *testing.T) {
	raw := rawTask{
		UUID:        testUUID,
		Description: "Water plants",
		Status:      "recurring",
		Project:     "home",
		Tags:        []string{"garden"},
		Due:         "20240601T090000Z",
		Priority:    "H",
		Urgency:     8.2,
		Annotations: []rawAnnotation{
			{Entry: "20240110T080000Z", Description: "bought fertilizer"},
		},
		Entry:    "20240101T000000Z",
		Modified: "20240102T000000Z",
		Recur:    "weekly",
		Until:    "20241231T000000Z",
	}

	task, err := mapTask(raw)
	if err != nil {
		t.Fatalf("mapTask returned error: %v", err)
	}

	if task.Due != "2024-06-01T09:00:00Z" {
		t.Errorf("Due = %q, want translated timestamp", task.Due)
	}
	if task.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want H", task.Priority)
	}
	if len(task.Annotations) != 1 || task.Annotations[0].Date != "2024-01-10T08:00:00Z" {
		t.Errorf("Annotations = %+v, want one entry with translated date", task.Annotations)
	}
	if task.Recurrence == nil {
		t.Fatal("Recurrence is nil, want populated for recurring task")
	}
	if task.Recurrence.Frequency != models.RecurWeekly {
		t.Errorf("Recurrence.Frequency = %q, want weekly", task.Recurrence.Frequency)
	}
	if task.Recurrence.Interval != 1 {
		t.Errorf("Recurrence.Interval = %d, want 1", task.Recurrence.Interval)
	}
	if task.Recurrence.Until != "2024-12-31T00:00:00Z" {
		t.Errorf("Recurrence.Until = %q, want translated timestamp", task.Recurrence.Until)
	}
}

func TestMapTaskUnknownRecurrence(t *testing.T) {
	raw := rawTask{
		UUID:        testUUID,
		Description: "Odd schedule",
		Status:      "recurring",
		Entry:       "20240101T000000Z",
		Modified:    "20240101T000000Z",
		Recur:       "biweekly",
	}

	if _, err := mapTask(raw); !errors.Is(err, ErrInvalidRecurrence) {
		t.Errorf("error = %v, want ErrInvalidRecurrence", err)
	}
}
