package models

import (
	"strings"
	"testing"
)

func validTask() Task {
	return Task{
		ID:          "a5f9c0d2-3b4e-4c6d-9e8f-1a2b3c4d5e6f",
		Description: "Buy milk",
		Status:      StatusPending,
		Priority:    PriorityMedium,
		Annotations: []Annotation{},
		Entry:       "2024-01-10T08:00:00Z",
		Modified:    "2024-01-10T08:00:00Z",
	}
}

func TestValidateTask(t *testing.T) {
	if err := ValidateStruct(validTask()); err != nil {
		t.Errorf("valid task failed validation: %v", err)
	}
}

func TestValidateTaskRejectsBadFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr string
	}{
		{
			name:    "missing description",
			mutate:  func(task *Task) { task.Description = "" },
			wantErr: "Description",
		},
		{
			name:    "malformed ID",
			mutate:  func(task *Task) { task.ID = "42" },
			wantErr: "ID",
		},
		{
			name:    "unknown status",
			mutate:  func(task *Task) { task.Status = "paused" },
			wantErr: "Status",
		},
		{
			name:    "unknown priority",
			mutate:  func(task *Task) { task.Priority = "X" },
			wantErr: "Priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(&task)
			err := ValidateStruct(task)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention field %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecurrence(t *testing.T) {
	valid := Recurrence{Frequency: RecurWeekly, Interval: 1}
	if err := ValidateStruct(valid); err != nil {
		t.Errorf("valid recurrence failed validation: %v", err)
	}

	if err := ValidateStruct(Recurrence{Frequency: "fortnightly", Interval: 1}); err == nil {
		t.Error("expected error for unknown frequency")
	}
	if err := ValidateStruct(Recurrence{Frequency: RecurDaily, Interval: 0}); err == nil {
		t.Error("expected error for zero interval")
	}
}

func TestValidateTaskUpdate(t *testing.T) {
	if err := ValidateStruct(TaskUpdate{}); err != nil {
		t.Errorf("empty update failed validation: %v", err)
	}
	if err := ValidateStruct(TaskUpdate{Priority: "urgent"}); err == nil {
		t.Error("expected error for unknown priority")
	}
}
