package taskwarrior

import (
	"reflect"
	"testing"

	"github.com/tasktools/taskwarrior-mcp/models"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain filter untouched", "project:home status:pending", "project:home status:pending"},
		{"semicolon stripped", "project:x; rm -rf /", "project:x rm -rf /"},
		{"pipe and ampersand stripped", "due:today | cat & echo", "due:today  cat  echo"},
		{"backtick and dollar stripped", "desc:`id` cost:$5", "desc:id cost:5"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeQuery(tt.input); got != tt.expected {
				t.Errorf("SanitizeQuery(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildTaskArgs(t *testing.T) {
	tests := []struct {
		name     string
		update   models.TaskUpdate
		expected []string
	}{
		{
			name:     "empty update emits nothing",
			update:   models.TaskUpdate{},
			expected: nil,
		},
		{
			name:     "description only",
			update:   models.TaskUpdate{Description: "Buy milk"},
			expected: []string{"description:Buy milk"},
		},
		{
			name: "all scalar fields in declaration order",
			update: models.TaskUpdate{
				Description: "Ship release",
				Project:     "work",
				Tags:        []string{"urgent", "release"},
				Priority:    models.PriorityHigh,
				Due:         "2024-06-01",
				Wait:        "2024-05-20",
				Scheduled:   "2024-05-25",
			},
			expected: []string{
				"description:Ship release",
				"tag:urgent",
				"tag:release",
				"project:work",
				"priority:H",
				"due:2024-06-01",
				"wait:2024-05-20",
				"scheduled:2024-05-25",
			},
		},
		{
			name: "recurrence with default interval",
			update: models.TaskUpdate{
				Description: "Water plants",
				Recurrence:  &models.Recurrence{Frequency: models.RecurWeekly, Interval: 1},
			},
			expected: []string{"description:Water plants", "recur:weekly"},
		},
		{
			name: "recurrence with interval and until",
			update: models.TaskUpdate{
				Description: "Pay rent",
				Recurrence:  &models.Recurrence{Frequency: models.RecurMonthly, Interval: 2, Until: "2025-01-01"},
			},
			expected: []string{"description:Pay rent", "recur:monthly", "interval:2", "until:2025-01-01"},
		},
		{
			name:     "due date converted from full datetime",
			update:   models.TaskUpdate{Due: "2024-06-01T09:00:00Z"},
			expected: []string{"due:2024-06-01T09:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTaskArgs(tt.update)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("BuildTaskArgs() = %v, want %v", got, tt.expected)
			}
		})
	}
}
