package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a Taskwarrior task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
	StatusDeleted   TaskStatus = "deleted"
	StatusRecurring TaskStatus = "recurring"
	StatusWaiting   TaskStatus = "waiting"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "H"
	PriorityMedium TaskPriority = "M"
	PriorityLow    TaskPriority = "L"
)

// RecurrenceFrequency is the closed set of recurrence intervals this server
// understands from Taskwarrior's recur: values.
type RecurrenceFrequency string

const (
	RecurDaily   RecurrenceFrequency = "daily"
	RecurWeekly  RecurrenceFrequency = "weekly"
	RecurMonthly RecurrenceFrequency = "monthly"
	RecurYearly  RecurrenceFrequency = "yearly"
)

// Annotation is an append-only, timestamped note attached to a task.
type Annotation struct {
	Date        string `json:"date" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Recurrence describes how a recurring task repeats.
type Recurrence struct {
	Frequency RecurrenceFrequency `json:"frequency" validate:"required,oneof=daily weekly monthly yearly"`
	Interval  int                 `json:"interval" validate:"min=1"`
	Until     string              `json:"until,omitempty"`
}

// Task is the canonical view of a Taskwarrior task. All date fields are
// ISO-8601 strings: date-only (YYYY-MM-DD) or date-time with a trailing Z.
// Urgency is computed by Taskwarrior and read-only from this side.
type Task struct {
	ID           string       `json:"id" validate:"required,uuid4"`
	Description  string       `json:"description" validate:"required"`
	Status       TaskStatus   `json:"status" validate:"required,oneof=pending completed deleted recurring waiting"`
	Project      string       `json:"project,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Due          string       `json:"due,omitempty"`
	Start        string       `json:"start,omitempty"`
	End          string       `json:"end,omitempty"`
	Priority     TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=H M L"`
	Urgency      float64      `json:"urgency,omitempty"`
	Wait         string       `json:"wait,omitempty"`
	Scheduled    string       `json:"scheduled,omitempty"`
	Dependencies []string     `json:"dependencies,omitempty"`
	Annotations  []Annotation `json:"annotations"`
	Entry        string       `json:"entry" validate:"required"`
	Modified     string       `json:"modified" validate:"required"`
	Recurrence   *Recurrence  `json:"recurrence,omitempty"`
}

// TaskUpdate is a partial projection of Task's mutable fields. On update,
// absent fields are left unchanged; on create, Taskwarrior's defaults apply.
type TaskUpdate struct {
	Description string       `json:"description,omitempty"`
	Project     string       `json:"project,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Due         string       `json:"due,omitempty"`
	Wait        string       `json:"wait,omitempty"`
	Scheduled   string       `json:"scheduled,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=H M L"`
	Recurrence  *Recurrence  `json:"recurrence,omitempty"`
}

// TaskQuery carries an optional filter expression in Taskwarrior's native
// query language.
type TaskQuery struct {
	Query string `json:"query,omitempty"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
