package taskwarrior

import (
	"fmt"
	"strings"

	"github.com/tasktools/taskwarrior-mcp/models"
)

// SanitizeQuery strips the shell metacharacters ; & | ` $ from a filter
// expression before it is handed to the task binary. This is a blocklist
// scoped to this toolset, not a general shell escape; callers must not rely
// on it for anything broader.
func SanitizeQuery(query string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '&', '|', '`', '$':
			return -1
		}
		return r
	}, query)
}

// BuildTaskArgs emits one key:value argument token per present field of the
// update, in declaration order. Absent fields emit nothing.
func BuildTaskArgs(update models.TaskUpdate) []string {
	var args []string

	if update.Description != "" {
		args = append(args, "description:"+update.Description)
	}
	for _, tag := range update.Tags {
		args = append(args, "tag:"+tag)
	}
	if update.Project != "" {
		args = append(args, "project:"+update.Project)
	}
	if update.Priority != "" {
		args = append(args, "priority:"+string(update.Priority))
	}
	if update.Due != "" {
		args = append(args, "due:"+FormatTimestamp(update.Due))
	}
	if update.Wait != "" {
		args = append(args, "wait:"+FormatTimestamp(update.Wait))
	}
	if update.Scheduled != "" {
		args = append(args, "scheduled:"+FormatTimestamp(update.Scheduled))
	}
	if update.Recurrence != nil {
		args = append(args, "recur:"+string(update.Recurrence.Frequency))
		if update.Recurrence.Interval > 1 {
			args = append(args, fmt.Sprintf("interval:%d", update.Recurrence.Interval))
		}
		if update.Recurrence.Until != "" {
			args = append(args, "until:"+FormatTimestamp(update.Recurrence.Until))
		}
	}

	return args
}
