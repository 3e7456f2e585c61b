package taskwarrior

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tasktools/taskwarrior-mcp/models"
)

// Taskwarrior stores timestamps in a compact form (YYYYMMDDTHHMMSSZ); the
// canonical representation on this side is ISO-8601, either date-only or
// date-time with a UTC marker.

var (
	isoRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}Z)?$`)
	isoShortRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2})?$`)
	compactRe  = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})T(\d{2})(\d{2})(\d{2})Z$`)
)

// ParseTimestamp converts a Taskwarrior timestamp to ISO-8601. Canonical
// values pass through unchanged. An empty value maps to the current instant;
// entry and modified are always set by Taskwarrior, so that branch is a guard
// against missing data, not an expected path.
func ParseTimestamp(raw string) string {
	if raw == "" {
		return time.Now().UTC().Format("2006-01-02T15:04:05Z")
	}
	if isoRe.MatchString(raw) {
		return raw
	}
	if len(raw) >= 15 {
		return fmt.Sprintf("%s-%s-%sT%s:%s:%sZ", raw[0:4], raw[4:6], raw[6:8], raw[9:11], raw[11:13], raw[13:15])
	}
	if len(raw) >= 8 {
		return fmt.Sprintf("%s-%s-%s", raw[0:4], raw[4:6], raw[6:8])
	}
	return raw
}

// ParseOptionalTimestamp is ParseTimestamp for optional date fields: an
// absent input stays absent instead of defaulting to now.
func ParseOptionalTimestamp(raw string) string {
	if raw == "" {
		return ""
	}
	return ParseTimestamp(raw)
}

// FormatTimestamp converts an ISO-8601 date into the form passed to
// Taskwarrior as a modification argument: YYYY-MM-DD or YYYY-MM-DDTHH:MM.
// Values already in that shape pass through; anything unparseable is returned
// unchanged and left for Taskwarrior to reject.
func FormatTimestamp(date string) string {
	if isoShortRe.MatchString(date) {
		return date
	}
	if m := compactRe.FindStringSubmatch(date); m != nil {
		return fmt.Sprintf("%s-%s-%sT%s:%s", m[1], m[2], m[3], m[4], m[5])
	}
	for _, layout := range []string{"2006-01-02T15:04:05Z", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		if strings.Contains(date, "T") {
			return t.Format("2006-01-02T15:04")
		}
		return t.Format("2006-01-02")
	}
	return date
}

// MapRecurrence normalizes a Taskwarrior recur: value to one of the four
// supported frequencies. The enumeration is closed; anything else fails with
// ErrInvalidRecurrence.
func MapRecurrence(freq string) (models.RecurrenceFrequency, error) {
	normalized := strings.ToLower(strings.TrimPrefix(freq, "recur:"))
	switch normalized {
	case "daily":
		return models.RecurDaily, nil
	case "weekly":
		return models.RecurWeekly, nil
	case "monthly":
		return models.RecurMonthly, nil
	case "yearly":
		return models.RecurYearly, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidRecurrence, freq)
	}
}
