package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	titleMinLen       = 3
	titleMaxLen       = 200
	descriptionMaxLen = 1000
	dueDateLayout     = "2006-01-02"
	maxFutureYears    = 5
)

// titlePunctuation is the set of punctuation allowed in titles alongside
// letters, digits and whitespace.
const titlePunctuation = `.,!?-_()[]{}:;"'`

// Priority labels a task may carry. The stored sentinel for "no priority
// selected" is PriorityNone; it is never a valid input to ValidatePriority
// and callers map it to absent before validating.
const (
	PriorityNone   = "None"
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// ValidateTitle checks a task title. The title is required; after trimming
// its length must be within [3,200] and every rune must be alphanumeric,
// whitespace or common punctuation. Violations accumulate rather than
// short-circuit so the caller can surface all of them at once.
func ValidateTitle(title string) (bool, []string) {
	if title == "" {
		return false, []string{"Task title is required."}
	}

	title = strings.TrimSpace(title)
	var errs []string

	if utf8.RuneCountInString(title) < titleMinLen {
		errs = append(errs, "Task title must be at least 3 characters long.")
	}
	if utf8.RuneCountInString(title) > titleMaxLen {
		errs = append(errs, "Task title cannot exceed 200 characters.")
	}
	for _, r := range title {
		if !isAllowedTitleRune(r) {
			errs = append(errs, "Task title contains invalid characters.")
			break
		}
	}

	return len(errs) == 0, errs
}

// ValidateDescription checks an optional description: when present its
// trimmed length must not exceed 1000 characters.
func ValidateDescription(description string) (bool, []string) {
	var errs []string
	if description != "" {
		if utf8.RuneCountInString(strings.TrimSpace(description)) > descriptionMaxLen {
			errs = append(errs, "Description cannot exceed 1000 characters.")
		}
	}
	return len(errs) == 0, errs
}

// ValidatePriority checks an optional priority: when present it must be
// exactly Low, Medium or High (case-sensitive).
func ValidatePriority(priority string) (bool, []string) {
	var errs []string
	if priority != "" && priority != PriorityLow && priority != PriorityMedium && priority != PriorityHigh {
		errs = append(errs, "Invalid priority. Must be one of: Low, Medium, High.")
	}
	return len(errs) == 0, errs
}

// ValidateDueDate checks an optional due date: when present it must parse as
// YYYY-MM-DD, must not fall before today, and must not lie more than five
// years ahead. Both bounds are evaluated against the clock at validation
// time, not at task creation time.
func ValidateDueDate(dueDate string) (bool, []string) {
	var errs []string
	if dueDate != "" {
		parsed, err := time.Parse(dueDateLayout, dueDate)
		if err != nil {
			errs = append(errs, "Invalid date format. Please use YYYY-MM-DD format.")
			return false, errs
		}

		today := truncateToDay(time.Now())
		due := truncateToDay(parsed)

		if due.Before(today) {
			errs = append(errs, "Due date cannot be in the past.")
		}
		if due.After(today.AddDate(maxFutureYears, 0, 0)) {
			errs = append(errs, "Due date is too far in the future (max 5 years).")
		}
	}
	return len(errs) == 0, errs
}

// ValidateTaskData runs every field validator unconditionally and returns
// the concatenated error list in field order: title, description, priority,
// due date. Validity is the conjunction of all four checks. Collecting
// everything lets the caller report every problem in one round trip.
func ValidateTaskData(title, description, priority, dueDate string) (bool, []string) {
	var all []string

	if ok, errs := ValidateTitle(title); !ok {
		all = append(all, errs...)
	}
	if ok, errs := ValidateDescription(description); !ok {
		all = append(all, errs...)
	}
	if ok, errs := ValidatePriority(priority); !ok {
		all = append(all, errs...)
	}
	if ok, errs := ValidateDueDate(dueDate); !ok {
		all = append(all, errs...)
	}

	return len(all) == 0, all
}

func isAllowedTitleRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune(titlePunctuation, r)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
