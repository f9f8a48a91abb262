package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		valid      bool
		wantErrors []string
	}{
		{
			name:       "missing title",
			title:      "",
			valid:      false,
			wantErrors: []string{"Task title is required."},
		},
		{
			name:       "too short after trim",
			title:      "  ab  ",
			valid:      false,
			wantErrors: []string{"Task title must be at least 3 characters long."},
		},
		{
			name:       "too long",
			title:      strings.Repeat("a", 201),
			valid:      false,
			wantErrors: []string{"Task title cannot exceed 200 characters."},
		},
		{
			name:       "exactly at bounds",
			title:      strings.Repeat("a", 200),
			valid:      true,
			wantErrors: nil,
		},
		{
			name:       "minimum length",
			title:      "abc",
			valid:      true,
			wantErrors: nil,
		},
		{
			name:       "hash is outside the allowed set",
			title:      `Fix bug #42 before the release`,
			valid:      false,
			wantErrors: []string{"Task title contains invalid characters."},
		},
		{
			name:       "full allowed character set",
			title:      `Call mum, then: shop! (eggs) [milk] {bread}; "why?" - it's_fine.`,
			valid:      true,
			wantErrors: nil,
		},
		{
			name:       "invalid characters",
			title:      "rm -rf / && echo done",
			valid:      false,
			wantErrors: []string{"Task title contains invalid characters."},
		},
		{
			name:  "short and invalid flagged together",
			title: "@!",
			valid: false,
			wantErrors: []string{
				"Task title must be at least 3 characters long.",
				"Task title contains invalid characters.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, errs := ValidateTitle(tt.title)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.wantErrors, errs)
		})
	}
}

func TestValidateDescription(t *testing.T) {
	valid, errs := ValidateDescription("")
	assert.True(t, valid)
	assert.Empty(t, errs)

	valid, errs = ValidateDescription(strings.Repeat("x", 1000))
	assert.True(t, valid)
	assert.Empty(t, errs)

	valid, errs = ValidateDescription(strings.Repeat("x", 1001))
	assert.False(t, valid)
	assert.Equal(t, []string{"Description cannot exceed 1000 characters."}, errs)
}

func TestValidatePriority(t *testing.T) {
	for _, p := range []string{"", "Low", "Medium", "High"} {
		valid, errs := ValidatePriority(p)
		assert.True(t, valid, "priority %q should be valid", p)
		assert.Empty(t, errs)
	}

	for _, p := range []string{"low", "HIGH", "Urgent", "None", "Medium "} {
		valid, errs := ValidatePriority(p)
		assert.False(t, valid, "priority %q should be invalid", p)
		assert.Equal(t, []string{"Invalid priority. Must be one of: Low, Medium, High."}, errs)
	}
}

func TestValidateDueDate(t *testing.T) {
	day := 24 * time.Hour
	tomorrow := time.Now().Add(day).Format("2006-01-02")
	yesterday := time.Now().Add(-day).Format("2006-01-02")
	today := time.Now().Format("2006-01-02")
	farFuture := time.Now().AddDate(6, 0, 0).Format("2006-01-02")

	valid, errs := ValidateDueDate("")
	assert.True(t, valid)
	assert.Empty(t, errs)

	valid, errs = ValidateDueDate(today)
	assert.True(t, valid)
	assert.Empty(t, errs)

	valid, errs = ValidateDueDate(tomorrow)
	assert.True(t, valid)
	assert.Empty(t, errs)

	valid, errs = ValidateDueDate(yesterday)
	assert.False(t, valid)
	assert.Equal(t, []string{"Due date cannot be in the past."}, errs)

	valid, errs = ValidateDueDate(farFuture)
	assert.False(t, valid)
	assert.Equal(t, []string{"Due date is too far in the future (max 5 years)."}, errs)

	valid, errs = ValidateDueDate("not-a-date")
	assert.False(t, valid)
	assert.Equal(t, []string{"Invalid date format. Please use YYYY-MM-DD format."}, errs)
}

func TestValidateTaskData_CollectsEveryError(t *testing.T) {
	valid, errs := ValidateTaskData("@!", strings.Repeat("x", 1001), "Urgent", "not-a-date")
	assert.False(t, valid)
	assert.Equal(t, []string{
		"Task title must be at least 3 characters long.",
		"Task title contains invalid characters.",
		"Description cannot exceed 1000 characters.",
		"Invalid priority. Must be one of: Low, Medium, High.",
		"Invalid date format. Please use YYYY-MM-DD format.",
	}, errs)
}

func TestValidateTaskData_InvalidTitleAndPriority(t *testing.T) {
	valid, errs := ValidateTaskData("", "", "Urgent", "")
	assert.False(t, valid)
	assert.Equal(t, []string{
		"Task title is required.",
		"Invalid priority. Must be one of: Low, Medium, High.",
	}, errs)
}

func TestValidateTaskData_AllValid(t *testing.T) {
	tomorrow := time.Now().Add(24 * time.Hour).Format("2006-01-02")
	valid, errs := ValidateTaskData("Buy groceries", "milk, eggs", "High", tomorrow)
	assert.True(t, valid)
	assert.Empty(t, errs)
}
