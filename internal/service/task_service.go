package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
	"tasktracker/internal/validation"
)

// TaskInput carries the user-supplied fields of a task. Values are sanitized
// and validated before they reach the store.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
	Status      string
	Duration    int
}

// TaskView is a task annotated with the days remaining until its due date,
// computed against today at read time. DaysLeft is nil for tasks without a
// due date.
type TaskView struct {
	model.Task
	DaysLeft *int `json:"days_left,omitempty"`
}

// TaskService handles task operations for an owning user. Every lookup is
// scoped by owner id, so a task under another account behaves exactly like a
// missing one.
type TaskService interface {
	Create(ctx context.Context, ownerID uint, in TaskInput) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]TaskView, error)
	Update(ctx context.Context, taskID, ownerID uint, in TaskInput) (*model.Task, error)
	ToggleCompleted(ctx context.Context, taskID, ownerID uint) (*model.Task, error)
	Delete(ctx context.Context, taskID, ownerID uint) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

// Create sanitizes and validates the input, then stores a new task for the
// owner. On validation failure the full error list is returned and nothing
// is written.
func (s *taskService) Create(ctx context.Context, ownerID uint, in TaskInput) (*model.Task, error) {
	in = sanitizeTaskInput(in)

	if ok, errs := validation.ValidateTaskData(in.Title, in.Description, in.Priority, in.DueDate); !ok {
		return nil, apperrors.NewValidationError(errs)
	}

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    priorityLabel(in.Priority),
		DueDate:     in.DueDate,
		Status:      statusLabel(in.Status),
		Duration:    in.Duration,
		UserID:      ownerID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListByOwner returns the owner's tasks, newest first, each annotated with
// the days remaining until its due date.
func (s *taskService) ListByOwner(ctx context.Context, ownerID uint) ([]TaskView, error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, TaskView{Task: task, DaysLeft: daysLeft(task.DueDate)})
	}
	return views, nil
}

// Update validates the new fields and applies them to the task if it exists
// under the owner; the read and write share one transaction.
func (s *taskService) Update(ctx context.Context, taskID, ownerID uint, in TaskInput) (*model.Task, error) {
	in = sanitizeTaskInput(in)

	if ok, errs := validation.ValidateTaskData(in.Title, in.Description, in.Priority, in.DueDate); !ok {
		return nil, apperrors.NewValidationError(errs)
	}

	var task *model.Task
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		found, err := repo.FindByIDAndOwner(ctx, taskID, ownerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrTaskNotFound
			}
			return fmt.Errorf("find task: %w", err)
		}

		found.Title = in.Title
		found.Description = in.Description
		found.Priority = priorityLabel(in.Priority)
		found.DueDate = in.DueDate
		found.Status = statusLabel(in.Status)
		found.Duration = in.Duration

		if err := repo.Update(ctx, found); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		task = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleCompleted flips the completed flag of an owned task.
func (s *taskService) ToggleCompleted(ctx context.Context, taskID, ownerID uint) (*model.Task, error) {
	var task *model.Task
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		found, err := repo.FindByIDAndOwner(ctx, taskID, ownerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrTaskNotFound
			}
			return fmt.Errorf("find task: %w", err)
		}

		found.Completed = !found.Completed
		if err := repo.Update(ctx, found); err != nil {
			return fmt.Errorf("toggle task: %w", err)
		}
		task = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes an owned task.
func (s *taskService) Delete(ctx context.Context, taskID, ownerID uint) error {
	if err := s.repo.DeleteByIDAndOwner(ctx, taskID, ownerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// sanitizeTaskInput cleans every text field and maps the "None" priority
// sentinel to no selection before validation.
func sanitizeTaskInput(in TaskInput) TaskInput {
	in.Title = validation.Sanitize(in.Title)
	in.Description = validation.Sanitize(in.Description)
	in.Priority = validation.Sanitize(in.Priority)
	if in.Priority == validation.PriorityNone {
		in.Priority = ""
	}
	in.DueDate = validation.Sanitize(in.DueDate)
	in.Status = validation.Sanitize(in.Status)
	return in
}

func priorityLabel(priority string) string {
	if priority == "" {
		return model.DefaultPriority
	}
	return priority
}

func statusLabel(status string) string {
	if status == "" {
		return model.DefaultStatus
	}
	return status
}

// daysLeft returns due date minus today in whole days, or nil when the task
// has no (parseable) due date.
func daysLeft(dueDate string) *int {
	if dueDate == "" {
		return nil
	}
	due, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		return nil
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(today).Hours() / 24)
	return &days
}
