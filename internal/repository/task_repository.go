package repository

import (
	"context"

	"gorm.io/gorm"

	"tasktracker/internal/model"
)

// TaskRepository defines task persistence operations. Ownership is part of
// every lookup key: a task id under a different owner behaves exactly like a
// missing id.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Task, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// ListByOwner returns the owner's tasks, most recently created first.
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// WithTransaction executes fn within a database transaction; any error rolls
// the whole transaction back.
func (r *taskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &taskRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
