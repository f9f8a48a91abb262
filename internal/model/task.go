package model

import "time"

// Default labels for tasks created without an explicit status or priority.
const (
	DefaultStatus   = "Not Started"
	DefaultPriority = "None"
)

// Task represents a single tracked task. Every task belongs to exactly one
// user and is only reachable through that user's id.
type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Priority    string    `json:"priority" gorm:"size:20;default:'None'"`
	DueDate     string    `json:"due_date,omitempty" gorm:"size:20"` // YYYY-MM-DD
	Status      string    `json:"status" gorm:"size:20;default:'Not Started'"`
	Duration    int       `json:"duration" gorm:"default:0"`
	Completed   bool      `json:"completed" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
}
