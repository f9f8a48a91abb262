package model

import "time"

// User represents a registered account. Each user owns a private set of
// tasks; deleting a user removes every task it owns.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:80;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
