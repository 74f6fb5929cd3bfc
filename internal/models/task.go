package models

import "time"

// Task represents a single to-do item owned by a user.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
