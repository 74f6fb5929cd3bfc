package models

import "time"

// KanbanColumn is a board column, e.g. "Backlog" or "Done".
type KanbanColumn struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// KanbanTask is a card inside a column.
type KanbanTask struct {
	ID          int64     `json:"id"`
	ColumnID    int64     `json:"column_id"`
	UserID      int64     `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}
