package services

import (
	"database/sql"
	"fmt"

	"github.com/lifetrack/lifetrack-be/internal/models"
)

// TaskServiceProvider defines the interface for to-do task services.
type TaskServiceProvider interface {
	CreateTask(userID int64, description string, completed bool) (models.Task, error)
	GetTasks(userID int64) ([]models.Task, error)
	GetTask(userID, taskID int64) (models.Task, error)
	UpdateTask(userID, taskID int64, description *string, completed *bool) (models.Task, error)
	DeleteTask(userID, taskID int64) error
}

// TaskService provides business logic for to-do tasks. Every query filters
// by owner, so one account can never observe another's rows.
type TaskService struct {
	db *sql.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTask inserts a new task for a user.
func (s *TaskService) CreateTask(userID int64, description string, completed bool) (models.Task, error) {
	stmt, err := s.db.Prepare("INSERT INTO tasks (user_id, description, completed) VALUES (?, ?, ?)")
	if err != nil {
		return models.Task{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(userID, description, completed)
	if err != nil {
		return models.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, err
	}
	return s.GetTask(userID, id)
}

// GetTasks retrieves all of a user's tasks.
func (s *TaskService) GetTasks(userID int64) ([]models.Task, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, description, completed, created_at FROM tasks WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a single task, owner-scoped.
func (s *TaskService) GetTask(userID, taskID int64) (models.Task, error) {
	var t models.Task
	row := s.db.QueryRow(
		"SELECT id, user_id, description, completed, created_at FROM tasks WHERE id = ? AND user_id = ?",
		taskID, userID)
	err := row.Scan(&t.ID, &t.UserID, &t.Description, &t.Completed, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, fmt.Errorf("task %d: %w", taskID, ErrNotFound)
		}
		return models.Task{}, err
	}
	return t, nil
}

// UpdateTask patches a task's description and/or completed flag. Nil fields
// are left unchanged. A task belonging to another user reports ErrNotFound.
func (s *TaskService) UpdateTask(userID, taskID int64, description *string, completed *bool) (models.Task, error) {
	current, err := s.GetTask(userID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if description != nil {
		current.Description = *description
	}
	if completed != nil {
		current.Completed = *completed
	}

	res, err := s.db.Exec(
		"UPDATE tasks SET description = ?, completed = ? WHERE id = ? AND user_id = ?",
		current.Description, current.Completed, taskID, userID)
	if err != nil {
		return models.Task{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if n == 0 {
		return models.Task{}, fmt.Errorf("task %d: %w", taskID, ErrNotFound)
	}
	return s.GetTask(userID, taskID)
}

// DeleteTask removes a task. Deleting a row the user does not own, or one
// that does not exist, reports ErrNotFound rather than silently succeeding.
func (s *TaskService) DeleteTask(userID, taskID int64) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", taskID, ErrNotFound)
	}
	return nil
}
