package services

import (
	"database/sql"
	"fmt"

	"github.com/lifetrack/lifetrack-be/internal/models"
)

// KanbanServiceProvider defines the interface for kanban board services.
type KanbanServiceProvider interface {
	CreateColumn(userID int64, title string, position int) (models.KanbanColumn, error)
	GetColumns(userID int64) ([]models.KanbanColumn, error)
	GetColumn(userID, columnID int64) (models.KanbanColumn, error)
	UpdateColumn(userID, columnID int64, title *string, position *int) (models.KanbanColumn, error)
	DeleteColumn(userID, columnID int64) error

	CreateCard(userID, columnID int64, title, description string, position int) (models.KanbanTask, error)
	GetCards(userID, columnID int64) ([]models.KanbanTask, error)
	UpdateCard(userID, columnID, cardID int64, title, description *string, position *int, moveTo *int64) (models.KanbanTask, error)
	DeleteCard(userID, columnID, cardID int64) error
}

// KanbanService provides business logic for kanban columns and cards. Card
// access always goes through the owning column, so the owner filter covers
// both levels.
type KanbanService struct {
	db *sql.DB
}

// NewKanbanService creates a new KanbanService.
func NewKanbanService(db *sql.DB) *KanbanService {
	return &KanbanService{db: db}
}

// CreateColumn inserts a new board column for a user.
func (s *KanbanService) CreateColumn(userID int64, title string, position int) (models.KanbanColumn, error) {
	stmt, err := s.db.Prepare("INSERT INTO kanban_columns (user_id, title, position) VALUES (?, ?, ?)")
	if err != nil {
		return models.KanbanColumn{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(userID, title, position)
	if err != nil {
		return models.KanbanColumn{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.KanbanColumn{}, err
	}
	return s.GetColumn(userID, id)
}

// GetColumns retrieves all of a user's columns in board order.
func (s *KanbanService) GetColumns(userID int64) ([]models.KanbanColumn, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, title, position, created_at FROM kanban_columns WHERE user_id = ? ORDER BY position, id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []models.KanbanColumn
	for rows.Next() {
		var c models.KanbanColumn
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Position, &c.CreatedAt); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// GetColumn retrieves a single column, owner-scoped.
func (s *KanbanService) GetColumn(userID, columnID int64) (models.KanbanColumn, error) {
	var c models.KanbanColumn
	row := s.db.QueryRow(
		"SELECT id, user_id, title, position, created_at FROM kanban_columns WHERE id = ? AND user_id = ?",
		columnID, userID)
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Position, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.KanbanColumn{}, fmt.Errorf("kanban column %d: %w", columnID, ErrNotFound)
		}
		return models.KanbanColumn{}, err
	}
	return c, nil
}

// UpdateColumn patches a column's title and/or position.
func (s *KanbanService) UpdateColumn(userID, columnID int64, title *string, position *int) (models.KanbanColumn, error) {
	current, err := s.GetColumn(userID, columnID)
	if err != nil {
		return models.KanbanColumn{}, err
	}
	if title != nil {
		current.Title = *title
	}
	if position != nil {
		current.Position = *position
	}

	_, err = s.db.Exec(
		"UPDATE kanban_columns SET title = ?, position = ? WHERE id = ? AND user_id = ?",
		current.Title, current.Position, columnID, userID)
	if err != nil {
		return models.KanbanColumn{}, err
	}
	return s.GetColumn(userID, columnID)
}

// DeleteColumn removes a column; its cards cascade away with it.
func (s *KanbanService) DeleteColumn(userID, columnID int64) error {
	res, err := s.db.Exec("DELETE FROM kanban_columns WHERE id = ? AND user_id = ?", columnID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("kanban column %d: %w", columnID, ErrNotFound)
	}
	return nil
}

// CreateCard inserts a card into one of the user's columns. A column the
// user does not own reports ErrNotFound before any insert happens.
func (s *KanbanService) CreateCard(userID, columnID int64, title, description string, position int) (models.KanbanTask, error) {
	if _, err := s.GetColumn(userID, columnID); err != nil {
		return models.KanbanTask{}, err
	}

	stmt, err := s.db.Prepare("INSERT INTO kanban_tasks (column_id, user_id, title, description, position) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return models.KanbanTask{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(columnID, userID, title, description, position)
	if err != nil {
		return models.KanbanTask{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.KanbanTask{}, err
	}
	return s.getCard(userID, id)
}

// GetCards retrieves all cards in one of the user's columns.
func (s *KanbanService) GetCards(userID, columnID int64) ([]models.KanbanTask, error) {
	if _, err := s.GetColumn(userID, columnID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT id, column_id, user_id, title, COALESCE(description, ''), position, created_at FROM kanban_tasks WHERE column_id = ? AND user_id = ? ORDER BY position, id",
		columnID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.KanbanTask
	for rows.Next() {
		var c models.KanbanTask
		if err := rows.Scan(&c.ID, &c.ColumnID, &c.UserID, &c.Title, &c.Description, &c.Position, &c.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *KanbanService) getCard(userID, cardID int64) (models.KanbanTask, error) {
	var c models.KanbanTask
	row := s.db.QueryRow(
		"SELECT id, column_id, user_id, title, COALESCE(description, ''), position, created_at FROM kanban_tasks WHERE id = ? AND user_id = ?",
		cardID, userID)
	err := row.Scan(&c.ID, &c.ColumnID, &c.UserID, &c.Title, &c.Description, &c.Position, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.KanbanTask{}, fmt.Errorf("kanban card %d: %w", cardID, ErrNotFound)
		}
		return models.KanbanTask{}, err
	}
	return c, nil
}

// UpdateCard patches a card. moveTo, when set, moves the card to another of
// the user's columns; the target is ownership-checked first.
func (s *KanbanService) UpdateCard(userID, columnID, cardID int64, title, description *string, position *int, moveTo *int64) (models.KanbanTask, error) {
	current, err := s.getCard(userID, cardID)
	if err != nil {
		return models.KanbanTask{}, err
	}
	if current.ColumnID != columnID {
		return models.KanbanTask{}, fmt.Errorf("kanban card %d: %w", cardID, ErrNotFound)
	}
	if title != nil {
		current.Title = *title
	}
	if description != nil {
		current.Description = *description
	}
	if position != nil {
		current.Position = *position
	}
	if moveTo != nil {
		if _, err := s.GetColumn(userID, *moveTo); err != nil {
			return models.KanbanTask{}, err
		}
		current.ColumnID = *moveTo
	}

	_, err = s.db.Exec(
		"UPDATE kanban_tasks SET column_id = ?, title = ?, description = ?, position = ? WHERE id = ? AND user_id = ?",
		current.ColumnID, current.Title, current.Description, current.Position, cardID, userID)
	if err != nil {
		return models.KanbanTask{}, err
	}
	return s.getCard(userID, cardID)
}

// DeleteCard removes a card from one of the user's columns.
func (s *KanbanService) DeleteCard(userID, columnID, cardID int64) error {
	res, err := s.db.Exec(
		"DELETE FROM kanban_tasks WHERE id = ? AND column_id = ? AND user_id = ?",
		cardID, columnID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("kanban card %d: %w", cardID, ErrNotFound)
	}
	return nil
}
