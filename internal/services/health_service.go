package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lifetrack/lifetrack-be/internal/models"
)

// HealthServiceProvider defines the interface for health record services.
// The health endpoints only create, list and delete; there is no update verb.
type HealthServiceProvider interface {
	CreateActivity(userID int64, activityType string, durationMinutes int, calories *int, recordedAt time.Time) (models.ActivityRecord, error)
	GetActivities(userID int64) ([]models.ActivityRecord, error)
	DeleteActivity(userID, recordID int64) error

	CreateGlucose(userID int64, level float64, measuredAt time.Time) (models.GlucoseRecord, error)
	GetGlucose(userID int64) ([]models.GlucoseRecord, error)
	DeleteGlucose(userID, recordID int64) error

	CreateFood(userID int64, name string, calories *int, eatenAt time.Time) (models.FoodRecord, error)
	GetFood(userID int64) ([]models.FoodRecord, error)
	DeleteFood(userID, recordID int64) error
}

// HealthService provides owner-scoped storage for the three health record
// kinds.
type HealthService struct {
	db *sql.DB
}

// NewHealthService creates a new HealthService.
func NewHealthService(db *sql.DB) *HealthService {
	return &HealthService{db: db}
}

// CreateActivity logs an activity session.
func (s *HealthService) CreateActivity(userID int64, activityType string, durationMinutes int, calories *int, recordedAt time.Time) (models.ActivityRecord, error) {
	res, err := s.db.Exec(
		"INSERT INTO health_activity (user_id, activity_type, duration_minutes, calories, recorded_at) VALUES (?, ?, ?, ?, ?)",
		userID, activityType, durationMinutes, calories, recordedAt)
	if err != nil {
		return models.ActivityRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.ActivityRecord{}, err
	}

	var rec models.ActivityRecord
	row := s.db.QueryRow(
		"SELECT id, user_id, activity_type, duration_minutes, calories, recorded_at, created_at FROM health_activity WHERE id = ? AND user_id = ?",
		id, userID)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.ActivityType, &rec.DurationMinutes, &rec.Calories, &rec.RecordedAt, &rec.CreatedAt); err != nil {
		return models.ActivityRecord{}, err
	}
	return rec, nil
}

// GetActivities lists a user's activity records, newest first.
func (s *HealthService) GetActivities(userID int64) ([]models.ActivityRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, activity_type, duration_minutes, calories, recorded_at, created_at FROM health_activity WHERE user_id = ? ORDER BY recorded_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.ActivityRecord
	for rows.Next() {
		var rec models.ActivityRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ActivityType, &rec.DurationMinutes, &rec.Calories, &rec.RecordedAt, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteActivity removes one activity record, owner-scoped.
func (s *HealthService) DeleteActivity(userID, recordID int64) error {
	return s.deleteRecord("health_activity", userID, recordID)
}

// CreateGlucose logs a glucose measurement.
func (s *HealthService) CreateGlucose(userID int64, level float64, measuredAt time.Time) (models.GlucoseRecord, error) {
	res, err := s.db.Exec(
		"INSERT INTO health_glucose (user_id, level, measured_at) VALUES (?, ?, ?)",
		userID, level, measuredAt)
	if err != nil {
		return models.GlucoseRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.GlucoseRecord{}, err
	}

	var rec models.GlucoseRecord
	row := s.db.QueryRow(
		"SELECT id, user_id, level, measured_at, created_at FROM health_glucose WHERE id = ? AND user_id = ?",
		id, userID)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Level, &rec.MeasuredAt, &rec.CreatedAt); err != nil {
		return models.GlucoseRecord{}, err
	}
	return rec, nil
}

// GetGlucose lists a user's glucose measurements, newest first.
func (s *HealthService) GetGlucose(userID int64) ([]models.GlucoseRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, level, measured_at, created_at FROM health_glucose WHERE user_id = ? ORDER BY measured_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.GlucoseRecord
	for rows.Next() {
		var rec models.GlucoseRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Level, &rec.MeasuredAt, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteGlucose removes one glucose record, owner-scoped.
func (s *HealthService) DeleteGlucose(userID, recordID int64) error {
	return s.deleteRecord("health_glucose", userID, recordID)
}

// CreateFood logs a meal.
func (s *HealthService) CreateFood(userID int64, name string, calories *int, eatenAt time.Time) (models.FoodRecord, error) {
	res, err := s.db.Exec(
		"INSERT INTO health_food (user_id, name, calories, eaten_at) VALUES (?, ?, ?, ?)",
		userID, name, calories, eatenAt)
	if err != nil {
		return models.FoodRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.FoodRecord{}, err
	}

	var rec models.FoodRecord
	row := s.db.QueryRow(
		"SELECT id, user_id, name, calories, eaten_at, created_at FROM health_food WHERE id = ? AND user_id = ?",
		id, userID)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Calories, &rec.EatenAt, &rec.CreatedAt); err != nil {
		return models.FoodRecord{}, err
	}
	return rec, nil
}

// GetFood lists a user's food records, newest first.
func (s *HealthService) GetFood(userID int64) ([]models.FoodRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, name, calories, eaten_at, created_at FROM health_food WHERE user_id = ? ORDER BY eaten_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.FoodRecord
	for rows.Next() {
		var rec models.FoodRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Calories, &rec.EatenAt, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteFood removes one food record, owner-scoped.
func (s *HealthService) DeleteFood(userID, recordID int64) error {
	return s.deleteRecord("health_food", userID, recordID)
}

// deleteRecord is the shared owner-scoped delete for the three health
// tables. The table name is always one of our own constants, never input.
func (s *HealthService) deleteRecord(table string, userID, recordID int64) error {
	res, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ? AND user_id = ?", table), recordID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("record %d: %w", recordID, ErrNotFound)
	}
	return nil
}
