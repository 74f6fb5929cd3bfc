package models

import "time"

// ActivityRecord is a logged physical activity session.
type ActivityRecord struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"-"`
	ActivityType    string    `json:"activity_type"`
	DurationMinutes int       `json:"duration_minutes"`
	Calories        *int      `json:"calories,omitempty"`
	RecordedAt      time.Time `json:"recorded_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// GlucoseRecord is a blood glucose measurement in mmol/L.
type GlucoseRecord struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	Level      float64   `json:"level"`
	MeasuredAt time.Time `json:"measured_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// FoodRecord is a logged meal or snack.
type FoodRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Calories  *int      `json:"calories,omitempty"`
	EatenAt   time.Time `json:"eaten_at"`
	CreatedAt time.Time `json:"created_at"`
}
