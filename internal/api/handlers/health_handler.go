package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/services"
)

// HealthHandler handles HTTP requests for health records: activity sessions,
// glucose measurements and food logs.
type HealthHandler struct {
	service services.HealthServiceProvider
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(service services.HealthServiceProvider) *HealthHandler {
	return &HealthHandler{service: service}
}

// ActivityPayload is the request body for logging an activity session.
type ActivityPayload struct {
	ActivityType    string     `json:"activity_type"`
	DurationMinutes int        `json:"duration_minutes"`
	Calories        *int       `json:"calories"`
	RecordedAt      *time.Time `json:"recorded_at"`
}

// GlucosePayload is the request body for logging a glucose measurement.
type GlucosePayload struct {
	Level      *float64   `json:"level"`
	MeasuredAt *time.Time `json:"measured_at"`
}

// FoodPayload is the request body for logging a meal.
type FoodPayload struct {
	Name     string     `json:"name"`
	Calories *int       `json:"calories"`
	EatenAt  *time.Time `json:"eaten_at"`
}

// CreateActivity handles the request to log an activity session.
func (h *HealthHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var payload ActivityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.ActivityType == "" || payload.DurationMinutes <= 0 {
		http.Error(w, "activity_type and a positive duration_minutes are required", http.StatusBadRequest)
		return
	}
	recordedAt := time.Now()
	if payload.RecordedAt != nil {
		recordedAt = *payload.RecordedAt
	}

	rec, err := h.service.CreateActivity(userID, payload.ActivityType, payload.DurationMinutes, payload.Calories, recordedAt)
	if err != nil {
		serviceError(w, err, "Failed to create activity record")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// GetActivities handles the request to list activity records.
func (h *HealthHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	recs, err := h.service.GetActivities(userID)
	if err != nil {
		serviceError(w, err, "Failed to list activity records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"records": recs})
}

// DeleteActivity handles the request to delete one activity record.
func (h *HealthHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteActivity(userID, id); err != nil {
		serviceError(w, err, "Failed to delete activity record")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Record deleted successfully"})
}

// CreateGlucose handles the request to log a glucose measurement.
func (h *HealthHandler) CreateGlucose(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var payload GlucosePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Level == nil || *payload.Level <= 0 {
		http.Error(w, "A positive level is required", http.StatusBadRequest)
		return
	}
	measuredAt := time.Now()
	if payload.MeasuredAt != nil {
		measuredAt = *payload.MeasuredAt
	}

	rec, err := h.service.CreateGlucose(userID, *payload.Level, measuredAt)
	if err != nil {
		serviceError(w, err, "Failed to create glucose record")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// GetGlucose handles the request to list glucose measurements.
func (h *HealthHandler) GetGlucose(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	recs, err := h.service.GetGlucose(userID)
	if err != nil {
		serviceError(w, err, "Failed to list glucose records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"records": recs})
}

// DeleteGlucose handles the request to delete one glucose record.
func (h *HealthHandler) DeleteGlucose(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteGlucose(userID, id); err != nil {
		serviceError(w, err, "Failed to delete glucose record")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Record deleted successfully"})
}

// CreateFood handles the request to log a meal.
func (h *HealthHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var payload FoodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	eatenAt := time.Now()
	if payload.EatenAt != nil {
		eatenAt = *payload.EatenAt
	}

	rec, err := h.service.CreateFood(userID, payload.Name, payload.Calories, eatenAt)
	if err != nil {
		serviceError(w, err, "Failed to create food record")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// GetFood handles the request to list food records.
func (h *HealthHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	recs, err := h.service.GetFood(userID)
	if err != nil {
		serviceError(w, err, "Failed to list food records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"records": recs})
}

// DeleteFood handles the request to delete one food record.
func (h *HealthHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteFood(userID, id); err != nil {
		serviceError(w, err, "Failed to delete food record")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Record deleted successfully"})
}
