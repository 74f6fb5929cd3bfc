package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/services"
)

// TaskHandler handles HTTP requests for to-do tasks.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTaskPayload is the request body for creating a task.
type CreateTaskPayload struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateTaskPayload is the request body for patching a task. Absent fields
// are left unchanged.
type UpdateTaskPayload struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// idParam parses a numeric chi URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// Create handles the request to create a task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var payload CreateTaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Description == "" {
		http.Error(w, "Description is required", http.StatusBadRequest)
		return
	}

	task, err := h.service.CreateTask(userID, payload.Description, payload.Completed)
	if err != nil {
		serviceError(w, err, "Failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// GetAll handles the request to list the caller's tasks.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	tasks, err := h.service.GetTasks(userID)
	if err != nil {
		serviceError(w, err, "Failed to list tasks")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// Get handles the request to fetch one task.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid task id", http.StatusBadRequest)
		return
	}

	task, err := h.service.GetTask(userID, id)
	if err != nil {
		serviceError(w, err, "Failed to get task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Update handles the request to patch one task.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid task id", http.StatusBadRequest)
		return
	}

	var payload UpdateTaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTask(userID, id, payload.Description, payload.Completed)
	if err != nil {
		serviceError(w, err, "Failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles the request to delete one task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid task id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTask(userID, id); err != nil {
		serviceError(w, err, "Failed to delete task")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
