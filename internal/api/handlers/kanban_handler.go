package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/services"
)

// KanbanHandler handles HTTP requests for the kanban board.
type KanbanHandler struct {
	service services.KanbanServiceProvider
}

// NewKanbanHandler creates a new KanbanHandler.
func NewKanbanHandler(service services.KanbanServiceProvider) *KanbanHandler {
	return &KanbanHandler{service: service}
}

// ColumnPayload is the request body for creating or patching a column.
type ColumnPayload struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

// CardPayload is the request body for creating or patching a card.
type CardPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
	ColumnID    *int64  `json:"column_id"` // patch only: move to another column
}

// CreateColumn handles the request to add a board column.
func (h *KanbanHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var payload ColumnPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Title == nil || *payload.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	position := 0
	if payload.Position != nil {
		position = *payload.Position
	}

	col, err := h.service.CreateColumn(userID, *payload.Title, position)
	if err != nil {
		serviceError(w, err, "Failed to create kanban column")
		return
	}
	writeJSON(w, http.StatusCreated, col)
}

// GetColumns handles the request to list the caller's columns.
func (h *KanbanHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	cols, err := h.service.GetColumns(userID)
	if err != nil {
		serviceError(w, err, "Failed to list kanban columns")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"columns": cols})
}

// GetColumn handles the request to fetch one column.
func (h *KanbanHandler) GetColumn(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid column id", http.StatusBadRequest)
		return
	}

	col, err := h.service.GetColumn(userID, id)
	if err != nil {
		serviceError(w, err, "Failed to get kanban column")
		return
	}
	writeJSON(w, http.StatusOK, col)
}

// UpdateColumn handles the request to patch one column.
func (h *KanbanHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid column id", http.StatusBadRequest)
		return
	}

	var payload ColumnPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	col, err := h.service.UpdateColumn(userID, id, payload.Title, payload.Position)
	if err != nil {
		serviceError(w, err, "Failed to update kanban column")
		return
	}
	writeJSON(w, http.StatusOK, col)
}

// DeleteColumn handles the request to delete one column and its cards.
func (h *KanbanHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid column id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteColumn(userID, id); err != nil {
		serviceError(w, err, "Failed to delete kanban column")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Column deleted successfully"})
}

// CreateCard handles the request to add a card to a column.
func (h *KanbanHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	columnID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid column id", http.StatusBadRequest)
		return
	}

	var payload CardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Title == nil || *payload.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	description := ""
	if payload.Description != nil {
		description = *payload.Description
	}
	position := 0
	if payload.Position != nil {
		position = *payload.Position
	}

	card, err := h.service.CreateCard(userID, columnID, *payload.Title, description, position)
	if err != nil {
		serviceError(w, err, "Failed to create kanban card")
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// GetCards handles the request to list a column's cards.
func (h *KanbanHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	columnID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid column id", http.StatusBadRequest)
		return
	}

	cards, err := h.service.GetCards(userID, columnID)
	if err != nil {
		serviceError(w, err, "Failed to list kanban cards")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": cards})
}

// UpdateCard handles the request to patch one card.
func (h *KanbanHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	columnID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid column id", http.StatusBadRequest)
		return
	}
	cardID, err := idParam(r, "taskId")
	if err != nil {
		http.Error(w, "Invalid card id", http.StatusBadRequest)
		return
	}

	var payload CardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	card, err := h.service.UpdateCard(userID, columnID, cardID, payload.Title, payload.Description, payload.Position, payload.ColumnID)
	if err != nil {
		serviceError(w, err, "Failed to update kanban card")
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// DeleteCard handles the request to delete one card.
func (h *KanbanHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	columnID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid column id", http.StatusBadRequest)
		return
	}
	cardID, err := idParam(r, "taskId")
	if err != nil {
		http.Error(w, "Invalid card id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteCard(userID, columnID, cardID); err != nil {
		serviceError(w, err, "Failed to delete kanban card")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Card deleted successfully"})
}
