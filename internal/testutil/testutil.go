package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lifetrack/lifetrack-be/internal/api"
	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/database"
	"github.com/lifetrack/lifetrack-be/internal/monitoring"
	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/websocket"
)

// TestJWTSecret is the signing key used by test routers.
const TestJWTSecret = "test-secret"

// SetupTestDB creates a fresh in-memory database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// An in-memory sqlite database exists per connection; keep exactly one.
	db.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// NewTokenManager returns a token manager with the test secret and default
// TTL.
func NewTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(TestJWTSecret, 0)
}

// SetupRouter assembles a full router over a fresh database. Storage routes
// are disabled; everything else is live.
func SetupRouter(t *testing.T) (*chi.Mux, *sql.DB, *auth.TokenManager) {
	t.Helper()

	db := SetupTestDB(t)
	tokens := NewTokenManager()

	hub := websocket.NewHub()
	go hub.Run()

	eventService := services.NewEventService(db, hub)
	router := api.NewRouter(api.RouterDeps{
		Tokens:         tokens,
		UserService:    services.NewUserService(db, eventService),
		TaskService:    services.NewTaskService(db),
		KanbanService:  services.NewKanbanService(db),
		HealthService:  services.NewHealthService(db),
		EventService:   eventService,
		Hub:            hub,
		Stats:          monitoring.NewStatUpdater(eventService),
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	return router, db, tokens
}

// RegisterTestUser creates an account directly through the service layer and
// returns its ID.
func RegisterTestUser(t *testing.T, db *sql.DB, username, password string) int64 {
	t.Helper()

	eventService := services.NewEventService(db, nil)
	user, err := services.NewUserService(db, eventService).Register(username, password)
	if err != nil {
		t.Fatalf("Failed to register test user %q: %v", username, err)
	}
	return user.ID
}

// MakeRequest creates an HTTP test request.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// BearerHeader builds the auth header map for a user's token.
func BearerHeader(t *testing.T, tokens *auth.TokenManager, userID int64) map[string]string {
	t.Helper()

	token, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct.
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
