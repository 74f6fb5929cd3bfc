package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lifetrack/lifetrack-be/internal/api/handlers"
	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/testutil"
)

// The ownership check must reject a user_id path segment that does not match
// the token subject before any storage call is made, so it is testable
// without a live object store.
func TestStorageOwnershipCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eventSvc := services.NewEventService(db, nil)
	h := handlers.NewStorageHandler(nil, eventSvc)
	tokens := testutil.NewTokenManager()

	r := chi.NewRouter()
	r.Use(tokens.Middleware())
	r.Get("/api/storage/get-bucket/{userId}", h.GetBucket)
	r.Post("/api/storage/upload-file/{userId}", h.UploadFile)

	headers := testutil.BearerHeader(t, tokens, 1)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"foreign bucket", http.MethodGet, "/api/storage/get-bucket/2", http.StatusForbidden},
		{"foreign upload", http.MethodPost, "/api/storage/upload-file/2", http.StatusForbidden},
		{"garbage user id", http.MethodGet, "/api/storage/get-bucket/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, testutil.MakeRequest(tt.method, tt.path, nil, headers))
			testutil.AssertStatus(t, w, tt.want)
		})
	}

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/api/storage/get-bucket/1", nil, nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

// Sanity check that the context helper used by handlers round-trips.
func TestContextUserID(t *testing.T) {
	ctx := auth.WithUserID(testutil.MakeRequest(http.MethodGet, "/", nil, nil).Context(), 7)
	id, ok := auth.UserID(ctx)
	if !ok || id != 7 {
		t.Errorf("UserID() = %d, %v, want 7, true", id, ok)
	}
}
