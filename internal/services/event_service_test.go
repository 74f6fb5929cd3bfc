package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/testutil"
)

func TestEventsScopedToAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	// RegisterTestUser already produces a user.register event per account.
	ownerID := testutil.RegisterTestUser(t, db, "owner", "pw")
	otherID := testutil.RegisterTestUser(t, db, "other", "pw")
	svc := services.NewEventService(db, nil)

	if err := svc.CreateEvent("storage.upload", "info", "Uploaded file notes.txt", &ownerID); err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	events, err := svc.GetRecentEvents(ownerID, 10)
	if err != nil {
		t.Fatalf("GetRecentEvents() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("GetRecentEvents() returned %d events, want 2", len(events))
	}
	for _, e := range events {
		if e.UserID == nil || *e.UserID != ownerID {
			t.Errorf("event %s belongs to %v, want %d", e.ID, e.UserID, ownerID)
		}
	}

	otherEvents, err := svc.GetRecentEvents(otherID, 10)
	if err != nil {
		t.Fatalf("GetRecentEvents() error = %v", err)
	}
	for _, e := range otherEvents {
		if e.Type == "storage.upload" {
			t.Error("another account's event leaked into the listing")
		}
	}
}

func TestPruneOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewEventService(db, nil)

	// One fresh event and one past the retention window.
	if err := svc.CreateEvent("system.test", "info", "fresh", nil); err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	_, err := db.Exec(
		"INSERT INTO events (id, type, level, message, created_at) VALUES (?, 'system.test', 'info', 'stale', datetime('now', '-40 days'))",
		uuid.New().String())
	if err != nil {
		t.Fatalf("insert stale event: %v", err)
	}

	n, err := svc.PruneOlderThan(30)
	if err != nil {
		t.Fatalf("PruneOlderThan() error = %v", err)
	}
	if n != 1 {
		t.Errorf("PruneOlderThan() deleted %d rows, want 1", n)
	}

	var remaining int
	if err := db.QueryRow("SELECT COUNT(*) FROM events").Scan(&remaining); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if remaining != 1 {
		t.Errorf("%d events remain, want 1", remaining)
	}
}
