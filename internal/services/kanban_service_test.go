package services_test

import (
	"errors"
	"testing"

	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/testutil"
)

func setupKanbanTest(t *testing.T) (*services.KanbanService, int64, int64) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ownerID := testutil.RegisterTestUser(t, db, "owner", "pw")
	otherID := testutil.RegisterTestUser(t, db, "other", "pw")
	return services.NewKanbanService(db), ownerID, otherID
}

func TestKanbanColumnLifecycle(t *testing.T) {
	svc, ownerID, _ := setupKanbanTest(t)

	col, err := svc.CreateColumn(ownerID, "Backlog", 0)
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}

	newTitle := "In Progress"
	pos := 2
	updated, err := svc.UpdateColumn(ownerID, col.ID, &newTitle, &pos)
	if err != nil {
		t.Fatalf("UpdateColumn() error = %v", err)
	}
	if updated.Title != newTitle || updated.Position != pos {
		t.Errorf("UpdateColumn() = %+v", updated)
	}

	cols, err := svc.GetColumns(ownerID)
	if err != nil {
		t.Fatalf("GetColumns() error = %v", err)
	}
	if len(cols) != 1 {
		t.Fatalf("GetColumns() returned %d columns, want 1", len(cols))
	}

	if err := svc.DeleteColumn(ownerID, col.ID); err != nil {
		t.Fatalf("DeleteColumn() error = %v", err)
	}
	if err := svc.DeleteColumn(ownerID, col.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("DeleteColumn() twice error = %v, want ErrNotFound", err)
	}
}

func TestKanbanCardLifecycle(t *testing.T) {
	svc, ownerID, _ := setupKanbanTest(t)

	todo, err := svc.CreateColumn(ownerID, "To Do", 0)
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}
	done, err := svc.CreateColumn(ownerID, "Done", 1)
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}

	card, err := svc.CreateCard(ownerID, todo.ID, "write tests", "", 0)
	if err != nil {
		t.Fatalf("CreateCard() error = %v", err)
	}
	if card.ColumnID != todo.ID {
		t.Errorf("CreateCard() column = %d, want %d", card.ColumnID, todo.ID)
	}

	// Move the card to the other column.
	moved, err := svc.UpdateCard(ownerID, todo.ID, card.ID, nil, nil, nil, &done.ID)
	if err != nil {
		t.Fatalf("UpdateCard() move error = %v", err)
	}
	if moved.ColumnID != done.ID {
		t.Errorf("UpdateCard() column = %d, want %d", moved.ColumnID, done.ID)
	}

	// The card is gone from the old column's listing.
	cards, err := svc.GetCards(ownerID, todo.ID)
	if err != nil {
		t.Fatalf("GetCards() error = %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("old column still has %d cards", len(cards))
	}

	if err := svc.DeleteCard(ownerID, done.ID, card.ID); err != nil {
		t.Fatalf("DeleteCard() error = %v", err)
	}
}

func TestKanbanColumnCascadeDelete(t *testing.T) {
	svc, ownerID, _ := setupKanbanTest(t)

	col, err := svc.CreateColumn(ownerID, "Backlog", 0)
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}
	card, err := svc.CreateCard(ownerID, col.ID, "orphan-to-be", "", 0)
	if err != nil {
		t.Fatalf("CreateCard() error = %v", err)
	}

	if err := svc.DeleteColumn(ownerID, col.ID); err != nil {
		t.Fatalf("DeleteColumn() error = %v", err)
	}

	if err := svc.DeleteCard(ownerID, col.ID, card.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("card survived column delete: error = %v, want ErrNotFound", err)
	}
}

func TestKanbanOwnerIsolation(t *testing.T) {
	svc, ownerID, otherID := setupKanbanTest(t)

	col, err := svc.CreateColumn(ownerID, "Private", 0)
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}
	card, err := svc.CreateCard(ownerID, col.ID, "secret card", "", 0)
	if err != nil {
		t.Fatalf("CreateCard() error = %v", err)
	}

	if _, err := svc.GetColumn(otherID, col.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("GetColumn() as other error = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetCards(otherID, col.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("GetCards() as other error = %v, want ErrNotFound", err)
	}
	if _, err := svc.CreateCard(otherID, col.ID, "intruder", "", 0); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("CreateCard() into foreign column error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteCard(otherID, col.ID, card.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("DeleteCard() as other error = %v, want ErrNotFound", err)
	}

	// A card cannot be moved into a column the user does not own.
	foreign, err := svc.CreateColumn(otherID, "Theirs", 0)
	if err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}
	if _, err := svc.UpdateCard(ownerID, col.ID, card.ID, nil, nil, nil, &foreign.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("UpdateCard() move to foreign column error = %v, want ErrNotFound", err)
	}
}
