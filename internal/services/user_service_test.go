package services_test

import (
	"errors"
	"testing"

	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/testutil"
)

func newUserService(t *testing.T) *services.UserService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return services.NewUserService(db, services.NewEventService(db, nil))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register("alice", "s3cret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 {
		t.Fatal("Register() returned zero ID")
	}

	id, err := svc.Authenticate("alice", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if id != user.ID {
		t.Errorf("Authenticate() id = %d, want %d", id, user.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newUserService(t)

	if _, err := svc.Register("alice", "one"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register("alice", "two")
	if !errors.Is(err, services.ErrConflict) {
		t.Errorf("Register() duplicate error = %v, want ErrConflict", err)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc := newUserService(t)

	if _, err := svc.Register("alice", "s3cret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrong"},
		{"unknown username", "bob", "s3cret"},
		{"both wrong", "bob", "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(tt.username, tt.password)
			// Unknown users and bad passwords must be indistinguishable.
			if !errors.Is(err, services.ErrInvalidCredentials) {
				t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestGetUserByID(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register("alice", "s3cret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("GetUserByID() username = %q, want %q", got.Username, "alice")
	}
	if got.PasswordHash != "" {
		t.Error("GetUserByID() exposed a password hash")
	}

	if _, err := svc.GetUserByID(user.ID + 1000); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("GetUserByID() missing error = %v, want ErrNotFound", err)
	}
}
