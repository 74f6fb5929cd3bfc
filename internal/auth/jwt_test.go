package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	tests := []struct {
		name   string
		userID int64
	}{
		{"small id", 1},
		{"large id", 9223372036854775807},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tm.Issue(tt.userID)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			claims, err := tm.Validate(token)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("Validate() subject = %d, want %d", claims.UserID, tt.userID)
			}
		})
	}
}

func TestValidateExpired(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	token, err := tm.IssueWithTTL(42, -time.Minute)
	if err != nil {
		t.Fatalf("IssueWithTTL() error = %v", err)
	}

	_, err = tm.Validate(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Validate() error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateZeroTTLExpiresAfterClockAdvance(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	token, err := tm.IssueWithTTL(42, time.Millisecond)
	if err != nil {
		t.Fatalf("IssueWithTTL() error = %v", err)
	}

	// JWT expiry has one-second precision; wait past the boundary.
	time.Sleep(1100 * time.Millisecond)

	_, err = tm.Validate(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Validate() error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateTamperedSignature(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	token, err := tm.Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	// Flip one byte of the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tm.Validate(tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Validate() error = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateForeignKey(t *testing.T) {
	token, err := NewTokenManager("secret-a", 0).Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = NewTokenManager("secret-b", 0).Validate(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Validate() with wrong key error = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Validate(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Validate(%q) error = %v, want ErrTokenInvalid", tok, err)
		}
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", true},
		{"bare scheme", "Bearer", "", true},
		{"empty token", "Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, err := BearerToken(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BearerToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r.Context())
		if !ok {
			t.Error("handler ran without a user ID in context")
		}
		if id != 99 {
			t.Errorf("context user ID = %d, want 99", id)
		}
		w.WriteHeader(http.StatusOK)
	})
	protected := tm.Middleware()(next)

	t.Run("valid token", func(t *testing.T) {
		token, _ := tm.Issue(99)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, _ := tm.IssueWithTTL(99, -time.Minute)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		if !strings.Contains(w.Body.String(), "expired") {
			t.Errorf("body = %q, want mention of expiry", w.Body.String())
		}
	})
}
