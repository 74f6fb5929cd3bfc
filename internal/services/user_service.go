package services

import (
	"database/sql"
	"fmt"

	"github.com/lifetrack/lifetrack-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, password string) (models.User, error)
	Authenticate(username, password string) (int64, error)
	GetUserByID(id int64) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db       *sql.DB
	eventSvc EventServiceProvider

	// dummyHash is compared against when the username does not exist, so
	// the response time of Authenticate does not reveal whether an
	// account is present.
	dummyHash []byte
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, eventSvc EventServiceProvider) *UserService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("lifetrack-dummy-credential"), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost, which is a programming error.
		panic(fmt.Sprintf("generate dummy hash: %v", err))
	}
	return &UserService{db: db, eventSvc: eventSvc, dummyHash: dummy}
}

// Register creates a new account, hashing the password. A duplicate username
// fails with ErrConflict.
func (s *UserService) Register(username, password string) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	stmt, err := s.db.Prepare("INSERT INTO users(username, password_hash) VALUES(?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(username, string(hashed))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("username %q: %w", username, ErrConflict)
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	s.eventSvc.CreateEvent("user.register", "info", fmt.Sprintf("Account %q created.", username), &id)

	return models.User{ID: id, Username: username}, nil
}

// Authenticate verifies a username/password pair and returns the account ID.
// Unknown usernames and wrong passwords produce the same error; the unknown
// path still runs a bcrypt compare to keep timing uniform.
func (s *UserService) Authenticate(username, password string) (int64, error) {
	var id int64
	var passwordHash string
	row := s.db.QueryRow("SELECT id, password_hash FROM users WHERE username = ?", username)
	err := row.Scan(&id, &passwordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}

	s.eventSvc.CreateEvent("user.login", "info", fmt.Sprintf("Account %q logged in.", username), &id)
	return id, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}
