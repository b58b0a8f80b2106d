package store

import (
	"errors"
	"strings"

	"github.com/ontrack-app/ontrack/internal/models"
)

var (
	// ErrMissingFields is returned when registering with an empty username or password.
	ErrMissingFields = errors.New("missing fields")
	// ErrUserExists is returned when registering a username that is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when no exact username/password pair matches.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Credentials are stored and compared in plain text. This is a local,
// single-user-machine prototype, not an auth system.

func (s *Store) readUsers() ([]models.User, error) {
	var users []models.User
	if err := s.readJSON(usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Register creates a new account and establishes a session for it.
// Username matching is exact and case-sensitive.
func (s *Store) Register(username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	users, err := s.readUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return nil, ErrUserExists
		}
	}

	users = append(users, models.User{Username: username, Password: password})
	if err := s.writeJSON(usersKey, users); err != nil {
		return nil, err
	}

	s.session = &Session{Username: username}
	s.info("registered user", "username", username)
	return s.session, nil
}

// Login establishes a session when an exact username/password pair exists.
func (s *Store) Login(username, password string) (*Session, error) {
	username = strings.TrimSpace(username)

	users, err := s.readUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username && u.Password == password {
			s.session = &Session{Username: username}
			s.info("logged in", "username", username)
			return s.session, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the session unconditionally.
func (s *Store) Logout() {
	if s.session != nil {
		s.info("logged out", "username", s.session.Username)
	}
	s.session = nil
}
